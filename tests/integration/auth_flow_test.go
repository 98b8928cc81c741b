package integration

import (
	"net/http"
	"testing"

	"taskhub/internal/models"
)

func TestAuthFlow_RegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	// Step 1: Register
	token, userID := app.registerUser(t, "alice", "alice@test.com", "password123")
	if token == "" {
		t.Fatal("expected non-empty token from registration")
	}
	if userID == 0 {
		t.Fatal("expected non-zero user ID")
	}

	// Step 2: Login with the same credentials
	loginToken := app.loginUser(t, "alice", "password123")
	if loginToken == "" {
		t.Fatal("expected non-empty token from login")
	}

	// Step 3: Use the token against a protected route
	rec := app.request("GET", "/api/tasks", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Registration and login each leave an audit trail
	var registered, logins int64
	app.DB.Model(&models.AuditLog{}).Where("action = ?", "USER_REGISTERED").Count(&registered)
	app.DB.Model(&models.AuditLog{}).Where("action = ?", "USER_LOGIN").Count(&logins)
	if registered != 1 || logins != 1 {
		t.Errorf("expected 1 registration and 1 login audit record, got %d and %d", registered, logins)
	}
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "alice", "alice@test.com", "password123")

	rec := app.request("POST", "/api/auth/register",
		`{"username":"bob","email":"alice@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "User with that email already exists" {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}

	rec = app.request("POST", "/api/auth/register",
		`{"username":"alice","email":"other@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "User with that username already exists" {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "alice", "alice@test.com", "password123")

	rec := app.request("POST", "/api/auth/login",
		`{"username":"alice","password":"wrong-password"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "Invalid credentials" {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}
}

func TestAuthFlow_DeactivatedUserLockedOut(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "alice", "alice@test.com", "password123")
	if err := app.DB.Model(&models.User{}).Where("id = ?", uint(userID)).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	// Login is rejected outright
	rec := app.request("POST", "/api/auth/login",
		`{"username":"alice","password":"password123"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on login, got %d: %s", rec.Code, rec.Body.String())
	}

	// A token issued before deactivation no longer works either
	rec = app.request("GET", "/api/tasks", "", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on existing token, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "Account is deactivated. Please contact an administrator." {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/tasks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "Not authorized, no token" {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}

	rec = app.request("GET", "/api/tasks", "", "garbage-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a garbage token, got %d: %s", rec.Code, rec.Body.String())
	}
}
