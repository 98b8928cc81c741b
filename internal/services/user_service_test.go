package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
	"taskhub/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		user, err := svc.Register("alice", "alice@test.com", "secret-password")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Role != models.RoleUser {
			t.Errorf("expected role user, got %s", user.Role)
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
		if user.Password == "secret-password" {
			t.Error("password must not be stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-password")); err != nil {
			t.Errorf("stored hash should verify against the plaintext: %v", err)
		}
		if n := testutil.CountAuditLogs(t, db, ActionUserRegistered); n != 1 {
			t.Errorf("expected 1 registration audit record, got %d", n)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		_, err := svc.Register("", "alice@test.com", "secret-password")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		_, err := svc.Register("alice", "alice@test.com", "secret-password")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("bob", "alice@test.com", "secret-password")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		_, err := svc.Register("alice", "alice@test.com", "secret-password")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("alice", "other@test.com", "secret-password")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("email_conflict_checked_before_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		_, err := svc.Register("alice", "alice@test.com", "secret-password")
		testutil.AssertNoError(t, err)

		// Both fields collide; the email error must win.
		_, err = svc.Register("alice", "alice@test.com", "secret-password")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())
		user := testutil.CreateTestUser(t, db)

		got, err := svc.Login(user.Username, "password123", "127.0.0.1", "go-test")
		testutil.AssertNoError(t, err)

		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
		if n := testutil.CountAuditLogs(t, db, ActionUserLogin); n != 1 {
			t.Errorf("expected 1 login audit record, got %d", n)
		}

		var audit models.AuditLog
		if err := db.Where("action = ?", ActionUserLogin).First(&audit).Error; err != nil {
			t.Fatalf("failed to load login audit record: %v", err)
		}
		if audit.IPAddress != "127.0.0.1" || audit.UserAgent != "go-test" {
			t.Errorf("login audit should capture IP and user agent, got %q %q", audit.IPAddress, audit.UserAgent)
		}
	})

	t.Run("unknown_user_and_wrong_password_are_indistinguishable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())
		user := testutil.CreateTestUser(t, db)

		_, errUnknown := svc.Login("nobody", "password123", "", "")
		_, errWrongPw := svc.Login(user.Username, "wrong-password", "", "")

		testutil.AssertAppError(t, errUnknown, "INVALID_CREDENTIALS")
		testutil.AssertAppError(t, errWrongPw, "INVALID_CREDENTIALS")
		if errUnknown.Error() != errWrongPw.Error() {
			t.Errorf("errors must carry identical messages: %q vs %q", errUnknown.Error(), errWrongPw.Error())
		}
	})

	t.Run("deactivated_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())
		user := testutil.CreateTestUser(t, db)
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		_, err := svc.Login(user.Username, "password123", "", "")
		testutil.AssertAppError(t, err, "ACCOUNT_DEACTIVATED")

		var appErr *apperrors.AppError
		if ok := errors.As(err, &appErr); !ok || appErr.StatusCode != 403 {
			t.Errorf("deactivated login should surface 403")
		}
	})
}

func TestGetActorByID(t *testing.T) {
	t.Run("excludes_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())
		user := testutil.CreateTestUser(t, db)

		actor, err := svc.GetActorByID(user.ID)
		testutil.AssertNoError(t, err)

		if actor.Password != "" {
			t.Error("actor projection must not include the password hash")
		}
		if actor.Username != user.Username {
			t.Errorf("expected username %s, got %s", user.Username, actor.Username)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewAuditService())

		_, err := svc.GetActorByID(99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
