package services

import (
	"testing"

	"taskhub/internal/models"
	"taskhub/internal/testutil"
)

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAdminService(db, NewAuditService())
	testutil.CreateTestUser(t, db)
	testutil.CreateTestAdmin(t, db)

	users, err := svc.ListUsers()
	testutil.AssertNoError(t, err)

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, user := range users {
		if user.Password != "" {
			t.Errorf("listing must not expose password hashes (user %d)", user.ID)
		}
	}
}

func TestAdminCreateUser(t *testing.T) {
	t.Run("with_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)

		user, err := svc.CreateUser(admin.ID, "carol", "carol@test.com", "secret-password", models.RoleAdmin, nil)
		testutil.AssertNoError(t, err)

		if user.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", user.Role)
		}
		if !user.IsActive {
			t.Error("isActive should default to true")
		}

		var audit models.AuditLog
		if err := db.Where("action = ?", ActionAdminUserCreated).First(&audit).Error; err != nil {
			t.Fatalf("failed to load creation audit record: %v", err)
		}
		if audit.UserID == nil || *audit.UserID != admin.ID {
			t.Error("creation must be attributed to the acting admin")
		}
	})

	t.Run("inactive_on_create", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)

		inactive := false
		user, err := svc.CreateUser(admin.ID, "carol", "carol@test.com", "secret-password", models.RoleUser, &inactive)
		testutil.AssertNoError(t, err)
		if user.IsActive {
			t.Error("expected account to be created deactivated")
		}
	})

	t.Run("invalid_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.CreateUser(admin.ID, "carol", "carol@test.com", "secret-password", models.Role("superuser"), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)
		existing := testutil.CreateTestUser(t, db)

		_, err := svc.CreateUser(admin.ID, "carol", existing.Email, "secret-password", models.RoleUser, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestDeactivateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)
		target := testutil.CreateTestUser(t, db)

		updated, err := svc.DeactivateUser(admin.ID, target.ID)
		testutil.AssertNoError(t, err)

		if updated.IsActive {
			t.Error("expected target to be deactivated")
		}
		if updated.Password != "" {
			t.Error("returned user must not carry the password hash")
		}
		if n := testutil.CountAuditLogs(t, db, ActionAdminUserDeactivated); n != 1 {
			t.Errorf("expected 1 deactivation audit record, got %d", n)
		}
	})

	t.Run("self", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.DeactivateUser(admin.ID, admin.ID)
		testutil.AssertAppError(t, err, "SELF_DEACTIVATION")

		var reloaded models.User
		if err := db.First(&reloaded, admin.ID).Error; err != nil {
			t.Fatalf("failed to reload admin: %v", err)
		}
		if !reloaded.IsActive {
			t.Error("self-deactivation must leave the account active")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db, NewAuditService())
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.DeactivateUser(admin.ID, 99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestActivateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAdminService(db, NewAuditService())
	admin := testutil.CreateTestAdmin(t, db)
	target := testutil.CreateTestUser(t, db)
	if err := db.Model(target).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	updated, err := svc.ActivateUser(admin.ID, target.ID)
	testutil.AssertNoError(t, err)

	if !updated.IsActive {
		t.Error("expected target to be active again")
	}
	if n := testutil.CountAuditLogs(t, db, ActionAdminUserActivated); n != 1 {
		t.Errorf("expected 1 activation audit record, got %d", n)
	}
}
