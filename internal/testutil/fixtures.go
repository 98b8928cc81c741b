package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"taskhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique
// username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleUser)
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTask creates a pending task with no due date.
func CreateTestTask(t *testing.T, db *gorm.DB, userID uint) *models.Task {
	t.Helper()
	return CreateTestTaskWith(t, db, userID, models.TaskStatusPending, nil)
}

// CreateTestTaskWith creates a task with the given status and due date.
func CreateTestTaskWith(t *testing.T, db *gorm.DB, userID uint, status models.TaskStatus, dueDate *time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Task %d", nextID()),
		DueDate: dueDate,
		Status:  status,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// SetTaskUpdatedAt overrides a task's updated_at column, bypassing GORM's
// automatic timestamping. Useful for aging tasks in dashboard tests.
func SetTaskUpdatedAt(t *testing.T, db *gorm.DB, taskID uint, updatedAt time.Time) {
	t.Helper()

	if err := db.Model(&models.Task{}).Where("id = ?", taskID).
		UpdateColumn("updated_at", updatedAt).Error; err != nil {
		t.Fatalf("failed to set task updated_at: %v", err)
	}
}

// CountAuditLogs counts audit records matching the given action.
func CountAuditLogs(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.AuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("failed to count audit logs: %v", err)
	}
	return count
}
