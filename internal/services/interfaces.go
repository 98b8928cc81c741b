package services

import (
	"time"

	"gorm.io/gorm"

	"taskhub/internal/models"
)

// UserServicer defines the contract for registration and authentication.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password, ipAddress, userAgent string) (*models.User, error)
	GetActorByID(id uint) (*models.User, error)
}

// TaskFilter holds optional filter and ordering parameters for listing tasks.
// SortBy and SortOrder are checked against a whitelist; unrecognized values
// fall back to due date ascending.
type TaskFilter struct {
	Status    string
	Category  string
	DueBefore *time.Time
	SortBy    string
	SortOrder string
}

// TaskUpdate describes a partial task update. Nil pointers mean "leave
// unchanged"; a non-nil empty Description or Category clears the stored
// value. ClearDueDate removes the due date regardless of DueDate.
type TaskUpdate struct {
	Name         *string
	Description  *string
	Category     *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       *models.TaskStatus
}

// CategoryCount is a category with the number of tasks carrying it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DashboardData aggregates a user's tasks into the dashboard buckets.
type DashboardData struct {
	TasksDueToday           []models.Task   `json:"tasksDueToday"`
	TasksCompletedLast7Days []models.Task   `json:"tasksCompletedLast7Days"`
	UpcomingTasks           []models.Task   `json:"upcomingTasks"`
	PopularCategories       []CategoryCount `json:"popularCategories"`
}

// TaskServicer defines the contract for task-related business logic.
type TaskServicer interface {
	ListTasks(userID uint, filter TaskFilter) ([]models.Task, error)
	CreateTask(userID uint, name, description, category string, dueDate *time.Time) (*models.Task, error)
	UpdateTask(userID, taskID uint, update TaskUpdate) (*models.Task, error)
	DeleteTask(userID, taskID uint) error
	GetDashboardData(userID uint) (*DashboardData, error)
	MarkOverdueTasks(now time.Time) (int64, error)
}

// AdminServicer defines the contract for user account administration.
type AdminServicer interface {
	ListUsers() ([]models.User, error)
	CreateUser(actorID uint, username, email, password string, role models.Role, isActive *bool) (*models.User, error)
	DeactivateUser(actorID, targetID uint) (*models.User, error)
	ActivateUser(actorID, targetID uint) (*models.User, error)
}

// AuditEntry describes one immutable audit record. OldValue and NewValue
// are serialized to JSON before storage.
type AuditEntry struct {
	UserID     *uint
	Action     string
	EntityType string
	EntityID   *uint
	OldValue   interface{}
	NewValue   interface{}
	IPAddress  string
	UserAgent  string
}

// AuditRecorder defines the contract for audit logging. Record runs against
// the caller's transaction handle so the audit row commits or rolls back
// together with the mutation it describes.
type AuditRecorder interface {
	Record(tx *gorm.DB, entry AuditEntry) error
}
