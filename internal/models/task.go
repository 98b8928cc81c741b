package models

import "time"

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

// Task represents a unit of work owned by exactly one user.
// An empty category means the task is uncategorized.
type Task struct {
	Base
	UserID      uint       `gorm:"not null;index" json:"userId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:255" json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	Status      TaskStatus `gorm:"size:16;not null;default:pending" json:"status"`
}
