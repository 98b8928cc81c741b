package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
)

// taskSortColumns whitelists the fields a caller may sort by, mapped to
// their column names. Anything else falls back to the default ordering.
var taskSortColumns = map[string]string{
	"name":      "name",
	"category":  "category",
	"status":    "status",
	"dueDate":   "due_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// taskService handles task CRUD and dashboard aggregation.
type taskService struct {
	db    *gorm.DB
	audit AuditRecorder
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB, audit AuditRecorder) TaskServicer {
	return &taskService{db: db, audit: audit}
}

// ListTasks returns the user's tasks, optionally filtered by status,
// category, and an inclusive due date upper bound.
func (s *taskService) ListTasks(userID uint, filter TaskFilter) ([]models.Task, error) {
	query := s.db.Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", *filter.DueBefore)
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "due_date"
	}
	direction := "ASC"
	if filter.SortOrder == "desc" || filter.SortOrder == "DESC" {
		direction = "DESC"
	}

	var tasks []models.Task
	if err := query.Order(fmt.Sprintf("%s %s", column, direction)).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

// CreateTask creates a task with status forced to pending and records the
// creation with a full snapshot of the new row.
func (s *taskService) CreateTask(userID uint, name, description, category string, dueDate *time.Time) (*models.Task, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task name is required")
	}

	task := &models.Task{
		UserID:      userID,
		Name:        name,
		Description: description,
		Category:    category,
		DueDate:     dueDate,
		Status:      models.TaskStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &userID,
			Action:     ActionTaskCreated,
			EntityType: EntityTask,
			EntityID:   &task.ID,
			NewValue:   task,
		})
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update to a task owned by userID. Nil
// pointers leave fields untouched; see TaskUpdate for clearing semantics.
func (s *taskService) UpdateTask(userID, taskID uint, update TaskUpdate) (*models.Task, error) {
	task, err := s.findOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	oldValue := *task

	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task name is required")
		}
		task.Name = *update.Name
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.ClearDueDate {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid task status")
		}
		task.Status = *update.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &userID,
			Action:     ActionTaskUpdated,
			EntityType: EntityTask,
			EntityID:   &task.ID,
			OldValue:   oldValue,
			NewValue:   task,
		})
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask hard-deletes a task owned by userID and records the deletion
// with the before-snapshot.
func (s *taskService) DeleteTask(userID, taskID uint) error {
	task, err := s.findOwnedTask(userID, taskID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &userID,
			Action:     ActionTaskDeleted,
			EntityType: EntityTask,
			EntityID:   &taskID,
			OldValue:   task,
		})
	})
}

// GetDashboardData aggregates the user's tasks relative to the start of
// the current day in server-local time. The four buckets are computed as
// independent read-only queries.
func (s *taskService) GetDashboardData(userID uint) (*DashboardData, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)
	sevenDaysAgo := startOfDay.AddDate(0, 0, -7)

	data := &DashboardData{}

	err := s.db.
		Where("user_id = ? AND due_date IS NOT NULL AND due_date <= ? AND status <> ?",
			userID, endOfDay, models.TaskStatusCompleted).
		Order("due_date ASC").
		Find(&data.TasksDueToday).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.
		Where("user_id = ? AND status = ? AND updated_at >= ? AND updated_at <= ?",
			userID, models.TaskStatusCompleted, sevenDaysAgo, now).
		Find(&data.TasksCompletedLast7Days).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.
		Where("user_id = ? AND due_date > ? AND status <> ?",
			userID, endOfDay, models.TaskStatusCompleted).
		Order("due_date ASC").
		Limit(5).
		Find(&data.UpcomingTasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Task{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ? AND category <> ''", userID).
		Group("category").
		Order("count DESC").
		Limit(5).
		Scan(&data.PopularCategories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return data, nil
}

// MarkOverdueTasks transitions pending and in-progress tasks whose due
// date has passed to overdue, one audit record per task and no actor.
// It returns the number of transitioned tasks.
func (s *taskService) MarkOverdueTasks(now time.Time) (int64, error) {
	var tasks []models.Task
	err := s.db.
		Where("due_date IS NOT NULL AND due_date < ? AND status IN ?",
			now, []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress}).
		Find(&tasks).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var marked int64
	for i := range tasks {
		task := &tasks[i]
		oldValue := *task
		task.Status = models.TaskStatusOverdue

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(task).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return s.audit.Record(tx, AuditEntry{
				Action:     ActionTaskMarkedOverdue,
				EntityType: EntityTask,
				EntityID:   &task.ID,
				OldValue:   oldValue,
				NewValue:   task,
			})
		})
		if err != nil {
			return marked, err
		}
		marked++
	}

	return marked, nil
}

// findOwnedTask loads a task by id scoped to its owner. A missing task and
// a task owned by someone else are indistinguishable to the caller.
func (s *taskService) findOwnedTask(userID, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}
