package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
)

// Audit actions.
const (
	ActionUserRegistered       = "USER_REGISTERED"
	ActionUserLogin            = "USER_LOGIN"
	ActionTaskCreated          = "TASK_CREATED"
	ActionTaskUpdated          = "TASK_UPDATED"
	ActionTaskDeleted          = "TASK_DELETED"
	ActionTaskMarkedOverdue    = "TASK_MARKED_OVERDUE"
	ActionAdminUserCreated     = "ADMIN_USER_CREATED"
	ActionAdminUserDeactivated = "ADMIN_USER_DEACTIVATED"
	ActionAdminUserActivated   = "ADMIN_USER_ACTIVATED"
)

// Audit entity types.
const (
	EntityUser = "User"
	EntityTask = "Task"
)

// auditService appends immutable audit records.
type auditService struct{}

// NewAuditService creates a new AuditRecorder.
func NewAuditService() AuditRecorder {
	return &auditService{}
}

// Record writes one audit row on the given transaction handle. An error
// here must abort the surrounding transaction: a mutation is not allowed
// to succeed without its audit record.
func (s *auditService) Record(tx *gorm.DB, entry AuditEntry) error {
	oldValue, err := marshalSnapshot(entry.OldValue)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	newValue, err := marshalSnapshot(entry.NewValue)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := &models.AuditLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}

	if err := tx.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func marshalSnapshot(v interface{}) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
