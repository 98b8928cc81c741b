package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
)

// adminService handles user account administration.
type adminService struct {
	db    *gorm.DB
	audit AuditRecorder
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB, audit AuditRecorder) AdminServicer {
	return &adminService{db: db, audit: audit}
}

// ListUsers returns all users with the password hash excluded.
func (s *adminService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Select(actorColumns).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// CreateUser creates an account with a caller-specified role. The audit
// record is attributed to the acting admin, not the new user.
func (s *adminService) CreateUser(actorID uint, username, email, password string, role models.Role, isActive *bool) (*models.User, error) {
	if username == "" || email == "" || password == "" || role == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter all required fields")
	}
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid role")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	active := true
	if isActive != nil {
		active = *isActive
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: active,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &actorID,
			Action:     ActionAdminUserCreated,
			EntityType: EntityUser,
			EntityID:   &user.ID,
			NewValue: map[string]interface{}{
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
				"isActive": user.IsActive,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeactivateUser sets isActive false on the target account. Admins cannot
// deactivate themselves; that is checked before the target lookup.
func (s *adminService) DeactivateUser(actorID, targetID uint) (*models.User, error) {
	if actorID == targetID {
		return nil, apperrors.ErrSelfDeactivation
	}
	return s.setActive(actorID, targetID, false, ActionAdminUserDeactivated)
}

// ActivateUser sets isActive true on the target account.
func (s *adminService) ActivateUser(actorID, targetID uint) (*models.User, error) {
	return s.setActive(actorID, targetID, true, ActionAdminUserActivated)
}

func (s *adminService) setActive(actorID, targetID uint, active bool, action string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	wasActive := user.IsActive
	user.IsActive = active

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("is_active", active).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &actorID,
			Action:     action,
			EntityType: EntityUser,
			EntityID:   &user.ID,
			OldValue:   map[string]interface{}{"isActive": wasActive},
			NewValue:   map[string]interface{}{"isActive": active},
		})
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}
