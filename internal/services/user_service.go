package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
)

// actorColumns is the projection loaded for authenticated actors.
// It never includes the password hash.
var actorColumns = []string{"id", "username", "email", "role", "is_active", "created_at", "updated_at"}

// userService handles registration and authentication.
type userService struct {
	db    *gorm.DB
	audit AuditRecorder
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, audit AuditRecorder) UserServicer {
	return &userService{db: db, audit: audit}
}

// Register creates a user with role "user" and records the registration.
// Email uniqueness is checked before username uniqueness.
func (s *userService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter all fields")
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

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		IsActive: true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.audit.Record(tx, AuditEntry{
			UserID:     &user.ID,
			Action:     ActionUserRegistered,
			EntityType: EntityUser,
			EntityID:   &user.ID,
			NewValue: map[string]interface{}{
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and records the login with the caller's
// address and user agent. Unknown usernames and wrong passwords produce
// the same error.
func (s *userService) Login(username, password, ipAddress, userAgent string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}

	if err := s.audit.Record(s.db, AuditEntry{
		UserID:     &user.ID,
		Action:     ActionUserLogin,
		EntityType: EntityUser,
		EntityID:   &user.ID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetActorByID loads a user by id with the password hash excluded.
func (s *userService) GetActorByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Select(actorColumns).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
