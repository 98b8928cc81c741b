// Package errors provides custom error types for the Taskhub API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	// Bad credentials on login carry the same message whether the
	// username or the password was wrong.
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusBadRequest}
	ErrNoToken            = &AppError{Code: "NO_TOKEN", Message: "Not authorized, no token", StatusCode: http.StatusUnauthorized}
	ErrTokenFailed        = &AppError{Code: "TOKEN_FAILED", Message: "Not authorized, token failed", StatusCode: http.StatusUnauthorized}
	ErrTokenUserNotFound  = &AppError{Code: "TOKEN_USER_NOT_FOUND", Message: "Not authorized, user not found", StatusCode: http.StatusUnauthorized}
	ErrAccountDeactivated = &AppError{Code: "ACCOUNT_DEACTIVATED", Message: "Account is deactivated. Please contact an administrator.", StatusCode: http.StatusForbidden}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrSelfDeactivation   = &AppError{Code: "SELF_DEACTIVATION", Message: "You cannot deactivate your own account.", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "User with that email already exists", StatusCode: http.StatusBadRequest}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "User with that username already exists", StatusCode: http.StatusBadRequest}
)

// Task errors.
var (
	// Missing and not-owned tasks surface identically so callers cannot
	// probe for other users' task IDs.
	ErrTaskNotFound = &AppError{Code: "TASK_NOT_FOUND", Message: "Task not found or unauthorized", StatusCode: http.StatusNotFound}
)
