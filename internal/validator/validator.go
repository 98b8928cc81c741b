// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskhub/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("task_status", validateTaskStatus)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	return models.TaskStatus(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}
