package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
)

// getActor extracts the authenticated user from the Gin context.
// Returns ErrNoToken if the auth middleware did not run.
func getActor(c *gin.Context) (*models.User, error) {
	user, ok := middleware.Actor(c)
	if !ok {
		return nil, apperrors.ErrNoToken
	}
	return user, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes the {message, stack?} error envelope. If the error
// is an *AppError it uses the error's status code and message; the stack
// field carries internal detail and is omitted in production. Unexpected
// errors are logged and returned as a generic 500.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, errorBody(appErr.Message, appErr.Internal))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode,
		errorBody(apperrors.ErrInternalServer.Message, err))
}

func errorBody(message string, internal error) gin.H {
	body := gin.H{"message": message}
	if internal != nil && config.Get().Env != "production" {
		body["stack"] = internal.Error()
	}
	return body
}

// userResponse is the public projection of a user returned by the API.
func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"isActive": user.IsActive,
	}
}
