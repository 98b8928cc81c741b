package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their status and message; unexpected errors are logged and return a
// generic 500. Internal detail is exposed under "stack" outside production.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			c.JSON(appErr.StatusCode, errorBody(appErr.Message, appErr.Internal))
			return
		}

		// Unexpected error: log full details, return generic message
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode,
			errorBody(apperrors.ErrInternalServer.Message, err))
	}
}

// errorBody builds the {message, stack?} error envelope. The stack field
// carries the internal error detail and is omitted in production.
func errorBody(message string, internal error) gin.H {
	body := gin.H{"message": message}
	if internal != nil && config.Get().Env != "production" {
		body["stack"] = internal.Error()
	}
	return body
}
