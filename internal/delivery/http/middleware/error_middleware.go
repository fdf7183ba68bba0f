package middleware

import (
	"errors"
	"net/http"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error. Handlers never
// write error bodies themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"status", appErr.Code,
					"message", appErr.Message,
					"error", appErr.Err,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(response.RequestIDKey),
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "resource not found")
		default:
			// Never expose internal error details to clients
			logger.Log.Error("unhandled error",
				"error", err,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(response.RequestIDKey),
			)
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
	}
}

// UnknownEndpoint answers requests no route matched.
func UnknownEndpoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "unknown endpoint")
	}
}

// Recovery turns a panic into a 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(response.RequestIDKey),
		)
		response.Error(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}
