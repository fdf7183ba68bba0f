package middleware

import (
	"context"
	"regexp"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Incoming ids are echoed only when they look harmless
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID tags every request with an id, reusing a sane X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(response.RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(response.RequestIDKey, id)
		c.Header(response.RequestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyRequestID, id))

		c.Next()
	}
}
