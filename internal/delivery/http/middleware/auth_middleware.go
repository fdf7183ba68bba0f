package middleware

import (
	"context"
	"strings"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/auth"
	"go-jobs-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	AuthCookieName      = "auth_token"
	unauthorizedMessage = "authorization token missing or invalid"
)

// TokenParser verifies a bearer token. *auth.TokenService implements it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects the request with 401 unless it carries a valid token
// for an existing user. The identity is stored on both the gin context and the
// request context.
func AuthMiddleware(tokens TokenParser, authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}

	reject := func(c *gin.Context, reason string) {
		secLog.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), c.FullPath(), reason)
		_ = c.Error(apperror.Unauthorized(unauthorizedMessage))
		c.Abort()
	}

	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			reject(c, "missing_token")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			reject(c, err.Error())
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			reject(c, "invalid_subject")
			return
		}

		// A valid signature is not enough if the account is gone
		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil || user == nil {
			reject(c, "user_not_found")
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUsername), user.Username)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUsername, user.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractToken reads "Authorization: Bearer <token>" (scheme is case-insensitive)
// and falls back to the auth_token cookie when the header is absent.
func extractToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := c.Cookie(AuthCookieName)
	if err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
