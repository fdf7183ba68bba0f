package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewTokenService("test-secret", "go-jobs-backend", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "john@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", claims.Username)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejects(t *testing.T) {
	svc := NewTokenService("test-secret", "go-jobs-backend", time.Hour)
	userID := uuid.New()

	t.Run("expired token", func(t *testing.T) {
		past := NewTokenService("test-secret", "go-jobs-backend", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Generate(userID, "john")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", "go-jobs-backend", time.Hour)
		token, err := other.Generate(userID, "john")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenService("test-secret", "someone-else", time.Hour)
		token, err := other.Generate(userID, "john")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "go-jobs-backend",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMissingSecret(t *testing.T) {
	svc := NewTokenService("", "go-jobs-backend", time.Hour)
	_, err := svc.Generate(uuid.New(), "john")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = svc.Parse("anything")
	assert.ErrorIs(t, err, ErrNoSecret)
}
