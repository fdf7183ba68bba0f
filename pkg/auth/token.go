// Package auth issues and verifies the bearer tokens handed out at signup and login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoSecret     = errors.New("token secret is not configured")
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService handles JWT token operations
type TokenService struct {
	secret   []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
}

func NewTokenService(secret, issuer string, duration time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		duration: duration,
		now:      time.Now,
	}
}

// Generate signs a token for the given user.
func (s *TokenService) Generate(userID uuid.UUID, username string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}

	now := s.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates signature, issuer and expiry and returns the claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
