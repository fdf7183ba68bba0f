package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "Active"
	MembershipInactive MembershipStatus = "Inactive"
)

type User struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Username         string           `json:"username"`
	PasswordHash     string           `json:"-"`
	PhoneNumber      string           `json:"phone_number"`
	Gender           string           `json:"gender"`
	DateOfBirth      Date             `json:"date_of_birth"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	Address          string           `json:"address"`
	ProfilePicture   string           `json:"profile_picture"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// SignupInput is the account data submitted on registration.
type SignupInput struct {
	Name             string
	Username         string
	Password         string
	PhoneNumber      string
	Gender           string
	DateOfBirth      Date
	MembershipStatus MembershipStatus
	Address          string
	ProfilePicture   string
}

// LoginInput carries credentials plus request metadata for lockout tracking.
type LoginInput struct {
	Username  string
	Password  string
	IP        string
	UserAgent string
	RequestID string
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type AuthUsecase interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (string, error)
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*User, error)
}
