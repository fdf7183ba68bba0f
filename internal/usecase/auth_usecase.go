package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/security"

	"github.com/google/uuid"
)

// PasswordHasher is the one-way hashing primitive used for account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Generate(userID uuid.UUID, username string) (string, error)
}

// LoginGuard tracks failed logins. *security.LoginTracker implements it.
type LoginGuard interface {
	IsBlocked(ctx context.Context, username, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, username, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, username, ip string) error
}

const invalidCredentials = "invalid credentials"

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	guard    LoginGuard
	secLog   *security.SecurityLogger
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, guard LoginGuard, secLog *security.SecurityLogger) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		guard:    guard,
		secLog:   secLog,
	}
}

func (u *authUsecase) Signup(ctx context.Context, input domain.SignupInput) (*domain.AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Username == "" || input.Password == "" {
		return nil, apperror.BadRequest("name, username and password are required")
	}

	existing, err := u.userRepo.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.BadRequest("username already taken")
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, security.ErrFailedToHashPassword) {
			return nil, apperror.BadRequest("password cannot be used")
		}
		return nil, apperror.Internal(err)
	}

	if input.MembershipStatus == "" {
		input.MembershipStatus = domain.MembershipInactive
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:               uuid.New(),
		Name:             input.Name,
		Username:         input.Username,
		PasswordHash:     hash,
		PhoneNumber:      input.PhoneNumber,
		Gender:           input.Gender,
		DateOfBirth:      input.DateOfBirth,
		MembershipStatus: input.MembershipStatus,
		Address:          input.Address,
		ProfilePicture:   input.ProfilePicture,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// the unique index still guards against a concurrent signup with the same username
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.secLog.LogSignup(ctx, user.Username, requestIDFrom(ctx))
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (u *authUsecase) Login(ctx context.Context, input domain.LoginInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return "", apperror.Unauthorized(invalidCredentials)
	}

	blocked, err := u.guard.IsBlocked(ctx, username, input.IP)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if blocked {
		u.secLog.LogLoginBlocked(ctx, username, input.IP, input.UserAgent, input.RequestID)
		return "", apperror.TooManyRequests("too many failed login attempts, try again later")
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", apperror.Internal(err)
	}
	if user == nil || !u.hasher.Compare(user.PasswordHash, input.Password) {
		// tracking failures must not mask the credential error
		_, _, _ = u.guard.RecordFailedAttempt(ctx, username, input.IP, input.UserAgent, input.RequestID)
		return "", apperror.Unauthorized(invalidCredentials)
	}

	_ = u.guard.ClearAttempts(ctx, username, input.IP)

	token, err := u.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", apperror.Internal(err)
	}

	u.secLog.LogLoginSuccess(ctx, username, input.IP, input.UserAgent, input.RequestID)
	return token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
