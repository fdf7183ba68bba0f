package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, name, username, password_hash, phone_number, gender, date_of_birth, membership_status, address, profile_picture, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user        domain.User
		dateOfBirth *time.Time
		membership  string
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Username, &user.PasswordHash, &user.PhoneNumber, &user.Gender,
		&dateOfBirth, &membership, &user.Address, &user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateOfBirth != nil {
		user.DateOfBirth = domain.NewDate(*dateOfBirth)
	}
	user.MembershipStatus = domain.MembershipStatus(membership)
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		user.ID.String(), user.Name, user.Username, user.PasswordHash, user.PhoneNumber, user.Gender,
		user.DateOfBirth.Ptr(), string(user.MembershipStatus), user.Address, user.ProfilePicture,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.BadRequest("username already taken")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return user, err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return user, err
}
