package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-jobs-backend/internal/domain"
	"go-jobs-backend/internal/usecase"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, id uuid.UUID, patch domain.JobPatch, updatedAt time.Time) (*domain.Job, error) {
	args := m.Called(ctx, id, patch, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Collaborator fakes
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) bool  { return hash == "hashed:"+password }

type fakeTokens struct{ err error }

func (f fakeTokens) Generate(userID uuid.UUID, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + username, nil
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, username, ip string) (bool, error) {
	args := m.Called(ctx, username, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) RecordFailedAttempt(ctx context.Context, username, ip, userAgent, requestID string) (bool, int, error) {
	args := m.Called(ctx, username, ip, userAgent, requestID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockGuard) ClearAttempts(ctx context.Context, username, ip string) error {
	return m.Called(ctx, username, ip).Error(0)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	return appErr.Code
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create user, hash password and issue token", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{}, new(MockGuard), nil)

		repo.On("GetByUsername", ctx, "john@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "hashed:MoiMoi123!~!@", u.PasswordHash)
			assert.NotEqual(t, uuid.Nil, u.ID)
			assert.Equal(t, domain.MembershipInactive, u.MembershipStatus)
		})

		res, err := uc.Signup(ctx, domain.SignupInput{Name: "John Doe", Username: " john@example.com ", Password: "MoiMoi123!~!@"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-john@example.com", res.Token)
		assert.Equal(t, "john@example.com", res.User.Username)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject duplicate username", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{}, new(MockGuard), nil)
		repo.On("GetByUsername", ctx, "john").Return(&domain.User{Username: "john"}, nil)

		_, err := uc.Signup(ctx, domain.SignupInput{Name: "John", Username: "john", Password: "pw"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Contains(t, err.Error(), "username already taken")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject missing required fields", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), fakeHasher{}, fakeTokens{}, new(MockGuard), nil)
		_, err := uc.Signup(ctx, domain.SignupInput{Username: "john", Password: "pw"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("Should surface token failure as internal", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{err: errors.New("no secret")}, new(MockGuard), nil)
		repo.On("GetByUsername", ctx, "john").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := uc.Signup(ctx, domain.SignupInput{Name: "John", Username: "john", Password: "pw"})
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: uuid.New(), Username: "john", PasswordHash: "hashed:secret"}

	t.Run("Should issue token and clear attempts", func(t *testing.T) {
		repo := new(MockUserRepo)
		guard := new(MockGuard)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{}, guard, nil)

		guard.On("IsBlocked", ctx, "john", "10.0.0.1").Return(false, nil)
		guard.On("ClearAttempts", ctx, "john", "10.0.0.1").Return(nil)
		repo.On("GetByUsername", ctx, "john").Return(stored, nil)

		token, err := uc.Login(ctx, domain.LoginInput{Username: "john", Password: "secret", IP: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-john", token)
		guard.AssertExpectations(t)
	})

	t.Run("Should not reveal whether user exists", func(t *testing.T) {
		repo := new(MockUserRepo)
		guard := new(MockGuard)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{}, guard, nil)

		guard.On("IsBlocked", ctx, mock.Anything, mock.Anything).Return(false, nil)
		guard.On("RecordFailedAttempt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, 1, nil)
		repo.On("GetByUsername", ctx, "john").Return(stored, nil)
		repo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, errWrongPw := uc.Login(ctx, domain.LoginInput{Username: "john", Password: "nope"})
		_, errNoUser := uc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "secret"})

		require.Error(t, errWrongPw)
		require.Error(t, errNoUser)
		assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, errWrongPw))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, errNoUser))
		guard.AssertNumberOfCalls(t, "RecordFailedAttempt", 2)
	})

	t.Run("Should refuse blocked username", func(t *testing.T) {
		repo := new(MockUserRepo)
		guard := new(MockGuard)
		uc := usecase.NewAuthUsecase(repo, fakeHasher{}, fakeTokens{}, guard, nil)
		guard.On("IsBlocked", ctx, "john", "").Return(true, nil)

		_, err := uc.Login(ctx, domain.LoginInput{Username: "john", Password: "secret"})
		assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err))
		repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})
}

func validJob() *domain.Job {
	return &domain.Job{
		Title:       "Front-End Engineer (React & Redux)",
		Type:        "Full-Time",
		Description: "Join our team.",
		Company: domain.Company{
			Name:         "Veneer Solutions",
			ContactEmail: "contact@loremipsum.com",
			ContactPhone: "555-555-5555",
		},
		Location: "Espoo",
		Salary:   70000,
	}
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("Should set owner, id, defaults", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job := validJob()
		require.NoError(t, uc.CreateJob(ctx, owner, job))
		assert.Equal(t, owner, job.CreatedBy)
		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, domain.JobStatusOpen, job.Status)
		assert.False(t, job.PostedDate.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("Should fail with 500 when company is missing", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())

		job := &domain.Job{Title: "Job title 1", Type: "Job type 1", Description: "Job description 1"}
		err := uc.CreateJob(ctx, owner, job)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Contains(t, err.Error(), "company.name: is required")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown status", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), newValidator())
		job := validJob()
		job.Status = "archived"
		err := uc.CreateJob(ctx, owner, job)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("Should require an authenticated owner", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), newValidator())
		err := uc.CreateJob(ctx, uuid.Nil, validJob())
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestJobLookups(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Should map missing job to 404", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		repo.On("GetByID", ctx, id).Return(nil, domain.ErrNotFound)
		repo.On("Delete", ctx, id).Return(domain.ErrNotFound)
		repo.On("Update", ctx, id, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := uc.GetJobDetails(ctx, id)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))

		err = uc.DeleteJob(ctx, id)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))

		title := "Changed Titled"
		_, err = uc.UpdateJob(ctx, id, domain.JobPatch{Title: &title})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("Should never return nil list", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		repo.On("Fetch", ctx).Return(nil, nil)

		jobs, err := uc.ListJobs(ctx)
		require.NoError(t, err)
		assert.NotNil(t, jobs)
		assert.Empty(t, jobs)
	})

	t.Run("Should surface storage failure as 500", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		repo.On("GetByID", ctx, id).Return(nil, errors.New("connection reset"))

		_, err := uc.GetJobDetails(ctx, id)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.NotContains(t, err.Error(), "connection reset")
	})
}

func TestUpdateJobValidation(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Should pass patch through unchanged", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		title := "Changed Titled"
		patch := domain.JobPatch{Title: &title}
		updated := &domain.Job{ID: id, Title: title}
		repo.On("Update", ctx, id, patch, mock.AnythingOfType("time.Time")).Return(updated, nil)

		job, err := uc.UpdateJob(ctx, id, patch)
		require.NoError(t, err)
		assert.Equal(t, "Changed Titled", job.Title)
	})

	t.Run("Should reject blank title and bad status", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, newValidator())
		blank := "  "
		status := domain.JobStatus("archived")

		_, err := uc.UpdateJob(ctx, id, domain.JobPatch{Title: &blank, Status: &status})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
		assert.Contains(t, err.Error(), "title: is required")
		assert.Contains(t, err.Error(), "status: must be one of")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealth(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    nil,
	})
	status, ok := uc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "up", status["postgres"])
	assert.Equal(t, "disabled", status["redis"])

	uc = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"postgres": func(ctx context.Context) error { return errors.New("down") },
	})
	status, ok = uc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
}
