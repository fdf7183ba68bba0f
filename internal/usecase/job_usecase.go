package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// jobDocument mirrors the stored job shape with its validation rules.
type jobDocument struct {
	Title       string           `validate:"required,not_blank"`
	Type        string           `validate:"required,not_blank"`
	Description string           `validate:"required,not_blank"`
	Company     companyDocument
	Location    string
	Salary      float64          `validate:"gte=0"`
	Status      domain.JobStatus `validate:"required,oneof=open closed"`
}

type companyDocument struct {
	Name         string `validate:"required,not_blank"`
	ContactEmail string `validate:"required,email"`
	ContactPhone string `validate:"required,not_blank"`
}

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
		now:      time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID uuid.UUID, job *domain.Job) error {
	if userID == uuid.Nil {
		return apperror.Unauthorized("authorization token missing or invalid")
	}

	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}

	doc := jobDocument{
		Title:       job.Title,
		Type:        job.Type,
		Description: job.Description,
		Company: companyDocument{
			Name:         job.Company.Name,
			ContactEmail: job.Company.ContactEmail,
			ContactPhone: job.Company.ContactPhone,
		},
		Location: job.Location,
		Salary:   job.Salary,
		Status:   job.Status,
	}
	if err := u.validate.Struct(doc); err != nil {
		return apperror.Validation("job validation failed: "+validation.Message(err), err)
	}

	now := u.now().UTC()
	job.ID = uuid.New()
	job.CreatedBy = userID
	if job.PostedDate.IsZero() {
		job.PostedDate = domain.NewDate(now)
	}
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id uuid.UUID, patch domain.JobPatch) (*domain.Job, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.Update(ctx, id, patch, u.now().UTC())
	if err != nil {
		return nil, notFoundOr(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// validatePatch applies the create rules to the fields a patch supplies.
func validatePatch(p domain.JobPatch) error {
	var problems []string
	blank := func(s *string) bool { return s != nil && strings.TrimSpace(*s) == "" }

	if blank(p.Title) {
		problems = append(problems, "title: is required")
	}
	if blank(p.Type) {
		problems = append(problems, "type: is required")
	}
	if blank(p.Description) {
		problems = append(problems, "description: is required")
	}
	if p.Company != nil {
		if blank(p.Company.Name) {
			problems = append(problems, "company.name: is required")
		}
		if blank(p.Company.ContactEmail) {
			problems = append(problems, "company.contactEmail: is required")
		}
		if blank(p.Company.ContactPhone) {
			problems = append(problems, "company.contactPhone: is required")
		}
	}
	if p.Salary != nil && *p.Salary < 0 {
		problems = append(problems, "salary: must be greater than or equal to 0")
	}
	if p.Status != nil && !p.Status.Valid() {
		problems = append(problems, "status: must be one of: open, closed")
	}

	if len(problems) > 0 {
		return apperror.Validation("job validation failed: "+strings.Join(problems, "; "), nil)
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("job not found")
	}
	return apperror.Internal(err)
}
