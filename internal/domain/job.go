package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Company is embedded in every job posting and stored alongside it.
type Company struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Company     Company   `json:"company"`
	Location    string    `json:"location"`
	Salary      float64   `json:"salary"`
	PostedDate  Date      `json:"postedDate"`
	Status      JobStatus `json:"status"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanyPatch carries only the company fields a client supplied.
type CompanyPatch struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

func (p *CompanyPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.ContactEmail == nil && p.ContactPhone == nil)
}

// JobPatch is a partial update. Nil fields are left untouched.
type JobPatch struct {
	Title       *string
	Type        *string
	Description *string
	Company     *CompanyPatch
	Location    *string
	Salary      *float64
	PostedDate  *Date
	Status      *JobStatus
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	Fetch(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, id uuid.UUID, patch JobPatch, updatedAt time.Time) (*Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID uuid.UUID, job *Job) error
	GetJobDetails(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}
