package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobs-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, type, description, company, location, salary, posted_date, status, created_by, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job        domain.Job
		company    []byte
		postedDate *time.Time
		createdBy  *uuid.UUID
		status     string
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.Type, &job.Description, &company, &job.Location, &job.Salary,
		&postedDate, &status, &createdBy, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(company) > 0 {
		if err := json.Unmarshal(company, &job.Company); err != nil {
			return nil, fmt.Errorf("decode company for job %s: %w", job.ID, err)
		}
	}
	if postedDate != nil {
		job.PostedDate = domain.NewDate(*postedDate)
	}
	if createdBy != nil {
		job.CreatedBy = *createdBy
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	company, err := json.Marshal(job.Company)
	if err != nil {
		return fmt.Errorf("encode company: %w", err)
	}

	query := `INSERT INTO jobs (` + jobColumns + `)
              VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		job.ID.String(), job.Title, job.Type, job.Description, string(company), job.Location, job.Salary,
		job.PostedDate.Ptr(), string(job.Status), job.CreatedBy.String(), job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update applies the patch in a single statement; NULL parameters keep the
// stored value and the company document is merged key by key.
func (r *jobRepo) Update(ctx context.Context, id uuid.UUID, patch domain.JobPatch, updatedAt time.Time) (*domain.Job, error) {
	companyPatch := []byte("{}")
	if !patch.Company.IsEmpty() {
		var err error
		if companyPatch, err = json.Marshal(patch.Company); err != nil {
			return nil, fmt.Errorf("encode company patch: %w", err)
		}
	}

	var postedDate *time.Time
	if patch.PostedDate != nil {
		postedDate = patch.PostedDate.Ptr()
	}
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	query := `UPDATE jobs SET
		title = COALESCE($2, title),
		type = COALESCE($3, type),
		description = COALESCE($4, description),
		company = company || $5::jsonb,
		location = COALESCE($6, location),
		salary = COALESCE($7, salary),
		posted_date = COALESCE($8, posted_date),
		status = COALESCE($9, status),
		updated_at = $10
	WHERE id = $1
	RETURNING ` + jobColumns
	job, err := scanJob(r.db.QueryRow(ctx, query,
		id.String(), patch.Title, patch.Type, patch.Description, string(companyPatch),
		patch.Location, patch.Salary, postedDate, status, updatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
