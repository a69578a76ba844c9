package postgres

import (
	"context"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `
	j.id, j.recruiter_id, j.title, j.description, j.type,
	j.salary_min, j.salary_max, j.salary_currency,
	j.location_city, j.location_state, j.location_country, j.location_remote,
	j.skills, j.company_name, j.company_website, j.company_description,
	j.is_active, j.created_at, j.updated_at`

// Applicant count for listings, read from the same rows the candidate sees
const applicantCountColumn = `(SELECT COUNT(*) FROM job_applicants a WHERE a.job_id = j.id)`

func scanJob(row rowScanner, extra ...any) (*domain.Job, error) {
	var job domain.Job
	var skills []string
	dest := []any{
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Type,
		&job.Salary.Min, &job.Salary.Max, &job.Salary.Currency,
		&job.Location.City, &job.Location.State, &job.Location.Country, &job.Location.Remote,
		pq.Array(&skills), &job.Company.Name, &job.Company.Website, &job.Company.Description,
		&job.IsActive, &job.CreatedAt, &job.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapError(err)
	}
	job.Skills = nonNil(skills)
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			id, recruiter_id, title, description, type,
			salary_min, salary_max, salary_currency,
			location_city, location_state, location_country, location_remote,
			skills, company_name, company_website, company_description,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.RecruiterID, job.Title, job.Description, job.Type,
		job.Salary.Min, job.Salary.Max, job.Salary.Currency,
		job.Location.City, job.Location.State, job.Location.Country, job.Location.Remote,
		pq.Array(job.Skills), job.Company.Name, job.Company.Website, job.Company.Description,
		job.IsActive, job.CreatedAt, job.UpdatedAt,
	)
	return mapError(err)
}

// GetByID loads the job, its applicants in application order and the ids of
// candidates who saved it.
func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	// 1. Job row
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id))
	if err != nil {
		return nil, err
	}

	// 2. Applicants
	rows, err := r.db.Query(ctx, `
		SELECT job_id, candidate_id, status, cover_letter, applied_at, updated_at
		FROM job_applicants WHERE job_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applicants: %w", err)
	}
	defer rows.Close()

	job.Applicants = []domain.Applicant{}
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(&a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		job.Applicants = append(job.Applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 3. Saves
	saveRows, err := r.db.Query(ctx, `SELECT candidate_id FROM job_saves WHERE job_id = $1 ORDER BY saved_at`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saves: %w", err)
	}
	defer saveRows.Close()

	job.SavedBy = []string{}
	for saveRows.Next() {
		var candidateID string
		if err := saveRows.Scan(&candidateID); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		job.SavedBy = append(job.SavedBy, candidateID)
	}
	return job, saveRows.Err()
}

// Update never rewrites recruiter_id or is_active.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET
			title = $2, description = $3, type = $4,
			salary_min = $5, salary_max = $6, salary_currency = $7,
			location_city = $8, location_state = $9, location_country = $10, location_remote = $11,
			skills = $12, company_name = $13, company_website = $14, company_description = $15,
			updated_at = $16
		WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Type,
		job.Salary.Min, job.Salary.Max, job.Salary.Currency,
		job.Location.City, job.Location.State, job.Location.Country, job.Location.Remote,
		pq.Array(job.Skills), job.Company.Name, job.Company.Website, job.Company.Description,
		job.UpdatedAt,
	))
}

func (r *jobRepo) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE jobs SET is_active = $2, updated_at = NOW() WHERE id = $1`
	return affected(r.db.Exec(ctx, query, id, active))
}

// ListActive is the public listing. The active filter is fixed in SQL.
func (r *jobRepo) ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.JobSummary, int64, error) {
	where, args := activeJobFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `SELECT ` + jobColumns + `, ` + applicantCountColumn + ` FROM jobs j` + where +
		fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	jobs, err := r.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func activeJobFilter(filter domain.JobFilter) (string, []any) {
	where := " WHERE j.is_active = TRUE"
	args := []any{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND j.type = $%d", len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (j.location_city ILIKE $%d OR j.location_state ILIKE $%d OR j.location_country ILIKE $%d)", n, n, n)
	}
	return where, args
}

func (r *jobRepo) ListByRecruiter(ctx context.Context, recruiterID string, active *bool) ([]domain.JobSummary, error) {
	query := `SELECT ` + jobColumns + `, ` + applicantCountColumn + ` FROM jobs j WHERE j.recruiter_id = $1`
	args := []any{recruiterID}
	if active != nil {
		query += " AND j.is_active = $2"
		args = append(args, *active)
	}
	query += " ORDER BY j.created_at DESC"
	return r.querySummaries(ctx, query, args...)
}

func (r *jobRepo) querySummaries(ctx context.Context, query string, args ...any) ([]domain.JobSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.JobSummary{}
	for rows.Next() {
		var count int
		job, err := scanJob(rows, &count)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, domain.JobSummary{Job: *job, ApplicantCount: count})
	}
	return jobs, rows.Err()
}
