package postgres

import (
	"context"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// applicationRepo owns job_applicants and job_saves. The candidate-side
// application list is a query over job_applicants, never a second copy.
type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// AddApplicant relies on UNIQUE(job_id, candidate_id); a concurrent second
// insert surfaces as domain.ErrDuplicate.
func (r *applicationRepo) AddApplicant(ctx context.Context, a *domain.Applicant) error {
	query := `
		INSERT INTO job_applicants (job_id, candidate_id, status, cover_letter, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, a.JobID, a.CandidateID, a.Status, a.CoverLetter, a.AppliedAt, a.UpdatedAt)
	return mapError(err)
}

// ListApplicants joins candidate contact details for the recruiter view.
func (r *applicationRepo) ListApplicants(ctx context.Context, jobID string) ([]domain.Applicant, error) {
	query := `
		SELECT
			a.job_id, a.candidate_id, a.status, a.cover_letter, a.applied_at, a.updated_at,
			TRIM(c.first_name || ' ' || c.last_name) AS candidate_name,
			c.email,
			c.resume_path IS NOT NULL AS has_resume
		FROM job_applicants a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.seq`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applicants: %w", err)
	}
	defer rows.Close()

	applicants := []domain.Applicant{}
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(
			&a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.AppliedAt, &a.UpdatedAt,
			&a.CandidateName, &a.CandidateEmail, &a.HasResume,
		); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

func (r *applicationRepo) UpdateApplicantStatus(ctx context.Context, jobID, candidateID, status string) error {
	query := `UPDATE job_applicants SET status = $3, updated_at = NOW() WHERE job_id = $1 AND candidate_id = $2`
	return affected(r.db.Exec(ctx, query, jobID, candidateID, status))
}

func (r *applicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.CandidateApplication, error) {
	query := `
		SELECT a.job_id, j.title, j.company_name, j.is_active, a.applied_at, a.status
		FROM job_applicants a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.seq`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.CandidateApplication{}
	for rows.Next() {
		var app domain.CandidateApplication
		if err := rows.Scan(&app.JobID, &app.JobTitle, &app.CompanyName, &app.JobIsActive, &app.AppliedDate, &app.Status); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) AddSave(ctx context.Context, jobID, candidateID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO job_saves (job_id, candidate_id) VALUES ($1, $2)`, jobID, candidateID)
	return mapError(err)
}

func (r *applicationRepo) RemoveSave(ctx context.Context, jobID, candidateID string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM job_saves WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID))
}

func (r *applicationRepo) ListSavedJobs(ctx context.Context, candidateID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM job_saves s JOIN jobs j ON j.id = s.job_id
              WHERE s.candidate_id = $1 ORDER BY s.saved_at DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
