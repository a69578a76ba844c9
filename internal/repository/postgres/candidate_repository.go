package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, email, password_hash, first_name, last_name, phone, date_of_birth,
	address_street, address_city, address_state, address_zip_code, address_country,
	experience, skills, education, projects, portfolio_url, linkedin_url,
	preferred_job_type, salary_min, salary_max, salary_currency, preferred_locations,
	resume_filename, resume_original_name, resume_path, resume_size, resume_uploaded_at,
	profile_completeness, is_active, created_at, updated_at`

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var (
		c             domain.Candidate
		skills        []string
		locations     []string
		educationJSON []byte
		projectsJSON  []byte
		resumeName    *string
		resumeOrig    *string
		resumePath    *string
		resumeSize    *int64
		resumeAt      *time.Time
	)
	err := row.Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &c.Phone, &c.DateOfBirth,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.ZipCode, &c.Address.Country,
		&c.Experience, pq.Array(&skills), &educationJSON, &projectsJSON, &c.PortfolioURL, &c.LinkedInURL,
		&c.PreferredJobType, &c.ExpectedSalary.Min, &c.ExpectedSalary.Max, &c.ExpectedSalary.Currency, pq.Array(&locations),
		&resumeName, &resumeOrig, &resumePath, &resumeSize, &resumeAt,
		&c.ProfileCompleteness, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	c.Skills = nonNil(skills)
	c.PreferredLocations = nonNil(locations)
	c.Education = []domain.Education{}
	c.Projects = []domain.Project{}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &c.Education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
	}
	if len(projectsJSON) > 0 {
		if err := json.Unmarshal(projectsJSON, &c.Projects); err != nil {
			return nil, fmt.Errorf("decode projects: %w", err)
		}
	}

	if resumePath != nil {
		c.Resume = &domain.ResumeFile{
			Filename:     deref(resumeName),
			OriginalName: deref(resumeOrig),
			Path:         *resumePath,
		}
		if resumeSize != nil {
			c.Resume.Size = *resumeSize
		}
		if resumeAt != nil {
			c.Resume.UploadDate = *resumeAt
		}
	}
	return &c, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	education, projects, err := encodeHistory(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (
			id, email, password_hash, first_name, last_name, phone, date_of_birth,
			address_street, address_city, address_state, address_zip_code, address_country,
			experience, skills, education, projects, portfolio_url, linkedin_url,
			preferred_job_type, salary_min, salary_max, salary_currency, preferred_locations,
			profile_completeness, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15::jsonb, $16::jsonb, $17, $18,
			$19, $20, $21, $22, $23,
			$24, $25, $26, $27
		)`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.Phone, c.DateOfBirth,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.ZipCode, c.Address.Country,
		c.Experience, pq.Array(c.Skills), education, projects, c.PortfolioURL, c.LinkedInURL,
		c.PreferredJobType, c.ExpectedSalary.Min, c.ExpectedSalary.Max, c.ExpectedSalary.Currency, pq.Array(c.PreferredLocations),
		c.ProfileCompleteness, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	return mapError(err)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, email))
}

// Update writes profile fields only. The résumé reference, password and
// active flag have their own statements.
func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	education, projects, err := encodeHistory(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE candidates SET
			email = $2, first_name = $3, last_name = $4, phone = $5,
			address_street = $6, address_city = $7, address_state = $8, address_zip_code = $9, address_country = $10,
			experience = $11, skills = $12, education = $13::jsonb, projects = $14::jsonb,
			portfolio_url = $15, linkedin_url = $16, preferred_job_type = $17,
			salary_min = $18, salary_max = $19, salary_currency = $20, preferred_locations = $21,
			profile_completeness = $22, updated_at = $23
		WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		c.ID, c.Email, c.FirstName, c.LastName, c.Phone,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.ZipCode, c.Address.Country,
		c.Experience, pq.Array(c.Skills), education, projects,
		c.PortfolioURL, c.LinkedInURL, c.PreferredJobType,
		c.ExpectedSalary.Min, c.ExpectedSalary.Max, c.ExpectedSalary.Currency, pq.Array(c.PreferredLocations),
		c.ProfileCompleteness, c.UpdatedAt,
	))
}

// UpdateResume records the stored file in a single-row statement so the
// reference is durable before parsing starts.
func (r *candidateRepository) UpdateResume(ctx context.Context, id string, resume *domain.ResumeFile) error {
	query := `
		UPDATE candidates SET
			resume_filename = $2, resume_original_name = $3, resume_path = $4,
			resume_size = $5, resume_uploaded_at = $6, updated_at = NOW()
		WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		id, resume.Filename, resume.OriginalName, resume.Path, resume.Size, resume.UploadDate,
	))
}

func (r *candidateRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	query := `UPDATE candidates SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	return affected(r.db.Exec(ctx, query, id, hash))
}

func (r *candidateRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE candidates SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	return affected(r.db.Exec(ctx, query, id))
}

func encodeHistory(c *domain.Candidate) (string, string, error) {
	education, err := json.Marshal(nonNil(c.Education))
	if err != nil {
		return "", "", fmt.Errorf("encode education: %w", err)
	}
	projects, err := json.Marshal(nonNil(c.Projects))
	if err != nil {
		return "", "", fmt.Errorf("encode projects: %w", err)
	}
	return string(education), string(projects), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
