package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type recruiterRepo struct {
	db *pgxpool.Pool
}

func NewRecruiterRepository(db *pgxpool.Pool) domain.RecruiterRepository {
	return &recruiterRepo{db: db}
}

const recruiterColumns = `id, email, password_hash, name, company_name, company_website, company_description, is_active, created_at, updated_at`

func scanRecruiter(row rowScanner) (*domain.Recruiter, error) {
	var rec domain.Recruiter
	err := row.Scan(
		&rec.ID, &rec.Email, &rec.PasswordHash, &rec.Name,
		&rec.Company.Name, &rec.Company.Website, &rec.Company.Description,
		&rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &rec, nil
}

func (r *recruiterRepo) Create(ctx context.Context, rec *domain.Recruiter) error {
	query := `INSERT INTO recruiters (` + recruiterColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.Email, rec.PasswordHash, rec.Name,
		rec.Company.Name, rec.Company.Website, rec.Company.Description,
		rec.IsActive, rec.CreatedAt, rec.UpdatedAt,
	)
	return mapError(err)
}

func (r *recruiterRepo) GetByID(ctx context.Context, id string) (*domain.Recruiter, error) {
	query := `SELECT ` + recruiterColumns + ` FROM recruiters WHERE id = $1`
	return scanRecruiter(r.db.QueryRow(ctx, query, id))
}

func (r *recruiterRepo) GetByEmail(ctx context.Context, email string) (*domain.Recruiter, error) {
	query := `SELECT ` + recruiterColumns + ` FROM recruiters WHERE email = $1`
	return scanRecruiter(r.db.QueryRow(ctx, query, email))
}
