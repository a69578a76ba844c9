package domain

import (
	"context"
	"time"
)

type Recruiter struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Company      Company   `json:"company"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RecruiterRegistration struct {
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     string  `json:"name" validate:"required,max=100,valid_name"`
	Company  Company `json:"company"`
}

type RecruiterRepository interface {
	Create(ctx context.Context, r *Recruiter) error
	GetByID(ctx context.Context, id string) (*Recruiter, error)
	GetByEmail(ctx context.Context, email string) (*Recruiter, error)
}

type RecruiterUsecase interface {
	Register(ctx context.Context, req *RecruiterRegistration) (*Recruiter, error)
	GetProfile(ctx context.Context, id string) (*Recruiter, error)
}
