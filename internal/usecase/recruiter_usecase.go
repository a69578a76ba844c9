package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type recruiterUsecase struct {
	recruiterRepo domain.RecruiterRepository
	validate      *validator.Validate
	bcryptCost    int
}

func NewRecruiterUsecase(recruiterRepo domain.RecruiterRepository, validate *validator.Validate, bcryptCost int) domain.RecruiterUsecase {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &recruiterUsecase{
		recruiterRepo: recruiterRepo,
		validate:      validate,
		bcryptCost:    bcryptCost,
	}
}

func (uc *recruiterUsecase) Register(ctx context.Context, req *domain.RecruiterRegistration) (*domain.Recruiter, error) {
	req.Email = normalizeEmail(req.Email)
	if err := uc.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	email := req.Email
	if _, err := uc.recruiterRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict(apperror.ReasonEmailTaken, "An account with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	recruiter := &domain.Recruiter{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Company:      req.Company,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.recruiterRepo.Create(ctx, recruiter); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.ReasonEmailTaken, "An account with this email already exists")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("recruiter registered",
		"recruiter_id", recruiter.ID,
		"email", security.MaskEmail(email),
	)
	return recruiter, nil
}

func (uc *recruiterUsecase) GetProfile(ctx context.Context, id string) (*domain.Recruiter, error) {
	return loadActiveRecruiter(ctx, uc.recruiterRepo, id)
}

func loadActiveRecruiter(ctx context.Context, repo domain.RecruiterRepository, id string) (*domain.Recruiter, error) {
	recruiter, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter not found")
		}
		return nil, apperror.Internal(err)
	}
	if !recruiter.IsActive {
		return nil, apperror.Forbidden("Recruiter account is inactive")
	}
	return recruiter, nil
}
