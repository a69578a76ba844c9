package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	validate      *validator.Validate
	audit         *security.AuditLogger
	attempts      *security.PasswordAttemptTracker
	bcryptCost    int
	now           func() time.Time
}

func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	validate *validator.Validate,
	audit *security.AuditLogger,
	attempts *security.PasswordAttemptTracker,
	bcryptCost int,
) domain.CandidateUsecase {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		validate:      validate,
		audit:         audit,
		attempts:      attempts,
		bcryptCost:    bcryptCost,
		now:           time.Now,
	}
}

func (uc *candidateUsecase) Register(ctx context.Context, req *domain.CandidateRegistration) (*domain.Candidate, error) {
	req.Email = normalizeEmail(req.Email)
	if err := uc.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, apperror.BadRequest("Date of birth must be YYYY-MM-DD")
	}
	if domain.Age(dob, uc.now()) < domain.MinimumAge {
		return nil, apperror.Validation(apperror.ReasonUnderage, "You must be at least 18 years old to register as a candidate")
	}

	email := req.Email
	if _, err := uc.candidateRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict(apperror.ReasonEmailTaken, "An account with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now().UTC()
	candidate := &domain.Candidate{
		ID:                 uuid.NewString(),
		Email:              email,
		PasswordHash:       string(hash),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Phone:              strings.TrimSpace(req.Phone),
		DateOfBirth:        dob,
		Address:            req.Address,
		Skills:             []string{},
		Education:          []domain.Education{},
		Projects:           []domain.Project{},
		PreferredJobType:   "full-time",
		ExpectedSalary:     domain.SalaryRange{Currency: "USD"},
		PreferredLocations: []string{},
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	candidate.ProfileCompleteness = domain.ProfileCompleteness(candidate)

	if err := uc.candidateRepo.Create(ctx, candidate); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.ReasonEmailTaken, "An account with this email already exists")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("candidate registered",
		"candidate_id", candidate.ID,
		"email", security.MaskEmail(email),
	)
	return candidate, nil
}

func (uc *candidateUsecase) GetProfile(ctx context.Context, id string) (*domain.Candidate, error) {
	return loadActiveCandidate(ctx, uc.candidateRepo, id)
}

func (uc *candidateUsecase) UpdateProfile(ctx context.Context, id string, req *domain.CandidateProfileUpdate) (*domain.Candidate, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, id)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(candidate, req)
	candidate.ProfileCompleteness = domain.ProfileCompleteness(candidate)
	candidate.UpdatedAt = uc.now().UTC()

	if err := uc.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, apperror.Persistence(apperror.ReasonProfileSaveFailed, "Failed to save profile", err)
	}
	return candidate, nil
}

// applyProfileUpdate copies every field present in req. Unlike a résumé
// merge this overwrites, since the user typed the values.
func applyProfileUpdate(c *domain.Candidate, req *domain.CandidateProfileUpdate) {
	if req.FirstName != nil {
		c.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		c.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Experience != nil {
		c.Experience = *req.Experience
	}
	if req.Skills != nil {
		c.Skills = unionSkills(nil, req.Skills)
	}
	if req.Education != nil {
		c.Education = req.Education
	}
	if req.Projects != nil {
		c.Projects = req.Projects
	}
	if req.PortfolioURL != nil {
		c.PortfolioURL = *req.PortfolioURL
	}
	if req.LinkedInURL != nil {
		c.LinkedInURL = *req.LinkedInURL
	}
	if req.PreferredJobType != nil {
		c.PreferredJobType = *req.PreferredJobType
	}
	if req.ExpectedSalary != nil {
		c.ExpectedSalary = *req.ExpectedSalary
	}
	if req.PreferredLocations != nil {
		c.PreferredLocations = req.PreferredLocations
	}
}

func (uc *candidateUsecase) ChangePassword(ctx context.Context, id string, req *domain.ChangePasswordRequest) error {
	if err := uc.validate.Struct(req); err != nil {
		return validationError(err)
	}

	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, id)
	if err != nil {
		return err
	}
	blocked, err := uc.attempts.IsBlocked(ctx, id)
	if err != nil {
		logger.Log.Warn("password attempt check failed", "error", err)
	}
	if blocked {
		return tooManyAttempts()
	}
	if bcrypt.CompareHashAndPassword([]byte(candidate.PasswordHash), []byte(req.CurrentPassword)) != nil {
		blocked, _, err := uc.attempts.RecordFailure(ctx, id)
		if err != nil {
			logger.Log.Warn("failed to record password attempt", "error", err)
		}
		if blocked {
			return tooManyAttempts()
		}
		return apperror.Unauthorized("Current password is incorrect")
	}
	if err := uc.attempts.Clear(ctx, id); err != nil {
		logger.Log.Warn("failed to clear password attempts", "error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), uc.bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := uc.candidateRepo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return apperror.Internal(err)
	}

	uc.audit.Log(ctx, security.AuditEvent{
		Event:     security.EventPasswordChanged,
		ActorID:   id,
		ActorRole: domain.RoleCandidate,
	})
	return nil
}

// Deactivate soft-closes the account; the row and its applications remain.
func (uc *candidateUsecase) Deactivate(ctx context.Context, id string) error {
	if _, err := loadActiveCandidate(ctx, uc.candidateRepo, id); err != nil {
		return err
	}
	if err := uc.candidateRepo.Deactivate(ctx, id); err != nil {
		return apperror.Internal(err)
	}

	uc.audit.Log(ctx, security.AuditEvent{
		Event:     security.EventAccountDeactivated,
		ActorID:   id,
		ActorRole: domain.RoleCandidate,
	})
	return nil
}

func loadActiveCandidate(ctx context.Context, repo domain.CandidateRepository, id string) (*domain.Candidate, error) {
	candidate, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	if !candidate.IsActive {
		return nil, apperror.NotFound("Candidate not found")
	}
	return candidate, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validationError(err error) error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperror.Internal(err)
	}
	return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
}

func tooManyAttempts() *apperror.AppError {
	return apperror.New(http.StatusTooManyRequests, apperror.KindAuthorization, apperror.ReasonTooManyAttempts,
		"Too many incorrect password attempts. Please try again later.", nil)
}
