package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type jobUsecase struct {
	jobRepo       domain.JobRepository
	recruiterRepo domain.RecruiterRepository
	validate      *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, recruiterRepo domain.RecruiterRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:       jobRepo,
		recruiterRepo: recruiterRepo,
		validate:      validate,
	}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, recruiterID string, input *domain.JobInput) (*domain.Job, error) {
	recruiter, err := loadActiveRecruiter(ctx, uc.recruiterRepo, recruiterID)
	if err != nil {
		return nil, err
	}

	// Jobs posted without company details inherit the recruiter's
	if input.Company.Name == "" {
		input.Company = recruiter.Company
	}
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:          uuid.NewString(),
		RecruiterID: recruiterID,
		IsActive:    true,
		CreatedAt:   now,
	}
	applyJobInput(job, input, now)

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, recruiterID, jobID string, input *domain.JobInput) (*domain.Job, error) {
	job, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID)
	if err != nil {
		return nil, err
	}
	if input.Company.Name == "" {
		input.Company = job.Company
	}
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	// RecruiterID is never taken from input
	applyJobInput(job, input, time.Now().UTC())
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// CloseJob soft-deletes the job. Applicants and saves are kept.
func (uc *jobUsecase) CloseJob(ctx context.Context, recruiterID, jobID string) error {
	if _, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID); err != nil {
		return err
	}
	if err := uc.jobRepo.SetActive(ctx, jobID, false); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return loadJob(ctx, uc.jobRepo, jobID)
}

func (uc *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.JobSummary], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	if filter.Type != "" && !isJobType(filter.Type) {
		return nil, apperror.BadRequest("Unknown job type: " + filter.Type)
	}
	filter.Location = strings.TrimSpace(filter.Location)

	jobs, total, err := uc.jobRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, filter.Page, filter.PageSize), nil
}

// ListRecruiterJobs accepts status "", "active" or "inactive".
func (uc *jobUsecase) ListRecruiterJobs(ctx context.Context, recruiterID, status string) ([]domain.JobSummary, error) {
	var active *bool
	switch status {
	case "":
	case "active", "inactive":
		v := status == "active"
		active = &v
	default:
		return nil, apperror.BadRequest("status must be active or inactive")
	}

	jobs, err := uc.jobRepo.ListByRecruiter(ctx, recruiterID, active)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.JobSummary{}
	}
	return jobs, nil
}

func (uc *jobUsecase) validateInput(input *domain.JobInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return validationError(err)
	}
	if input.Salary.Max > 0 && input.Salary.Max < input.Salary.Min {
		return apperror.BadRequest("Maximum salary must not be less than minimum salary")
	}
	return nil
}

func applyJobInput(job *domain.Job, input *domain.JobInput, now time.Time) {
	job.Title = strings.TrimSpace(input.Title)
	job.Description = input.Description
	job.Type = input.Type
	job.Salary = input.Salary
	if job.Salary.Currency == "" {
		job.Salary.Currency = "USD"
	}
	job.Location = input.Location
	job.Skills = unionSkills(nil, input.Skills)
	job.Company = input.Company
	job.UpdatedAt = now
}

func loadJob(ctx context.Context, repo domain.JobRepository, jobID string) (*domain.Job, error) {
	job, err := repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// loadOwnedJob checks existence (NotFound) before ownership (NotOwner).
func loadOwnedJob(ctx context.Context, repo domain.JobRepository, recruiterID, jobID string) (*domain.Job, error) {
	job, err := loadJob(ctx, repo, jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, apperror.NotOwner("You do not own this job")
	}
	return job, nil
}

func isJobType(t string) bool {
	for _, jt := range validation.JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}
