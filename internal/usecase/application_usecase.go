package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
)

const (
	maxCoverLetterLength = 5000
	recentApplications   = 5
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	audit           *security.AuditLogger
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	audit *security.AuditLogger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		audit:           audit,
		now:             time.Now,
	}
}

// Apply appends the candidate to the job's applicant list with status applied.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID, jobID, coverLetter string) (*domain.Applicant, error) {
	coverLetter = strings.TrimSpace(coverLetter)
	if len(coverLetter) > maxCoverLetterLength {
		return nil, apperror.BadRequest("Cover letter must be at most 5000 characters")
	}

	// 1. Job exists and is open
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, apperror.Validation(apperror.ReasonJobInactive, "This job is no longer accepting applications")
	}

	// 2. Candidate exists and is active
	if _, err := loadActiveCandidate(ctx, uc.candidateRepo, candidateID); err != nil {
		return nil, err
	}

	// 3. One application per (job, candidate)
	if job.HasApplicant(candidateID) {
		return nil, apperror.Conflict(apperror.ReasonDuplicateApplication, "You have already applied to this job")
	}

	applicant := &domain.Applicant{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      domain.StatusApplied,
		AppliedAt:   uc.now().UTC(),
		CoverLetter: coverLetter,
	}
	applicant.UpdatedAt = applicant.AppliedAt

	if err := uc.applicationRepo.AddApplicant(ctx, applicant); err != nil {
		// A concurrent apply can pass the check above; the unique key catches it
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.ReasonDuplicateApplication, "You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("application submitted", "job_id", jobID, "candidate_id", candidateID)
	return applicant, nil
}

// SetStatus overwrites the applicant's status. Any status may follow any
// other; hired → rejected is flagged as a revocation.
func (uc *applicationUsecase) SetStatus(ctx context.Context, recruiterID, jobID, candidateID, status string) (*domain.StatusChange, error) {
	if !domain.IsValidStatus(status) {
		return nil, apperror.Validation(apperror.ReasonInvalidStatus,
			"Invalid status. Must be one of: "+strings.Join(domain.ApplicationStatuses, ", "))
	}

	job, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	applicant := job.FindApplicant(candidateID)
	if applicant == nil {
		return nil, apperror.NotFoundReason(apperror.ReasonApplicantNotFound, "Candidate has not applied to this job")
	}

	change := &domain.StatusChange{
		JobID:          jobID,
		CandidateID:    candidateID,
		PreviousStatus: applicant.Status,
		Status:         status,
		Revoked:        domain.IsRevocation(applicant.Status, status),
	}
	if applicant.Status == status {
		return change, nil
	}

	if err := uc.applicationRepo.UpdateApplicantStatus(ctx, jobID, candidateID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFoundReason(apperror.ReasonApplicantNotFound, "Candidate has not applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	uc.audit.LogStatusChange(ctx, recruiterID, jobID, candidateID, change.PreviousStatus, status, change.Revoked)
	return change, nil
}

func (uc *applicationUsecase) SaveJob(ctx context.Context, candidateID, jobID string) error {
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return err
	}
	if job.IsSavedBy(candidateID) {
		return apperror.Conflict(apperror.ReasonAlreadySaved, "Job is already saved")
	}

	if err := uc.applicationRepo.AddSave(ctx, jobID, candidateID); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict(apperror.ReasonAlreadySaved, "Job is already saved")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *applicationUsecase) UnsaveJob(ctx context.Context, candidateID, jobID string) error {
	job, err := loadJob(ctx, uc.jobRepo, jobID)
	if err != nil {
		return err
	}
	if !job.IsSavedBy(candidateID) {
		return apperror.Conflict(apperror.ReasonNotSaved, "Job is not in your saved list")
	}

	if err := uc.applicationRepo.RemoveSave(ctx, jobID, candidateID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Conflict(apperror.ReasonNotSaved, "Job is not in your saved list")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *applicationUsecase) ListSavedJobs(ctx context.Context, candidateID string) ([]domain.Job, error) {
	jobs, err := uc.applicationRepo.ListSavedJobs(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

// ListMyApplications is the candidate-side view, read from the job-side rows.
func (uc *applicationUsecase) ListMyApplications(ctx context.Context, candidateID string) ([]domain.CandidateApplication, error) {
	apps, err := uc.applicationRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.CandidateApplication{}
	}
	return apps, nil
}

// ListApplicants returns the job's applicants in application order,
// optionally restricted to one status.
func (uc *applicationUsecase) ListApplicants(ctx context.Context, recruiterID, jobID, status string) ([]domain.Applicant, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, apperror.Validation(apperror.ReasonInvalidStatus,
			"Invalid status filter. Must be one of: "+strings.Join(domain.ApplicationStatuses, ", "))
	}
	if _, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID); err != nil {
		return nil, err
	}

	applicants, err := uc.applicationRepo.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return filterByStatus(applicants, status), nil
}

func filterByStatus(applicants []domain.Applicant, status string) []domain.Applicant {
	out := make([]domain.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func (uc *applicationUsecase) Dashboard(ctx context.Context, candidateID string) (*domain.DashboardStats, error) {
	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, candidateID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.ListMyApplications(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	saved, err := uc.ListSavedJobs(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalApplications:   len(apps),
		SavedJobs:           len(saved),
		ProfileCompleteness: candidate.ProfileCompleteness,
		HasResume:           candidate.Resume != nil,
	}
	for _, a := range apps {
		switch a.Status {
		case domain.StatusHired:
			stats.Hired++
		case domain.StatusRejected:
			stats.Rejected++
		default:
			stats.ActiveApplications++
		}
	}

	recent := append([]domain.CandidateApplication(nil), apps...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AppliedDate.After(recent[j].AppliedDate)
	})
	if len(recent) > recentApplications {
		recent = recent[:recentApplications]
	}
	if recent == nil {
		recent = []domain.CandidateApplication{}
	}
	stats.RecentApplications = recent
	return stats, nil
}
