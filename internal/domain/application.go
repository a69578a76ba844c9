package domain

import (
	"context"
	"time"
)

// Application status wire values
const (
	StatusApplied     = "applied"
	StatusUnderReview = "under-review"
	StatusInterviewed = "interviewed"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
)

var ApplicationStatuses = []string{
	StatusApplied,
	StatusUnderReview,
	StatusInterviewed,
	StatusHired,
	StatusRejected,
}

func IsValidStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsRevocation reports a hired → rejected transition.
func IsRevocation(previous, next string) bool {
	return previous == StatusHired && next == StatusRejected
}

// Applicant is one entry of a job's applicant list. It is the only stored
// copy of the application status.
type Applicant struct {
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CoverLetter string    `json:"cover_letter"`

	// Joined for recruiter listings
	CandidateName  string `json:"candidate_name,omitempty"`
	CandidateEmail string `json:"candidate_email,omitempty"`
	HasResume      bool   `json:"has_resume"`
}

// CandidateApplication is the candidate-side view, derived from the
// job's applicant row.
type CandidateApplication struct {
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	JobIsActive bool      `json:"job_is_active"`
	AppliedDate time.Time `json:"applied_date"`
	Status      string    `json:"status"`
}

type StatusChange struct {
	JobID          string `json:"job_id"`
	CandidateID    string `json:"candidate_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Revoked        bool   `json:"revoked"`
}

type DashboardStats struct {
	TotalApplications   int                    `json:"total_applications"`
	ActiveApplications  int                    `json:"active_applications"`
	Hired               int                    `json:"hired"`
	Rejected            int                    `json:"rejected"`
	SavedJobs           int                    `json:"saved_jobs"`
	ProfileCompleteness int                    `json:"profile_completeness"`
	HasResume           bool                   `json:"has_resume"`
	RecentApplications  []CandidateApplication `json:"recent_applications"`
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type ApplicationRepository interface {
	// AddApplicant appends an applicant row. A second row for the same
	// (job, candidate) pair is rejected with a DUPLICATE_APPLICATION conflict.
	AddApplicant(ctx context.Context, a *Applicant) error
	ListApplicants(ctx context.Context, jobID string) ([]Applicant, error)
	UpdateApplicantStatus(ctx context.Context, jobID, candidateID, status string) error
	ListByCandidate(ctx context.Context, candidateID string) ([]CandidateApplication, error)

	AddSave(ctx context.Context, jobID, candidateID string) error
	RemoveSave(ctx context.Context, jobID, candidateID string) error
	ListSavedJobs(ctx context.Context, candidateID string) ([]Job, error)
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID, jobID, coverLetter string) (*Applicant, error)
	ListMyApplications(ctx context.Context, candidateID string) ([]CandidateApplication, error)
	SaveJob(ctx context.Context, candidateID, jobID string) error
	UnsaveJob(ctx context.Context, candidateID, jobID string) error
	ListSavedJobs(ctx context.Context, candidateID string) ([]Job, error)
	Dashboard(ctx context.Context, candidateID string) (*DashboardStats, error)

	// Recruiter operations
	SetStatus(ctx context.Context, recruiterID, jobID, candidateID, status string) (*StatusChange, error)
	ListApplicants(ctx context.Context, recruiterID, jobID, status string) ([]Applicant, error)
	// ExportApplicants renders the applicant list as an xlsx workbook and
	// returns its bytes with a suggested filename.
	ExportApplicants(ctx context.Context, recruiterID, jobID string) ([]byte, string, error)
}
