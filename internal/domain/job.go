package domain

import (
	"context"
	"time"
)

type JobLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Remote  bool   `json:"remote"`
}

type Company struct {
	Name        string `json:"name" validate:"required,max=120"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=2000"`
}

type Job struct {
	ID          string      `json:"id"`
	RecruiterID string      `json:"recruiter_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Salary      SalaryRange `json:"salary"`
	Location    JobLocation `json:"location"`
	Skills      []string    `json:"skills"`
	Company     Company     `json:"company"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Loaded by JobRepository.GetByID only
	Applicants []Applicant `json:"-"`
	SavedBy    []string    `json:"-"`
}

// FindApplicant returns the applicant entry for candidateID, or nil.
func (j *Job) FindApplicant(candidateID string) *Applicant {
	for i := range j.Applicants {
		if j.Applicants[i].CandidateID == candidateID {
			return &j.Applicants[i]
		}
	}
	return nil
}

func (j *Job) HasApplicant(candidateID string) bool {
	return j.FindApplicant(candidateID) != nil
}

func (j *Job) IsSavedBy(candidateID string) bool {
	for _, id := range j.SavedBy {
		if id == candidateID {
			return true
		}
	}
	return false
}

// JobSummary is the public listing shape with the applicant count attached.
type JobSummary struct {
	Job
	ApplicantCount int `json:"applicant_count"`
}

type JobInput struct {
	Title       string      `json:"title" validate:"required,min=3,max=150"`
	Description string      `json:"description" validate:"required,max=10000"`
	Type        string      `json:"type" validate:"required,job_type"`
	Salary      SalaryRange `json:"salary"`
	Location    JobLocation `json:"location"`
	Skills      []string    `json:"skills" validate:"omitempty,max=50,dive,max=60"`
	Company     Company     `json:"company"`
}

type JobFilter struct {
	Type     string
	Location string
	Page     int
	PageSize int
}

type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResult[T any](data []T, total int64, page, pageSize int) *PaginatedResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if data == nil {
		data = []T{}
	}
	return &PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	// GetByID loads the job together with its applicants (insertion order)
	// and the ids of candidates who saved it.
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, job *Job) error
	SetActive(ctx context.Context, id string, active bool) error
	ListActive(ctx context.Context, filter JobFilter) ([]JobSummary, int64, error)
	ListByRecruiter(ctx context.Context, recruiterID string, active *bool) ([]JobSummary, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID string, input *JobInput) (*Job, error)
	UpdateJob(ctx context.Context, recruiterID, jobID string, input *JobInput) (*Job, error)
	CloseJob(ctx context.Context, recruiterID, jobID string) error
	GetJob(ctx context.Context, jobID string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) (*PaginatedResult[JobSummary], error)
	ListRecruiterJobs(ctx context.Context, recruiterID, status string) ([]JobSummary, error)
}
