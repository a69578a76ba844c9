package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/resumeparser"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memStore backs every repository fake so the job-side applicant rows and
// the candidate-side view are read from the same place, as in Postgres.
type memStore struct {
	mu         sync.Mutex
	candidates map[string]domain.Candidate
	recruiters map[string]domain.Recruiter
	jobs       map[string]domain.Job
	applicants []domain.Applicant
	saves      map[string][]string // job id -> candidate ids
}

func newMemStore() *memStore {
	return &memStore{
		candidates: map[string]domain.Candidate{},
		recruiters: map[string]domain.Recruiter{},
		jobs:       map[string]domain.Job{},
		saves:      map[string][]string{},
	}
}

type memCandidates struct{ s *memStore }
type memRecruiters struct{ s *memStore }
type memJobs struct{ s *memStore }
type memApplications struct{ s *memStore }

func (r memCandidates) Create(ctx context.Context, c *domain.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.candidates {
		if existing.Email == c.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.candidates[c.ID] = *c
	return nil
}

func (r memCandidates) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memCandidates) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.candidates {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memCandidates) Update(ctx context.Context, c *domain.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.candidates[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *c
	updated.Resume = existing.Resume
	updated.PasswordHash = existing.PasswordHash
	updated.IsActive = existing.IsActive
	r.s.candidates[c.ID] = updated
	return nil
}

func (r memCandidates) UpdateResume(ctx context.Context, id string, resume *domain.ResumeFile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	ref := *resume
	c.Resume = &ref
	r.s.candidates[id] = c
	return nil
}

func (r memCandidates) UpdatePassword(ctx context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.PasswordHash = hash
	r.s.candidates[id] = c
	return nil
}

func (r memCandidates) Deactivate(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsActive = false
	r.s.candidates[id] = c
	return nil
}

func (r memRecruiters) Create(ctx context.Context, rec *domain.Recruiter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.recruiters {
		if existing.Email == rec.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.recruiters[rec.ID] = *rec
	return nil
}

func (r memRecruiters) GetByID(ctx context.Context, id string) (*domain.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.recruiters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r memRecruiters) GetByEmail(ctx context.Context, email string) (*domain.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.recruiters {
		if rec.Email == email {
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memJobs) Create(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *job
	stored.Applicants, stored.SavedBy = nil, nil
	r.s.jobs[job.ID] = stored
	return nil
}

func (r memJobs) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, a := range r.s.applicants {
		if a.JobID == id {
			job.Applicants = append(job.Applicants, a)
		}
	}
	job.SavedBy = append([]string(nil), r.s.saves[id]...)
	return &job, nil
}

func (r memJobs) Update(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *job
	stored.Applicants, stored.SavedBy = nil, nil
	r.s.jobs[job.ID] = stored
	return nil
}

func (r memJobs) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.IsActive = active
	r.s.jobs[id] = job
	return nil
}

func (r memJobs) summaries(keep func(domain.Job) bool) []domain.JobSummary {
	var out []domain.JobSummary
	for _, job := range r.s.jobs {
		if !keep(job) {
			continue
		}
		count := 0
		for _, a := range r.s.applicants {
			if a.JobID == job.ID {
				count++
			}
		}
		out = append(out, domain.JobSummary{Job: job, ApplicantCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memJobs) ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.JobSummary, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.summaries(func(j domain.Job) bool {
		return j.IsActive && (filter.Type == "" || j.Type == filter.Type)
	})
	total := int64(len(all))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r memJobs) ListByRecruiter(ctx context.Context, recruiterID string, active *bool) ([]domain.JobSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.summaries(func(j domain.Job) bool {
		return j.RecruiterID == recruiterID && (active == nil || j.IsActive == *active)
	}), nil
}

func (r memApplications) AddApplicant(ctx context.Context, a *domain.Applicant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applicants {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return domain.ErrDuplicate
		}
	}
	r.s.applicants = append(r.s.applicants, *a)
	return nil
}

func (r memApplications) ListApplicants(ctx context.Context, jobID string) ([]domain.Applicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Applicant
	for _, a := range r.s.applicants {
		if a.JobID != jobID {
			continue
		}
		if c, ok := r.s.candidates[a.CandidateID]; ok {
			a.CandidateName = c.FullName()
			a.CandidateEmail = c.Email
			a.HasResume = c.Resume != nil
		}
		out = append(out, a)
	}
	return out, nil
}

func (r memApplications) UpdateApplicantStatus(ctx context.Context, jobID, candidateID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.applicants {
		if r.s.applicants[i].JobID == jobID && r.s.applicants[i].CandidateID == candidateID {
			r.s.applicants[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memApplications) ListByCandidate(ctx context.Context, candidateID string) ([]domain.CandidateApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.CandidateApplication
	for _, a := range r.s.applicants {
		if a.CandidateID != candidateID {
			continue
		}
		job := r.s.jobs[a.JobID]
		out = append(out, domain.CandidateApplication{
			JobID:       a.JobID,
			JobTitle:    job.Title,
			CompanyName: job.Company.Name,
			JobIsActive: job.IsActive,
			AppliedDate: a.AppliedAt,
			Status:      a.Status,
		})
	}
	return out, nil
}

func (r memApplications) AddSave(ctx context.Context, jobID, candidateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.saves[jobID] {
		if id == candidateID {
			return domain.ErrDuplicate
		}
	}
	r.s.saves[jobID] = append(r.s.saves[jobID], candidateID)
	return nil
}

func (r memApplications) RemoveSave(ctx context.Context, jobID, candidateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := r.s.saves[jobID]
	for i, id := range ids {
		if id == candidateID {
			r.s.saves[jobID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memApplications) ListSavedJobs(ctx context.Context, candidateID string) ([]domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Job
	for jobID, ids := range r.s.saves {
		for _, id := range ids {
			if id == candidateID {
				out = append(out, r.s.jobs[jobID])
			}
		}
	}
	return out, nil
}

func (s *memStore) applicantRow(jobID, candidateID string) *domain.Applicant {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applicants {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return &a
		}
	}
	return nil
}

// memFiles is an in-memory ResumeStorage that counts writes.
type memFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	saves   int
	saveErr error
}

func newMemFiles() *memFiles {
	return &memFiles{files: map[string][]byte{}}
}

func (m *memFiles) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[key] = data
	return nil
}

func (m *memFiles) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memFiles) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

type MockResumeParser struct {
	mock.Mock
}

func (m *MockResumeParser) Parse(ctx context.Context, filename string, r io.Reader) (*resumeparser.Result, error) {
	args := m.Called(ctx, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumeparser.Result), args.Error(1)
}

func newObservedAudit() (*security.AuditLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return security.NewAuditLoggerWithZap(zap.New(core), "jobboard-api", "test"), logs
}
