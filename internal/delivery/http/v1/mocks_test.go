package v1

import (
	"context"
	"io"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockCandidateUsecase struct{ mock.Mock }

func (m *MockCandidateUsecase) Register(ctx context.Context, req *domain.CandidateRegistration) (*domain.Candidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUsecase) GetProfile(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUsecase) UpdateProfile(ctx context.Context, id string, req *domain.CandidateProfileUpdate) (*domain.Candidate, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUsecase) ChangePassword(ctx context.Context, id string, req *domain.ChangePasswordRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockCandidateUsecase) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockRecruiterUsecase struct{ mock.Mock }

func (m *MockRecruiterUsecase) Register(ctx context.Context, req *domain.RecruiterRegistration) (*domain.Recruiter, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

func (m *MockRecruiterUsecase) GetProfile(ctx context.Context, id string) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}

type MockJobUsecase struct{ mock.Mock }

func (m *MockJobUsecase) CreateJob(ctx context.Context, recruiterID string, input *domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, recruiterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) UpdateJob(ctx context.Context, recruiterID, jobID string, input *domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, recruiterID, jobID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) CloseJob(ctx context.Context, recruiterID, jobID string) error {
	return m.Called(ctx, recruiterID, jobID).Error(0)
}

func (m *MockJobUsecase) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.JobSummary], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResult[domain.JobSummary]), args.Error(1)
}

func (m *MockJobUsecase) ListRecruiterJobs(ctx context.Context, recruiterID, status string) ([]domain.JobSummary, error) {
	args := m.Called(ctx, recruiterID, status)
	jobs, _ := args.Get(0).([]domain.JobSummary)
	return jobs, args.Error(1)
}

type MockApplicationUsecase struct{ mock.Mock }

func (m *MockApplicationUsecase) Apply(ctx context.Context, candidateID, jobID, coverLetter string) (*domain.Applicant, error) {
	args := m.Called(ctx, candidateID, jobID, coverLetter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}

func (m *MockApplicationUsecase) ListMyApplications(ctx context.Context, candidateID string) ([]domain.CandidateApplication, error) {
	args := m.Called(ctx, candidateID)
	apps, _ := args.Get(0).([]domain.CandidateApplication)
	return apps, args.Error(1)
}

func (m *MockApplicationUsecase) SaveJob(ctx context.Context, candidateID, jobID string) error {
	return m.Called(ctx, candidateID, jobID).Error(0)
}

func (m *MockApplicationUsecase) UnsaveJob(ctx context.Context, candidateID, jobID string) error {
	return m.Called(ctx, candidateID, jobID).Error(0)
}

func (m *MockApplicationUsecase) ListSavedJobs(ctx context.Context, candidateID string) ([]domain.Job, error) {
	args := m.Called(ctx, candidateID)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockApplicationUsecase) Dashboard(ctx context.Context, candidateID string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockApplicationUsecase) SetStatus(ctx context.Context, recruiterID, jobID, candidateID, status string) (*domain.StatusChange, error) {
	args := m.Called(ctx, recruiterID, jobID, candidateID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusChange), args.Error(1)
}

func (m *MockApplicationUsecase) ListApplicants(ctx context.Context, recruiterID, jobID, status string) ([]domain.Applicant, error) {
	args := m.Called(ctx, recruiterID, jobID, status)
	applicants, _ := args.Get(0).([]domain.Applicant)
	return applicants, args.Error(1)
}

func (m *MockApplicationUsecase) ExportApplicants(ctx context.Context, recruiterID, jobID string) ([]byte, string, error) {
	args := m.Called(ctx, recruiterID, jobID)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

type MockResumeUsecase struct{ mock.Mock }

func (m *MockResumeUsecase) Upload(ctx context.Context, candidateID string, file *domain.ResumeUpload) (*domain.ResumeUploadResult, error) {
	args := m.Called(ctx, candidateID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeUploadResult), args.Error(1)
}

func (m *MockResumeUsecase) Reparse(ctx context.Context, candidateID string) (*domain.ResumeUploadResult, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeUploadResult), args.Error(1)
}

func (m *MockResumeUsecase) OpenResume(ctx context.Context, candidateID string) (io.ReadCloser, *domain.ResumeFile, error) {
	args := m.Called(ctx, candidateID)
	rc, _ := args.Get(0).(io.ReadCloser)
	ref, _ := args.Get(1).(*domain.ResumeFile)
	return rc, ref, args.Error(2)
}

func (m *MockResumeUsecase) OpenApplicantResume(ctx context.Context, recruiterID, jobID, candidateID string) (io.ReadCloser, *domain.ResumeFile, error) {
	args := m.Called(ctx, recruiterID, jobID, candidateID)
	rc, _ := args.Get(0).(io.ReadCloser)
	ref, _ := args.Get(1).(*domain.ResumeFile)
	return rc, ref, args.Error(2)
}

type stubHealth struct {
	status  map[string]string
	healthy bool
}

func (s stubHealth) Check(context.Context) (map[string]string, bool) {
	return s.status, s.healthy
}
