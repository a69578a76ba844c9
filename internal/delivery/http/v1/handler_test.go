package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router      *gin.Engine
	candidates  *MockCandidateUsecase
	recruiters  *MockRecruiterUsecase
	jobs        *MockJobUsecase
	application *MockApplicationUsecase
	resumes     *MockResumeUsecase
}

func newTestAPI(t *testing.T, health stubHealth) *testAPI {
	t.Helper()
	api := &testAPI{
		candidates:  new(MockCandidateUsecase),
		recruiters:  new(MockRecruiterUsecase),
		jobs:        new(MockJobUsecase),
		application: new(MockApplicationUsecase),
		resumes:     new(MockResumeUsecase),
	}
	api.router = NewRouter(RouterDeps{
		CandidateUC:   api.candidates,
		RecruiterUC:   api.recruiters,
		JobUC:         api.jobs,
		ApplicationUC: api.application,
		ResumeUC:      api.resumes,
		HealthUC:      health,
		RateLimiter:   middleware.NewRateLimiter(nil, nil),
		UploadLimiter: security.NewUploadLimiter(nil, 100, 100),
		Config: &config.Config{
			JWTSecret:       testSecret,
			FrontendURL:     "http://localhost:5173",
			ResumeMaxSizeMB: 1,
		},
	})
	t.Cleanup(func() {
		api.candidates.AssertExpectations(t)
		api.recruiters.AssertExpectations(t)
		api.jobs.AssertExpectations(t)
		api.application.AssertExpectations(t)
		api.resumes.AssertExpectations(t)
	})
	return api
}

func bearer(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (api *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body, auth string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, stubHealth{status: map[string]string{"status": "ok", "database": "ok"}, healthy: true})
	w := api.do(jsonRequest(http.MethodGet, "/v1/health", "", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)

	api = newTestAPI(t, stubHealth{status: map[string]string{"status": "degraded", "database": "unavailable"}, healthy: false})
	w = api.do(jsonRequest(http.MethodGet, "/v1/health", "", ""))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.JSONEq(t, `{"status":"degraded","database":"unavailable"}`, string(body.Data))
}

func TestCandidateRoutes(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.candidates.On("Register", mock.Anything, mock.MatchedBy(func(req *domain.CandidateRegistration) bool {
			return req.Email == "jane@example.com" && req.DateOfBirth == "1995-04-02"
		})).Return(&domain.Candidate{ID: "cand-1", Email: "jane@example.com"}, nil)

		w := api.do(jsonRequest(http.MethodPost, "/v1/candidates/register",
			`{"email":"jane@example.com","password":"s3cret-pass","first_name":"Jane","last_name":"Doe","phone":"+15551234567","date_of_birth":"1995-04-02"}`, ""))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"id":"cand-1"`)
	})

	t.Run("malformed body never reaches the usecase", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})

		w := api.do(jsonRequest(http.MethodPost, "/v1/candidates/register", `{"email":`, ""))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.ReasonValidation, decode(t, w).Error.Reason)
	})

	t.Run("profile requires a token", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me", "", ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("recruiter cannot read candidate routes", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me", "", bearer(t, "rec-1", domain.RoleRecruiter)))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("profile uses the token subject", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.candidates.On("GetProfile", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me", "", bearer(t, "cand-1", domain.RoleCandidate)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("dashboard", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("Dashboard", mock.Anything, "cand-1").Return(&domain.DashboardStats{TotalApplications: 3, Hired: 1}, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me/dashboard", "", bearer(t, "cand-1", domain.RoleCandidate)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"total_applications":3`)
	})
}

func TestJobRoutes(t *testing.T) {
	t.Run("public listing passes filters", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.jobs.On("ListJobs", mock.Anything, domain.JobFilter{Type: "full-time", Location: "Boston", Page: 2, PageSize: 5}).
			Return(domain.NewPaginatedResult([]domain.JobSummary{}, 0, 2, 5), nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs?type=full-time&location=Boston&page=2&page_size=5", "", ""))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad page number", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs?page=two", "", ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown job", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.jobs.On("GetJob", mock.Anything, "missing").Return(nil, apperror.NotFound("Job not found"))

		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs/missing", "", ""))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decode(t, w).Error.Kind)
	})

	t.Run("candidate cannot post jobs", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		w := api.do(jsonRequest(http.MethodPost, "/v1/jobs", `{"title":"x"}`, bearer(t, "cand-1", domain.RoleCandidate)))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("recruiter closes own job", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.jobs.On("CloseJob", mock.Anything, "rec-1", "job-1").Return(nil)

		w := api.do(jsonRequest(http.MethodDelete, "/v1/jobs/job-1", "", bearer(t, "rec-1", domain.RoleRecruiter)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("recruiter job list by status", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.jobs.On("ListRecruiterJobs", mock.Anything, "rec-1", "inactive").Return([]domain.JobSummary{}, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/recruiters/me/jobs?status=inactive", "", bearer(t, "rec-1", domain.RoleRecruiter)))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestApplicationRoutes(t *testing.T) {
	t.Run("apply without a body", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("Apply", mock.Anything, "cand-1", "job-1", "").
			Return(&domain.Applicant{JobID: "job-1", CandidateID: "cand-1", Status: domain.StatusApplied}, nil)

		w := api.do(jsonRequest(http.MethodPost, "/v1/jobs/job-1/apply", "", bearer(t, "cand-1", domain.RoleCandidate)))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"status":"applied"`)
	})

	t.Run("duplicate application", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("Apply", mock.Anything, "cand-1", "job-1", "Hello").
			Return(nil, apperror.Conflict(apperror.ReasonDuplicateApplication, "Already applied"))

		w := api.do(jsonRequest(http.MethodPost, "/v1/jobs/job-1/apply", `{"cover_letter":"Hello"}`, bearer(t, "cand-1", domain.RoleCandidate)))

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperror.ReasonDuplicateApplication, decode(t, w).Error.Reason)
	})

	t.Run("revoking a hire", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("SetStatus", mock.Anything, "rec-1", "job-1", "cand-1", domain.StatusRejected).
			Return(&domain.StatusChange{JobID: "job-1", CandidateID: "cand-1", PreviousStatus: domain.StatusHired, Status: domain.StatusRejected, Revoked: true}, nil)

		w := api.do(jsonRequest(http.MethodPut, "/v1/jobs/job-1/applicants/cand-1/status", `{"status":"rejected"}`, bearer(t, "rec-1", domain.RoleRecruiter)))

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Hire revoked", body.Message)
		assert.Contains(t, string(body.Data), `"revoked":true`)
	})

	t.Run("status update on someone else's job", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("SetStatus", mock.Anything, "rec-2", "job-1", "cand-1", domain.StatusHired).
			Return(nil, apperror.NotOwner("You do not own this job"))

		w := api.do(jsonRequest(http.MethodPut, "/v1/jobs/job-1/applicants/cand-1/status", `{"status":"hired"}`, bearer(t, "rec-2", domain.RoleRecruiter)))

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperror.ReasonNotOwner, decode(t, w).Error.Reason)
	})

	t.Run("export sends a workbook", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("ExportApplicants", mock.Anything, "rec-1", "job-1").
			Return([]byte("PK\x03\x04"), "applicants_job-1_20260101_120000.xlsx", nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs/job-1/applicants/export", "", bearer(t, "rec-1", domain.RoleRecruiter)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=applicants_job-1_20260101_120000.xlsx`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "PK\x03\x04", w.Body.String())
	})

	t.Run("list applicants with status filter", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("ListApplicants", mock.Anything, "rec-1", "job-1", domain.StatusHired).
			Return([]domain.Applicant{{CandidateID: "cand-1", Status: domain.StatusHired}}, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs/job-1/applicants?status=hired", "", bearer(t, "rec-1", domain.RoleRecruiter)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unsave a job that was not saved", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.application.On("UnsaveJob", mock.Anything, "cand-1", "job-1").
			Return(apperror.Conflict(apperror.ReasonNotSaved, "Job is not saved"))

		w := api.do(jsonRequest(http.MethodDelete, "/v1/jobs/job-1/save", "", bearer(t, "cand-1", domain.RoleCandidate)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/candidates/me/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestResumeRoutes(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%%EOF\n")

	t.Run("upload hands the file to the usecase", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		var received []byte
		var upload *domain.ResumeUpload
		api.resumes.On("Upload", mock.Anything, "cand-1", mock.AnythingOfType("*domain.ResumeUpload")).
			Run(func(args mock.Arguments) {
				upload = args.Get(2).(*domain.ResumeUpload)
				received, _ = io.ReadAll(upload.Content)
			}).
			Return(&domain.ResumeUploadResult{Resume: &domain.ResumeFile{Filename: "x.pdf"}, Parsed: false}, nil)

		req := multipartUpload(t, "resume", "cv.pdf", pdf)
		req.Header.Set("Authorization", bearer(t, "cand-1", domain.RoleCandidate))
		w := api.do(req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, pdf, received)
		assert.Equal(t, "cv.pdf", upload.OriginalName)
		assert.Equal(t, int64(len(pdf)), upload.Size)
		assert.Equal(t, "Resume uploaded; automatic parsing is unavailable", decode(t, w).Message)
	})

	t.Run("wrong field name", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		req := multipartUpload(t, "file", "cv.pdf", pdf)
		req.Header.Set("Authorization", bearer(t, "cand-1", domain.RoleCandidate))

		w := api.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversize body is rejected before the usecase", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		req := multipartUpload(t, "resume", "cv.pdf", bytes.Repeat([]byte("a"), 2<<20))
		req.Header.Set("Authorization", bearer(t, "cand-1", domain.RoleCandidate))

		w := api.do(req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.ReasonUnsupportedFileType, decode(t, w).Error.Reason)
	})

	t.Run("download streams inline", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		ref := &domain.ResumeFile{Filename: "abc.pdf", OriginalName: "Jane CV.pdf", Size: int64(len(pdf))}
		api.resumes.On("OpenResume", mock.Anything, "cand-1").Return(io.NopCloser(bytes.NewReader(pdf)), ref, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me/resume", "", bearer(t, "cand-1", domain.RoleCandidate)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="Jane CV.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, pdf, w.Body.Bytes())
	})

	t.Run("no resume on file", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		api.resumes.On("OpenResume", mock.Anything, "cand-1").
			Return(nil, nil, apperror.NotFoundReason(apperror.ReasonNoResumeOnFile, "No resume on file"))

		w := api.do(jsonRequest(http.MethodGet, "/v1/candidates/me/resume", "", bearer(t, "cand-1", domain.RoleCandidate)))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.ReasonNoResumeOnFile, decode(t, w).Error.Reason)
	})

	t.Run("recruiter downloads applicant resume", func(t *testing.T) {
		api := newTestAPI(t, stubHealth{healthy: true})
		ref := &domain.ResumeFile{Filename: "abc.pdf", OriginalName: "cv.pdf", Size: int64(len(pdf))}
		api.resumes.On("OpenApplicantResume", mock.Anything, "rec-1", "job-1", "cand-1").
			Return(io.NopCloser(bytes.NewReader(pdf)), ref, nil)

		w := api.do(jsonRequest(http.MethodGet, "/v1/jobs/job-1/applicants/cand-1/resume", "", bearer(t, "rec-1", domain.RoleRecruiter)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, pdf, w.Body.Bytes())
	})
}
