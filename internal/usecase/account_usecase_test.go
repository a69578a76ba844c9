package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func candidateRegistration(dob time.Time) *domain.CandidateRegistration {
	return &domain.CandidateRegistration{
		Email:       "  New.Person@Example.com ",
		Password:    "correct-horse",
		FirstName:   "New",
		LastName:    "Person",
		Phone:       "+1 (555) 010-0200",
		DateOfBirth: dob.Format("2006-01-02"),
		Address:     domain.Address{City: "Denver"},
	}
}

func TestCandidateRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create an active candidate with a hashed password", func(t *testing.T) {
		s := newMemStore()
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), nil, nil, bcrypt.MinCost)

		c, err := uc.Register(ctx, candidateRegistration(time.Now().AddDate(-30, 0, 0)))
		require.NoError(t, err)
		assert.Equal(t, "new.person@example.com", c.Email)
		assert.True(t, c.IsActive)
		assert.NotEqual(t, "correct-horse", c.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("correct-horse")))
		assert.Equal(t, 67, c.ProfileCompleteness)
	})

	t.Run("Should reject candidates under eighteen", func(t *testing.T) {
		s := newMemStore()
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), nil, nil, bcrypt.MinCost)

		_, err := uc.Register(ctx, candidateRegistration(time.Now().AddDate(-17, 0, 0)))
		assert.True(t, apperror.HasReason(err, apperror.ReasonUnderage), "got %v", err)
		assert.Empty(t, s.candidates)
	})

	t.Run("Should reject a taken email", func(t *testing.T) {
		s := newMemStore()
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), nil, nil, bcrypt.MinCost)
		_, err := uc.Register(ctx, candidateRegistration(time.Now().AddDate(-30, 0, 0)))
		require.NoError(t, err)

		_, err = uc.Register(ctx, candidateRegistration(time.Now().AddDate(-25, 0, 0)))
		assert.True(t, apperror.HasReason(err, apperror.ReasonEmailTaken))
	})

	t.Run("Should reject a malformed payload", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(memCandidates{newMemStore()}, validation.New(), nil, nil, bcrypt.MinCost)
		req := candidateRegistration(time.Now().AddDate(-30, 0, 0))
		req.Phone = "call me"
		_, err := uc.Register(ctx, req)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestCandidateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should overwrite supplied fields and recompute completeness", func(t *testing.T) {
		s := seedStore()
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), nil, nil, bcrypt.MinCost)
		exp := 4
		city := domain.Address{City: "Austin"}

		c, err := uc.UpdateProfile(ctx, candidateID, &domain.CandidateProfileUpdate{
			Experience: &exp,
			Address:    &city,
			Skills:     []string{"Go", "go", "SQL"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
		assert.Equal(t, domain.ProfileCompleteness(c), s.candidates[candidateID].ProfileCompleteness)
		assert.Equal(t, 4, s.candidates[candidateID].Experience)
	})

	t.Run("Should hide deactivated candidates", func(t *testing.T) {
		s := seedStore()
		audit, logs := newObservedAudit()
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), audit, nil, bcrypt.MinCost)

		require.NoError(t, uc.Deactivate(ctx, candidateID))
		assert.Equal(t, 1, logs.FilterMessage("account_deactivated").Len())

		_, err := uc.GetProfile(ctx, candidateID)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Should require the current password to change it", func(t *testing.T) {
		s := seedStore()
		hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
		require.NoError(t, err)
		c := s.candidates[candidateID]
		c.PasswordHash = string(hash)
		s.candidates[candidateID] = c
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), nil, nil, bcrypt.MinCost)

		err = uc.ChangePassword(ctx, candidateID, &domain.ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "new-password"})
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

		err = uc.ChangePassword(ctx, candidateID, &domain.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.candidates[candidateID].PasswordHash), []byte("new-password")))
	})

	t.Run("Should block password changes after repeated failures", func(t *testing.T) {
		s := seedStore()
		hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
		require.NoError(t, err)
		c := s.candidates[candidateID]
		c.PasswordHash = string(hash)
		s.candidates[candidateID] = c
		audit, logs := newObservedAudit()
		attempts := security.NewPasswordAttemptTracker(nil, security.PasswordAttemptConfig{MaxAttempts: 2}, audit)
		uc := usecase.NewCandidateUsecase(memCandidates{s}, validation.New(), audit, attempts, bcrypt.MinCost)

		wrong := &domain.ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "new-password"}
		err = uc.ChangePassword(ctx, candidateID, wrong)
		assert.True(t, apperror.HasReason(err, apperror.ReasonUnauthorized))

		err = uc.ChangePassword(ctx, candidateID, wrong)
		assert.True(t, apperror.HasReason(err, apperror.ReasonTooManyAttempts))

		// The right password is refused while blocked
		err = uc.ChangePassword(ctx, candidateID, &domain.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		assert.True(t, apperror.HasReason(err, apperror.ReasonTooManyAttempts))
		assert.Equal(t, 1, logs.FilterMessage("password_attempts_blocked").Len())
	})
}

func TestJobUsecase(t *testing.T) {
	ctx := context.Background()
	input := func() *domain.JobInput {
		return &domain.JobInput{
			Title:       "Platform Engineer",
			Description: "Run the platform",
			Type:        "contract",
			Salary:      domain.SalaryRange{Min: 90000, Max: 120000},
			Skills:      []string{"Kubernetes", "kubernetes", "Go"},
		}
	}

	t.Run("Should inherit the recruiter's company", func(t *testing.T) {
		s := seedStore()
		uc := usecase.NewJobUsecase(memJobs{s}, memRecruiters{s}, validation.New())

		job, err := uc.CreateJob(ctx, recruiterID, input())
		require.NoError(t, err)
		assert.Equal(t, "Acme", job.Company.Name)
		assert.Equal(t, "USD", job.Salary.Currency)
		assert.Equal(t, []string{"Kubernetes", "Go"}, job.Skills)
		assert.True(t, job.IsActive)
	})

	t.Run("Should reject an unknown job type", func(t *testing.T) {
		uc := usecase.NewJobUsecase(memJobs{seedStore()}, memRecruiters{seedStore()}, validation.New())
		in := input()
		in.Type = "gig"
		_, err := uc.CreateJob(ctx, recruiterID, in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should reject an inverted salary range", func(t *testing.T) {
		s := seedStore()
		uc := usecase.NewJobUsecase(memJobs{s}, memRecruiters{s}, validation.New())
		in := input()
		in.Salary = domain.SalaryRange{Min: 5, Max: 1}
		_, err := uc.CreateJob(ctx, recruiterID, in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should only let the owner update or close", func(t *testing.T) {
		s := seedStore()
		uc := usecase.NewJobUsecase(memJobs{s}, memRecruiters{s}, validation.New())

		_, err := uc.UpdateJob(ctx, otherRecID, jobID, input())
		assert.True(t, apperror.HasReason(err, apperror.ReasonNotOwner))
		assert.True(t, apperror.HasReason(uc.CloseJob(ctx, otherRecID, jobID), apperror.ReasonNotOwner))

		require.NoError(t, uc.CloseJob(ctx, recruiterID, jobID))
		assert.False(t, s.jobs[jobID].IsActive)
	})

	t.Run("Should keep applicants when a job is closed", func(t *testing.T) {
		s := seedStore()
		jobs := usecase.NewJobUsecase(memJobs{s}, memRecruiters{s}, validation.New())
		apps := newApplicationUsecase(s)
		_, err := apps.Apply(ctx, candidateID, jobID, "")
		require.NoError(t, err)

		require.NoError(t, jobs.CloseJob(ctx, recruiterID, jobID))
		mine, err := apps.ListMyApplications(ctx, candidateID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.False(t, mine[0].JobIsActive)
	})

	t.Run("Should list only active jobs with paging defaults", func(t *testing.T) {
		s := seedStore()
		s.jobs["job-closed"] = domain.Job{ID: "job-closed", RecruiterID: recruiterID, Title: "Old", IsActive: false}
		uc := usecase.NewJobUsecase(memJobs{s}, memRecruiters{s}, validation.New())

		page, err := uc.ListJobs(ctx, domain.JobFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
		assert.Equal(t, 1, page.TotalPages)

		mine, err := uc.ListRecruiterJobs(ctx, recruiterID, "inactive")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "job-closed", mine[0].ID)

		_, err = uc.ListRecruiterJobs(ctx, recruiterID, "archived")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestRecruiterRegister(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	uc := usecase.NewRecruiterUsecase(memRecruiters{s}, validation.New(), bcrypt.MinCost)
	req := &domain.RecruiterRegistration{
		Email:    " HR@Acme.io  ",
		Password: "sup3r-secret",
		Name:     "Rita Hale",
		Company:  domain.Company{Name: "Acme"},
	}

	r, err := uc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Acme", r.Company.Name)
	assert.Equal(t, "hr@acme.io", r.Email)

	_, err = uc.Register(ctx, req)
	assert.True(t, apperror.HasReason(err, apperror.ReasonEmailTaken))
}
