package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC   domain.CandidateUsecase
	applicationUC domain.ApplicationUsecase
}

func NewCandidateHandler(g routeGroups, candidateUC domain.CandidateUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, applicationUC: applicationUC}

	g.register.POST("/candidates/register", handler.Register)

	me := g.candidate.Group("/candidates/me")
	{
		me.GET("", handler.GetProfile)
		me.PUT("", handler.UpdateProfile)
		me.DELETE("", handler.Deactivate)
		me.PUT("/password", handler.ChangePassword)
		me.GET("/dashboard", handler.Dashboard)
		me.GET("/applications", handler.ListApplications)
		me.GET("/saved-jobs", handler.ListSavedJobs)
	}
}

// Register godoc
// @Summary      Register a candidate
// @Description  Create a candidate account. Candidates must be at least 18 years old.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CandidateRegistration  true  "Registration details"
// @Success      201   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /candidates/register [post]
func (h *CandidateHandler) Register(c *gin.Context) {
	var req domain.CandidateRegistration
	if !bindJSON(c, &req) {
		return
	}

	candidate, err := h.candidateUC.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate registered", candidate)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Description  Partially update the profile. Omitted fields are left unchanged.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CandidateProfileUpdate  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /candidates/me [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req domain.CandidateProfileUpdate
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.candidateUC.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ChangePasswordRequest  true  "Current and new password"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /candidates/me/password [put]
// @Security     BearerAuth
func (h *CandidateHandler) ChangePassword(c *gin.Context) {
	var req domain.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.candidateUC.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed", nil)
}

// Deactivate godoc
// @Summary      Deactivate account
// @Description  Soft-deletes the candidate. Existing applications stay visible to recruiters.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Deactivate(c *gin.Context) {
	if err := h.candidateUC.Deactivate(c.Request.Context(), currentUserID(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account deactivated", nil)
}

// Dashboard godoc
// @Summary      Candidate dashboard
// @Description  Application counters, saved jobs and the five most recent applications
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardStats}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/dashboard [get]
// @Security     BearerAuth
func (h *CandidateHandler) Dashboard(c *gin.Context) {
	stats, err := h.applicationUC.Dashboard(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard", stats)
}

// ListApplications godoc
// @Summary      List my applications
// @Description  Every job the candidate applied to, oldest first, with the current status
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CandidateApplication}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/applications [get]
// @Security     BearerAuth
func (h *CandidateHandler) ListApplications(c *gin.Context) {
	apps, err := h.applicationUC.ListMyApplications(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications", apps)
}

// ListSavedJobs godoc
// @Summary      List saved jobs
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/saved-jobs [get]
// @Security     BearerAuth
func (h *CandidateHandler) ListSavedJobs(c *gin.Context) {
	jobs, err := h.applicationUC.ListSavedJobs(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs", jobs)
}
