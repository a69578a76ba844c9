package v1

import (
	"mime"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(g routeGroups, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Candidate routes
	g.candidate.POST("/jobs/:id/apply", handler.Apply)
	g.candidate.POST("/jobs/:id/save", handler.SaveJob)
	g.candidate.DELETE("/jobs/:id/save", handler.UnsaveJob)

	// Recruiter routes
	g.recruiter.GET("/jobs/:id/applicants", handler.ListApplicants)
	g.recruiter.GET("/jobs/:id/applicants/export", handler.ExportApplicants)
	g.recruiter.PUT("/jobs/:id/applicants/:candidateId/status", handler.UpdateStatus)
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Adds the candidate to the job's applicant list with status "applied"
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true   "Job ID"
// @Param        body  body      domain.ApplyRequest  false  "Cover letter"
// @Success      201   {object}  response.Response{data=domain.Applicant}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyRequest
	// The body is optional
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	applicant, err := h.applicationUC.Apply(c.Request.Context(), currentUserID(c), c.Param("id"), req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", applicant)
}

// SaveJob godoc
// @Summary      Save a job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/save [post]
// @Security     BearerAuth
func (h *ApplicationHandler) SaveJob(c *gin.Context) {
	if err := h.applicationUC.SaveJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job saved", nil)
}

// UnsaveJob godoc
// @Summary      Remove a saved job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/save [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) UnsaveJob(c *gin.Context) {
	if err := h.applicationUC.UnsaveJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job removed from saved jobs", nil)
}

// ListApplicants godoc
// @Summary      List applicants
// @Description  Applicants of a job owned by the recruiter, in application order
// @Tags         applications
// @Produce      json
// @Param        id      path      string  true   "Job ID"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]domain.Applicant}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /jobs/{id}/applicants [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	applicants, err := h.applicationUC.ListApplicants(c.Request.Context(), currentUserID(c), c.Param("id"), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants", applicants)
}

// ExportApplicants godoc
// @Summary      Export applicants
// @Description  Downloads the applicant list as an Excel workbook
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applicants/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportApplicants(c *gin.Context) {
	data, filename, err := h.applicationUC.ExportApplicants(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Any status may follow any other. Moving a hired applicant to rejected revokes the hire.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      string                      true  "Job ID"
// @Param        candidateId  path      string                      true  "Candidate ID"
// @Param        body         body      domain.StatusUpdateRequest  true  "New status"
// @Success      200          {object}  response.Response{data=domain.StatusChange}
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /jobs/{id}/applicants/{candidateId}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req domain.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	change, err := h.applicationUC.SetStatus(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("candidateId"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Application status updated"
	if change.Revoked {
		message = "Hire revoked"
	}
	response.Success(c, http.StatusOK, message, change)
}
