package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(g routeGroups, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public
	g.public.GET("/jobs", handler.ListJobs)
	g.public.GET("/jobs/:id", handler.GetJob)

	// Recruiter only
	g.recruiter.POST("/jobs", handler.CreateJob)
	g.recruiter.PUT("/jobs/:id", handler.UpdateJob)
	g.recruiter.DELETE("/jobs/:id", handler.CloseJob)
}

// ListJobs godoc
// @Summary      List open jobs
// @Description  Active jobs, newest first, with applicant counts
// @Tags         jobs
// @Produce      json
// @Param        type       query     string  false  "full-time | part-time | contract | internship"
// @Param        location   query     string  false  "Substring of city, state or country"
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        page_size  query     int     false  "Items per page (max 100)"  default(20)
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.JobSummary]}
// @Failure      400        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		c.Error(err)
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.jobUC.ListJobs(c.Request.Context(), domain.JobFilter{
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs", result)
}

// GetJob godoc
// @Summary      Get job detail
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job detail", job)
}

// CreateJob godoc
// @Summary      Post a job
// @Description  Company details default to the recruiter's company when omitted
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      domain.JobInput  true  "Job posting"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req domain.JobInput
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Job ID"
// @Param        body  body      domain.JobInput  true  "Job posting"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req domain.JobInput
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// CloseJob godoc
// @Summary      Close a job
// @Description  Marks the job inactive. Applicants and their statuses are kept.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) CloseJob(c *gin.Context) {
	if err := h.jobUC.CloseJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job closed", nil)
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.BadRequest("Invalid " + name + " parameter")
	}
	return n, nil
}
