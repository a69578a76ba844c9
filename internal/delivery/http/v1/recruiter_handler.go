package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
	jobUC       domain.JobUsecase
}

func NewRecruiterHandler(g routeGroups, recruiterUC domain.RecruiterUsecase, jobUC domain.JobUsecase) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC, jobUC: jobUC}

	g.register.POST("/recruiters/register", handler.Register)
	g.recruiter.GET("/recruiters/me", handler.GetProfile)
	g.recruiter.GET("/recruiters/me/jobs", handler.ListMyJobs)
}

// Register godoc
// @Summary      Register a recruiter
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RecruiterRegistration  true  "Registration details"
// @Success      201   {object}  response.Response{data=domain.Recruiter}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /recruiters/register [post]
func (h *RecruiterHandler) Register(c *gin.Context) {
	var req domain.RecruiterRegistration
	if !bindJSON(c, &req) {
		return
	}

	recruiter, err := h.recruiterUC.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Recruiter registered", recruiter)
}

// GetProfile godoc
// @Summary      Get recruiter profile
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Recruiter}
// @Failure      404  {object}  response.Response
// @Router       /recruiters/me [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetProfile(c *gin.Context) {
	recruiter, err := h.recruiterUC.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiter profile", recruiter)
}

// ListMyJobs godoc
// @Summary      List my job postings
// @Description  Jobs posted by the recruiter with applicant counts. status is active, inactive or empty for all.
// @Tags         recruiters
// @Produce      json
// @Param        status  query     string  false  "active | inactive"
// @Success      200     {object}  response.Response{data=[]domain.JobSummary}
// @Failure      400     {object}  response.Response
// @Router       /recruiters/me/jobs [get]
// @Security     BearerAuth
func (h *RecruiterHandler) ListMyJobs(c *gin.Context) {
	jobs, err := h.jobUC.ListRecruiterJobs(c.Request.Context(), currentUserID(c), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiter jobs", jobs)
}
