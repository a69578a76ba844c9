package v1

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope.
const multipartOverhead = 64 << 10

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
	maxBytes int64
}

// NewResumeHandler registers résumé routes. uploadLimit runs before the
// upload handler.
func NewResumeHandler(g routeGroups, resumeUC domain.ResumeUsecase, maxBytes int64, uploadLimit gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC, maxBytes: maxBytes}

	upload := []gin.HandlerFunc{handler.Upload}
	if uploadLimit != nil {
		upload = append([]gin.HandlerFunc{uploadLimit}, upload...)
	}
	g.candidate.POST("/candidates/me/resume", upload...)
	g.candidate.POST("/candidates/me/resume/parse", handler.Reparse)
	g.candidate.GET("/candidates/me/resume", handler.Download)

	g.recruiter.GET("/jobs/:id/applicants/:candidateId/resume", handler.DownloadApplicant)
}

// Upload godoc
// @Summary      Upload résumé
// @Description  Stores the document, then parses it and merges the result into the profile.
// @Description  A parser failure keeps the file and returns parsed=false.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Résumé document"
// @Success      200     {object}  response.Response{data=domain.ResumeUploadResult}
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /candidates/me/resume [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.Validation(apperror.ReasonUnsupportedFileType, "File exceeds the maximum allowed size"))
			return
		}
		c.Error(apperror.BadRequest("Multipart field \"resume\" is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.resumeUC.Upload(c.Request.Context(), currentUserID(c), &domain.ResumeUpload{
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Content:      file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	message := "Resume uploaded and parsed"
	if !result.Parsed {
		message = "Resume uploaded; automatic parsing is unavailable"
	}
	response.Success(c, http.StatusOK, message, result)
}

// Reparse godoc
// @Summary      Re-parse résumé
// @Description  Runs the parser again on the stored document
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ResumeUploadResult}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/resume/parse [post]
// @Security     BearerAuth
func (h *ResumeHandler) Reparse(c *gin.Context) {
	result, err := h.resumeUC.Reparse(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	message := "Resume parsed"
	if !result.Parsed {
		message = "Automatic parsing is unavailable"
	}
	response.Success(c, http.StatusOK, message, result)
}

// Download godoc
// @Summary      Download my résumé
// @Tags         resumes
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) Download(c *gin.Context) {
	rc, ref, err := h.resumeUC.OpenResume(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	streamResume(c, rc, ref)
}

// DownloadApplicant godoc
// @Summary      Download an applicant's résumé
// @Description  Only the recruiter who owns the job may download its applicants' résumés
// @Tags         resumes
// @Produce      application/pdf
// @Param        id           path      string  true  "Job ID"
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {file}    binary
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /jobs/{id}/applicants/{candidateId}/resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) DownloadApplicant(c *gin.Context) {
	rc, ref, err := h.resumeUC.OpenApplicantResume(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}
	streamResume(c, rc, ref)
}

func streamResume(c *gin.Context, rc io.ReadCloser, ref *domain.ResumeFile) {
	defer rc.Close()

	contentType, ok := resumeContentTypes[filepath.Ext(ref.Filename)]
	if !ok {
		contentType = "application/pdf"
	}
	name := ref.OriginalName
	if name == "" {
		name = ref.Filename
	}

	size := ref.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("inline", map[string]string{"filename": name}),
	})
}
