package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(g routeGroups, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	g.public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports database and cache reachability
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.healthUC == nil {
		response.Success(c, http.StatusOK, "System operational", gin.H{"status": "ok"})
		return
	}

	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System degraded",
			Data:      status,
			RequestID: c.GetString("RequestID"),
		})
		return
	}

	response.Success(c, http.StatusOK, "System operational", status)
}
