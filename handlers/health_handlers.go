package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/link_redirector/models"
)

const readinessTimeout = 3 * time.Second

// Pinger reports whether the lookup store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheckHandler godoc
// @Summary      Health Check
// @Description  Checks that the process is up.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /api/v1/health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "UP"})
}

// ReadinessHandler godoc
// @Summary      Readiness Check
// @Description  Checks that the lookup store answers.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Failure      503  {object}  models.HealthResponse
// @Router       /api/v1/ready [get]
func (h *HealthHandler) ReadinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "DOWN", Store: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "UP", Store: "reachable"})
}
