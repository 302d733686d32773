package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/home"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	home *home.Home
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(h *home.Home) *HealthHandler {
	return &HealthHandler{home: h}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports whether the sensor source is producing readings and the emergency state
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Sensor source is not producing readings"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status, httpStatus := "healthy", http.StatusOK

	if err := h.home.CheckSensors(c.Request.Context()); err != nil {
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Sensors:   h.home.SensorSource(),
		Emergency: h.home.Monitor.State().String(),
		Timestamp: time.Now(),
	})
}
