package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/home"
)

// EmergencyHandler polls the emergency detector
type EmergencyHandler struct {
	home *home.Home
}

// NewEmergencyHandler creates a new emergency handler
func NewEmergencyHandler(h *home.Home) *EmergencyHandler {
	return &EmergencyHandler{home: h}
}

// Poll handles GET /emergency
// @Summary      Poll for emergencies
// @Description  Samples the detector once. A detection switches every device off and raises the alarm.
// @Tags         emergency
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.EmergencyResponse
// @Failure      503  {object}  types.ErrorResponse  "Detector unavailable"
// @Router       /emergency [get]
func (h *EmergencyHandler) Poll(c *gin.Context) {
	status, err := h.home.Monitor.Poll(c.Request.Context())
	if err != nil {
		sensorUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, types.EmergencyResponse{Status: status.Active, Message: status.Message})
}
