package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/home"
)

// SensorsHandler serves read-only sensor snapshots
type SensorsHandler struct {
	home *home.Home
}

// NewSensorsHandler creates a new sensors handler
func NewSensorsHandler(h *home.Home) *SensorsHandler {
	return &SensorsHandler{home: h}
}

// GetReadings handles GET /sensors
// @Summary      Read environment sensors
// @Description  Returns a fresh temperature and humidity reading
// @Tags         sensors
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.SensorsResponse
// @Failure      503  {object}  types.ErrorResponse  "No reading available"
// @Router       /sensors [get]
func (h *SensorsHandler) GetReadings(c *gin.Context) {
	r, err := h.home.Sensors.Read(c.Request.Context())
	if err != nil {
		sensorUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SensorsResponse{
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Source:      h.home.SensorSource(),
		Timestamp:   r.Timestamp,
	})
}

// GetDoors handles GET /sensors/doors
// @Summary      Read door and window contacts
// @Description  Returns whether the main door and the window are open or closed
// @Tags         sensors
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  sensor.DoorState
// @Failure      503  {object}  types.ErrorResponse  "No reading available"
// @Router       /sensors/doors [get]
func (h *SensorsHandler) GetDoors(c *gin.Context) {
	d, err := h.home.Sensors.ReadDoors(c.Request.Context())
	if err != nil {
		sensorUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}
