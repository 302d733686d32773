package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/device/schema"
	"github.com/urmzd/homesim/pkg/home"
)

// DevicesHandler handles device state and fan speed endpoints
type DevicesHandler struct {
	home *home.Home
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(h *home.Home) *DevicesHandler {
	return &DevicesHandler{home: h}
}

// devicesSnapshot renders every device state and the fan speed.
func devicesSnapshot(h *home.Home) types.DevicesResponse {
	states := h.Devices.AllStates()
	out := make(map[string]bool, len(states))
	for name, on := range states {
		out[string(name)] = on
	}
	return types.DevicesResponse{Devices: out, FanSpeed: h.Devices.FanSpeed()}
}

// ListDevices handles GET /devices
// @Summary      List devices
// @Description  Returns the on/off state of every device and the fan speed
// @Tags         devices
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.DevicesResponse
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	c.JSON(http.StatusOK, devicesSnapshot(h.home))
}

// GetDevice handles GET /devices/:name
// @Summary      Get device
// @Description  Returns the state of one device
// @Tags         devices
// @Security     BasicAuth
// @Produce      json
// @Param        name  path      string  true  "Device name (light, fan, ac)"
// @Success      200   {object}  types.DeviceResponse
// @Failure      404   {object}  types.ErrorResponse  "Unknown device"
// @Router       /devices/{name} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	name, ok := parseDevice(c)
	if !ok {
		return
	}

	on, err := h.home.Devices.Get(name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{Device: string(name), On: on})
}

// ToggleDevice handles POST /devices/:name/toggle
// @Summary      Toggle device
// @Description  Flips a device on or off and records a notification
// @Tags         devices
// @Security     BasicAuth
// @Produce      json
// @Param        name  path      string  true  "Device name (light, fan, ac)"
// @Success      200   {object}  types.DeviceResponse
// @Failure      404   {object}  types.ErrorResponse  "Unknown device"
// @Router       /devices/{name}/toggle [post]
func (h *DevicesHandler) ToggleDevice(c *gin.Context) {
	name, ok := parseDevice(c)
	if !ok {
		return
	}

	on, err := h.home.Toggle(name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{Device: string(name), On: on, Changed: true})
}

// SetDevice handles PUT /devices/:name
// @Summary      Set device
// @Description  Switches a device to the requested state; a notification is recorded only when it changes
// @Tags         devices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        name     path      string                  true  "Device name (light, fan, ac)"
// @Param        request  body      types.SetDeviceRequest  true  "Requested state"
// @Success      200      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Unknown device"
// @Router       /devices/{name} [put]
func (h *DevicesHandler) SetDevice(c *gin.Context) {
	name, ok := parseDevice(c)
	if !ok {
		return
	}

	var req types.SetDeviceRequest
	if !bindValidated(c, h.home.Validator, schema.SetDeviceRequest, &req) {
		return
	}

	changed, err := h.home.Set(name, req.On)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{Device: string(name), On: req.On, Changed: changed})
}

// SetFanSpeed handles PUT /fan/speed
// @Summary      Set fan speed
// @Description  Sets the fan speed percentage (0-100); independent of the fan on/off state
// @Tags         devices
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        request  body      types.FanSpeedRequest  true  "Fan speed"
// @Success      200      {object}  types.FanSpeedResponse
// @Failure      400      {object}  types.ErrorResponse  "Speed outside 0-100 or invalid request"
// @Router       /fan/speed [put]
func (h *DevicesHandler) SetFanSpeed(c *gin.Context) {
	var req types.FanSpeedRequest
	if !bindValidated(c, h.home.Validator, schema.FanSpeedRequest, &req) {
		return
	}

	if err := h.home.SetFanSpeed(req.Speed); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.FanSpeedResponse{FanSpeed: h.home.Devices.FanSpeed()})
}
