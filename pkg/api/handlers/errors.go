package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/command"
	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/device/schema"
)

// respondError maps a core error to its HTTP status and error code.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"

	switch {
	case errors.Is(err, device.ErrInvalidDevice):
		status, code = http.StatusNotFound, "invalid_device"
	case errors.Is(err, device.ErrInvalidRange):
		status, code = http.StatusBadRequest, "invalid_range"
	case errors.Is(err, command.ErrUnrecognized):
		status, code = http.StatusBadRequest, "unrecognized_command"
	case errors.Is(err, automation.ErrInvalidThresholds):
		status, code = http.StatusBadRequest, "invalid_thresholds"
	}

	c.JSON(status, types.ErrorResponse{Error: code, Message: err.Error()})
}

// sensorUnavailable reports a failed sensor or detector read.
func sensorUnavailable(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
		Error:   "sensor_unavailable",
		Message: err.Error(),
	})
}

// bindValidated decodes the JSON body, validates it against schemaDoc and
// then decodes it into out. It writes the error response itself and
// reports whether the handler should continue.
func bindValidated(c *gin.Context, v *schema.Validator, schemaDoc json.RawMessage, out any) bool {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return false
	}

	if err := v.Validate(schemaDoc, raw); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return false
	}

	data, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func parseDevice(c *gin.Context) (device.Name, bool) {
	name, err := device.ParseName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return name, true
}
