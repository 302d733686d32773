package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/device/schema"
	"github.com/urmzd/homesim/pkg/home"
)

// AutomationHandler runs the rule engine and manages its thresholds
type AutomationHandler struct {
	home *home.Home
}

// NewAutomationHandler creates a new automation handler
func NewAutomationHandler(h *home.Home) *AutomationHandler {
	return &AutomationHandler{home: h}
}

// Run handles POST /automation/run
// @Summary      Run automation rules
// @Description  Reads the sensors once, applies the threshold rules and returns the transitions and resulting device states
// @Tags         automation
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.AutomationResponse
// @Failure      503  {object}  types.ErrorResponse  "No reading available"
// @Router       /automation/run [post]
func (h *AutomationHandler) Run(c *gin.Context) {
	transitions, err := h.home.Engine.Evaluate(c.Request.Context())
	if err != nil {
		sensorUnavailable(c, err)
		return
	}
	if transitions == nil {
		transitions = []automation.Transition{}
	}

	c.JSON(http.StatusOK, types.AutomationResponse{
		Transitions:     transitions,
		DevicesResponse: devicesSnapshot(h.home),
	})
}

// GetThresholds handles GET /automation/thresholds
// @Summary      Get automation thresholds
// @Tags         automation
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.ThresholdsResponse
// @Router       /automation/thresholds [get]
func (h *AutomationHandler) GetThresholds(c *gin.Context) {
	c.JSON(http.StatusOK, types.ThresholdsResponse{Thresholds: h.home.Engine.Thresholds()})
}

// PutThresholds handles PUT /automation/thresholds
// @Summary      Replace automation thresholds
// @Description  Validates and persists new thresholds for the active profile; each on-threshold must exceed its off-threshold
// @Tags         automation
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        request  body      automation.Thresholds  true  "New thresholds"
// @Success      200      {object}  types.ThresholdsResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid thresholds"
// @Router       /automation/thresholds [put]
func (h *AutomationHandler) PutThresholds(c *gin.Context) {
	var t automation.Thresholds
	if !bindValidated(c, h.home.Validator, schema.ThresholdsRequest, &t) {
		return
	}

	if err := h.home.SetThresholds(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ThresholdsResponse{Thresholds: h.home.Engine.Thresholds()})
}
