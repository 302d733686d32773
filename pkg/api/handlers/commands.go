package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/command"
	"github.com/urmzd/homesim/pkg/device/schema"
	"github.com/urmzd/homesim/pkg/home"
)

// CommandsHandler applies free-text commands
type CommandsHandler struct {
	home *home.Home
}

// NewCommandsHandler creates a new commands handler
func NewCommandsHandler(h *home.Home) *CommandsHandler {
	return &CommandsHandler{home: h}
}

// Apply handles POST /commands
// @Summary      Apply a voice command
// @Description  Interprets text such as "turn on the light" and switches the named device
// @Tags         commands
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        request  body      types.CommandRequest  true  "Command text"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Command not understood"
// @Router       /commands [post]
func (h *CommandsHandler) Apply(c *gin.Context) {
	var req types.CommandRequest
	if !bindValidated(c, h.home.Validator, schema.CommandRequest, &req) {
		return
	}

	res, err := h.home.Commands.Apply(c.Request.Context(), req.Command)
	if errors.Is(err, command.ErrUnrecognized) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "unrecognized_command",
			Message: res.Message,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.CommandResponse{
		Device:  string(res.Device),
		On:      res.On,
		Applied: res.Applied,
		Message: res.Message,
	})
}
