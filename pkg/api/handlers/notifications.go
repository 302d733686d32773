package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/homesim/pkg/api/types"
	"github.com/urmzd/homesim/pkg/home"
)

const heartbeatInterval = 30 * time.Second

// NotificationsHandler exposes the notification log
type NotificationsHandler struct {
	home *home.Home
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(h *home.Home) *NotificationsHandler {
	return &NotificationsHandler{home: h}
}

// List handles GET /notifications
// @Summary      List notifications
// @Description  Returns the retained notifications, oldest first
// @Tags         notifications
// @Security     BasicAuth
// @Produce      json
// @Success      200  {object}  types.NotificationsResponse
// @Router       /notifications [get]
func (h *NotificationsHandler) List(c *gin.Context) {
	all := h.home.Log.All()
	c.JSON(http.StatusOK, types.NotificationsResponse{
		Notifications: all,
		Count:         len(all),
		Capacity:      h.home.Log.Capacity(),
	})
}

// Events handles GET /notifications/events (SSE stream)
// @Summary      Stream notifications
// @Description  Server-Sent Events stream of new notifications with a periodic heartbeat
// @Tags         notifications
// @Security     BasicAuth
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE event stream"
// @Router       /notifications/events [get]
func (h *NotificationsHandler) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ch := h.home.Log.Subscribe()
	defer h.home.Log.Unsubscribe(ch)

	sendSSEEvent(c.Writer, "connected", "", map[string]any{
		"capacity": h.home.Log.Capacity(),
	})
	c.Writer.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			sendSSEEvent(c.Writer, "notification", entry.ID, entry)
			c.Writer.Flush()
		case <-ticker.C:
			sendSSEEvent(c.Writer, "heartbeat", "", map[string]any{
				"time": time.Now().Unix(),
			})
			c.Writer.Flush()
		}
	}
}

// sendSSEEvent writes an SSE event to the response
func sendSSEEvent(w io.Writer, eventType, id string, data any) {
	jsonData, _ := json.Marshal(data)
	if id != "" {
		io.WriteString(w, "id: "+id+"\n")
	}
	io.WriteString(w, "event: "+eventType+"\n")
	io.WriteString(w, "data: "+string(jsonData)+"\n\n")
}
