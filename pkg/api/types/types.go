package types

import (
	"time"

	"github.com/urmzd/homesim/pkg/automation"
)

// --- Request DTOs ---

// SetDeviceRequest is the request body for PUT /devices/:name
type SetDeviceRequest struct {
	On bool `json:"on"`
}

// FanSpeedRequest is the request body for PUT /fan/speed
type FanSpeedRequest struct {
	Speed int `json:"speed"`
}

// CommandRequest is the request body for POST /commands
type CommandRequest struct {
	Command string `json:"command"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Sensors   string    `json:"sensors"`
	Emergency string    `json:"emergency"`
	Timestamp time.Time `json:"timestamp"`
}

// DevicesResponse is returned from GET /devices and POST /automation/run
type DevicesResponse struct {
	Devices  map[string]bool `json:"devices"`
	FanSpeed int             `json:"fan_speed"`
}

// DeviceResponse is returned from the single-device endpoints
type DeviceResponse struct {
	Device  string `json:"device"`
	On      bool   `json:"on"`
	Changed bool   `json:"changed"`
}

// FanSpeedResponse is returned from PUT /fan/speed
type FanSpeedResponse struct {
	FanSpeed int `json:"fan_speed"`
}

// SensorsResponse is returned from GET /sensors
type SensorsResponse struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

// AutomationResponse is returned from POST /automation/run
type AutomationResponse struct {
	Transitions []automation.Transition `json:"transitions"`
	DevicesResponse
}

// ThresholdsResponse is returned from GET/PUT /automation/thresholds
type ThresholdsResponse struct {
	Thresholds automation.Thresholds `json:"thresholds"`
}

// EmergencyResponse is returned from GET /emergency
type EmergencyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// CommandResponse is returned from POST /commands
type CommandResponse struct {
	Device  string `json:"device,omitempty"`
	On      bool   `json:"on"`
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// NotificationsResponse is returned from GET /notifications
type NotificationsResponse struct {
	Notifications []string `json:"notifications"`
	Count         int      `json:"count"`
	Capacity      int      `json:"capacity"`
}
