package mcp

import "github.com/urmzd/homesim/pkg/automation"

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Sensors   string `json:"sensors" jsonschema:"description=Sensor source (simulated or serial:<port>)"`
	Emergency string `json:"emergency" jsonschema:"description=Emergency state (normal or alarmed)"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// ListDevicesOutput is the output for the list_devices and run_automation tools
type ListDevicesOutput struct {
	Devices  map[string]bool `json:"devices" jsonschema:"description=On/off state keyed by device name"`
	FanSpeed int             `json:"fan_speed" jsonschema:"description=Fan speed percentage"`
}

// DeviceOutput is the output for the single-device tools
type DeviceOutput struct {
	Device  string `json:"device" jsonschema:"description=Device name"`
	On      bool   `json:"on" jsonschema:"description=Whether the device is on"`
	Changed bool   `json:"changed" jsonschema:"description=Whether the call changed the state"`
}

// FanSpeedOutput is the output for the set_fan_speed tool
type FanSpeedOutput struct {
	FanSpeed int `json:"fan_speed" jsonschema:"description=Fan speed percentage"`
}

// SensorsOutput is the output for the read_sensors tool
type SensorsOutput struct {
	Temperature float64 `json:"temperature" jsonschema:"description=Temperature in degrees Celsius"`
	Humidity    float64 `json:"humidity" jsonschema:"description=Relative humidity in percent"`
	Source      string  `json:"source" jsonschema:"description=Sensor source"`
	Timestamp   string  `json:"timestamp" jsonschema:"description=ISO8601 time of the reading"`
}

// RunAutomationOutput is the output for the run_automation tool
type RunAutomationOutput struct {
	Transitions []automation.Transition `json:"transitions" jsonschema:"description=Device changes made by this run"`
	ListDevicesOutput
}

// EmergencyOutput is the output for the poll_emergency tool
type EmergencyOutput struct {
	Status  bool   `json:"status" jsonschema:"description=Whether an emergency is active"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// VoiceCommandOutput is the output for the voice_command tool
type VoiceCommandOutput struct {
	Device  string `json:"device,omitempty" jsonschema:"description=Device named by the command"`
	On      bool   `json:"on" jsonschema:"description=Requested state"`
	Applied bool   `json:"applied" jsonschema:"description=Whether the command changed anything"`
	Message string `json:"message" jsonschema:"description=Result message"`
}

// ListNotificationsOutput is the output for the list_notifications tool
type ListNotificationsOutput struct {
	Notifications []string `json:"notifications" jsonschema:"description=Notification texts, oldest first"`
	Count         int      `json:"count" jsonschema:"description=Number of notifications returned"`
}
