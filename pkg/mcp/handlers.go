package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/device/schema"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := "healthy"
	if err := s.home.CheckSensors(ctx); err != nil {
		status = "degraded"
	}

	out := GetHealthOutput{
		Status:    status,
		Sensors:   s.home.SensorSource(),
		Emergency: s.home.Monitor.State().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.devices())), nil
}

func (s *Server) handleGetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredDevice(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	on, err := s.home.Devices.Get(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get device: %s", err)), nil
	}

	out := DeviceOutput{Device: string(name), On: on}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleToggleDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredDevice(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	on, err := s.home.Toggle(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle device: %s", err)), nil
	}

	out := DeviceOutput{Device: string(name), On: on, Changed: true}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredDevice(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := map[string]any{"on": request.GetArguments()["on"]}
	if err := s.home.Validator.Validate(schema.SetDeviceRequest, payload); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}
	on := payload["on"].(bool)

	changed, err := s.home.Set(name, on)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set device: %s", err)), nil
	}

	out := DeviceOutput{Device: string(name), On: on, Changed: changed}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetFanSpeed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload := map[string]any{"speed": request.GetArguments()["speed"]}
	if err := s.home.Validator.Validate(schema.FanSpeedRequest, payload); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	speed, ok := payload["speed"].(float64)
	if !ok {
		return mcp.NewToolResultError("parameter \"speed\" must be a number"), nil
	}

	if err := s.home.SetFanSpeed(int(speed)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set fan speed: %s", err)), nil
	}

	out := FanSpeedOutput{FanSpeed: s.home.Devices.FanSpeed()}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleReadSensors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := s.home.Sensors.Read(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read sensors: %s", err)), nil
	}

	out := SensorsOutput{
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Source:      s.home.SensorSource(),
		Timestamp:   r.Timestamp.UTC().Format(time.RFC3339),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleReadDoors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.home.Sensors.ReadDoors(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read doors: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(d)), nil
}

func (s *Server) handleRunAutomation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transitions, err := s.home.Engine.Evaluate(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to run automation: %s", err)), nil
	}
	if transitions == nil {
		transitions = []automation.Transition{}
	}

	out := RunAutomationOutput{
		Transitions:       transitions,
		ListDevicesOutput: s.devices(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePollEmergency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.home.Monitor.Poll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to poll detector: %s", err)), nil
	}

	out := EmergencyOutput{Status: status.Active, Message: status.Message}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleVoiceCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := requiredString(request, "command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.home.Validator.Validate(schema.CommandRequest, map[string]any{"command": text}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	res, err := s.home.Commands.Apply(ctx, text)
	if err != nil {
		if res.Message == "" {
			return mcp.NewToolResultError(fmt.Sprintf("failed to apply command: %s", err)), nil
		}
		return mcp.NewToolResultError(res.Message), nil
	}

	out := VoiceCommandOutput{
		Device:  string(res.Device),
		On:      res.On,
		Applied: res.Applied,
		Message: res.Message,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListNotifications(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.home.Log.All()
	out := ListNotificationsOutput{Notifications: all, Count: len(all)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func (s *Server) devices() ListDevicesOutput {
	states := s.home.Devices.AllStates()
	out := make(map[string]bool, len(states))
	for name, on := range states {
		out[string(name)] = on
	}
	return ListDevicesOutput{Devices: out, FanSpeed: s.home.Devices.FanSpeed()}
}

func requiredDevice(request mcp.CallToolRequest) (device.Name, error) {
	raw, err := requiredString(request, "name")
	if err != nil {
		return "", err
	}
	return device.ParseName(raw)
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
