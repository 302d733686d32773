package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/homesim/pkg/home"
	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
)

type fixedSource struct {
	reading sensor.Reading
}

func (s fixedSource) Read(context.Context) (sensor.Reading, error) { return s.reading, nil }
func (s fixedSource) ReadDoors(context.Context) (sensor.DoorState, error) {
	return sensor.DoorState{WindowOpen: true}, nil
}

type fixedDetector bool

func (d fixedDetector) Detect(context.Context) (bool, error) { return bool(d), nil }

func newTestServer(t *testing.T, reading sensor.Reading, detect bool) *Server {
	t.Helper()
	h, err := home.New(context.Background(), home.Options{
		Sink:     notify.SinkFunc(func(context.Context, string) error { return nil }),
		Source:   fixedSource{reading: reading},
		Detector: fixedDetector(detect),
	})
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return NewServer(h, "test")
}

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, handler toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func callJSON[T any](t *testing.T, handler toolHandler, args map[string]any) T {
	t.Helper()
	text, isErr := call(t, handler, args)
	require.False(t, isErr, text)

	var out T
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

var comfortable = sensor.Reading{Temperature: 25, Humidity: 55}

func TestGetHealth(t *testing.T) {
	s := newTestServer(t, comfortable, false)

	out := callJSON[GetHealthOutput](t, s.handleGetHealth, nil)
	assert.Equal(t, "healthy", out.Status)
	assert.Equal(t, home.SourceSimulated, out.Sensors)
	assert.Equal(t, "normal", out.Emergency)
}

func TestDeviceTools(t *testing.T) {
	s := newTestServer(t, comfortable, false)

	list := callJSON[ListDevicesOutput](t, s.handleListDevices, nil)
	assert.Equal(t, map[string]bool{"light": false, "fan": false, "ac": false}, list.Devices)

	toggled := callJSON[DeviceOutput](t, s.handleToggleDevice, map[string]any{"name": "fan"})
	assert.True(t, toggled.On)

	got := callJSON[DeviceOutput](t, s.handleGetDevice, map[string]any{"name": "fan"})
	assert.True(t, got.On)

	set := callJSON[DeviceOutput](t, s.handleSetDevice, map[string]any{"name": "fan", "on": false})
	assert.False(t, set.On)
	assert.True(t, set.Changed)

	assert.Equal(t, []string{
		"💡 The fan has been turned ON.",
		"💡 The fan has been turned OFF.",
	}, s.home.Log.All())
}

func TestDeviceTools_Errors(t *testing.T) {
	s := newTestServer(t, comfortable, false)

	for name, tc := range map[string]struct {
		handler toolHandler
		args    map[string]any
	}{
		"unknown device":  {s.handleToggleDevice, map[string]any{"name": "heater"}},
		"missing name":    {s.handleGetDevice, nil},
		"on not boolean":  {s.handleSetDevice, map[string]any{"name": "light", "on": "yes"}},
		"missing on":      {s.handleSetDevice, map[string]any{"name": "light"}},
		"speed too high":  {s.handleSetFanSpeed, map[string]any{"speed": float64(150)}},
		"speed fraction":  {s.handleSetFanSpeed, map[string]any{"speed": 12.5}},
		"empty command":   {s.handleVoiceCommand, map[string]any{"command": ""}},
		"unknown command": {s.handleVoiceCommand, map[string]any{"command": "make coffee"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, isErr := call(t, tc.handler, tc.args)
			assert.True(t, isErr)
		})
	}
	assert.Empty(t, s.home.Log.All())
	assert.Equal(t, 50, s.home.Devices.FanSpeed())
}

func TestSetFanSpeed(t *testing.T) {
	s := newTestServer(t, comfortable, false)

	out := callJSON[FanSpeedOutput](t, s.handleSetFanSpeed, map[string]any{"speed": float64(70)})
	assert.Equal(t, 70, out.FanSpeed)
	assert.Equal(t, []string{"🌀 Fan speed set to 70%"}, s.home.Log.All())
}

func TestSensorTools(t *testing.T) {
	s := newTestServer(t, sensor.Reading{Temperature: 21.5, Humidity: 44}, false)

	readings := callJSON[SensorsOutput](t, s.handleReadSensors, nil)
	assert.InDelta(t, 21.5, readings.Temperature, 1e-9)
	assert.InDelta(t, 44, readings.Humidity, 1e-9)

	text, isErr := call(t, s.handleReadDoors, nil)
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"main_door_open":false,"window_open":true}`, text)
}

func TestRunAutomation(t *testing.T) {
	s := newTestServer(t, sensor.Reading{Temperature: 31, Humidity: 55}, false)

	out := callJSON[RunAutomationOutput](t, s.handleRunAutomation, nil)
	require.Len(t, out.Transitions, 1)
	assert.True(t, out.Devices["ac"])

	again := callJSON[RunAutomationOutput](t, s.handleRunAutomation, nil)
	assert.Empty(t, again.Transitions)
	assert.Len(t, s.home.Log.All(), 1)
}

func TestPollEmergency(t *testing.T) {
	s := newTestServer(t, comfortable, true)
	callJSON[DeviceOutput](t, s.handleToggleDevice, map[string]any{"name": "ac"})

	out := callJSON[EmergencyOutput](t, s.handlePollEmergency, nil)
	assert.True(t, out.Status)
	assert.True(t, s.home.Devices.AllStates().AllOff())

	health := callJSON[GetHealthOutput](t, s.handleGetHealth, nil)
	assert.Equal(t, "alarmed", health.Emergency)
}

func TestVoiceCommand(t *testing.T) {
	s := newTestServer(t, comfortable, false)

	out := callJSON[VoiceCommandOutput](t, s.handleVoiceCommand, map[string]any{"command": "turn off fan now"})
	assert.Equal(t, "fan", out.Device)
	assert.False(t, out.On)
	assert.True(t, out.Applied)

	text, isErr := call(t, s.handleVoiceCommand, map[string]any{"command": "do a backflip"})
	assert.True(t, isErr)
	assert.Equal(t, "Command not understood.", text)

	notes := callJSON[ListNotificationsOutput](t, s.handleListNotifications, nil)
	assert.Equal(t, 1, notes.Count)
	assert.Equal(t, "🎙️ Voice command: Turning off the fan.", notes.Notifications[0])
}
