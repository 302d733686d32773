package mcp

import "github.com/mark3labs/mcp-go/mcp"

var deviceNames = []string{"light", "fan", "ac"}

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check whether the sensor source is producing readings and report the emergency state"),
		),
		s.handleGetHealth,
	)

	// List devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List the on/off state of the light, fan and AC together with the fan speed"),
		),
		s.handleListDevices,
	)

	// Get device
	s.mcpServer.AddTool(
		mcp.NewTool("get_device",
			mcp.WithDescription("Get the on/off state of one device"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Device name"),
				mcp.Enum(deviceNames...),
			),
		),
		s.handleGetDevice,
	)

	// Toggle device
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_device",
			mcp.WithDescription("Flip a device on or off"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Device name"),
				mcp.Enum(deviceNames...),
			),
		),
		s.handleToggleDevice,
	)

	// Set device
	s.mcpServer.AddTool(
		mcp.NewTool("set_device",
			mcp.WithDescription("Switch a device to the requested state"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Device name"),
				mcp.Enum(deviceNames...),
			),
			mcp.WithBoolean("on",
				mcp.Required(),
				mcp.Description("true to switch the device on, false to switch it off"),
			),
		),
		s.handleSetDevice,
	)

	// Fan speed
	s.mcpServer.AddTool(
		mcp.NewTool("set_fan_speed",
			mcp.WithDescription("Set the fan speed percentage without changing its on/off state"),
			mcp.WithNumber("speed",
				mcp.Required(),
				mcp.Description("Fan speed from 0 to 100"),
			),
		),
		s.handleSetFanSpeed,
	)

	// Sensors
	s.mcpServer.AddTool(
		mcp.NewTool("read_sensors",
			mcp.WithDescription("Read the current temperature (Celsius) and relative humidity (percent)"),
		),
		s.handleReadSensors,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("read_doors",
			mcp.WithDescription("Read whether the main door and the window are open or closed"),
		),
		s.handleReadDoors,
	)

	// Automation
	s.mcpServer.AddTool(
		mcp.NewTool("run_automation",
			mcp.WithDescription("Apply the temperature and humidity rules once and report the resulting device states"),
		),
		s.handleRunAutomation,
	)

	// Emergency
	s.mcpServer.AddTool(
		mcp.NewTool("poll_emergency",
			mcp.WithDescription("Sample the fire/gas detector. A detection switches every device off."),
		),
		s.handlePollEmergency,
	)

	// Voice command
	s.mcpServer.AddTool(
		mcp.NewTool("voice_command",
			mcp.WithDescription("Apply a free-text command such as \"turn on the light\""),
			mcp.WithString("command",
				mcp.Required(),
				mcp.Description("Command text naming a device (light, fan, ac) and an action (on, off)"),
			),
		),
		s.handleVoiceCommand,
	)

	// Notifications
	s.mcpServer.AddTool(
		mcp.NewTool("list_notifications",
			mcp.WithDescription("List the most recent notifications, oldest first"),
		),
		s.handleListNotifications,
	)
}
