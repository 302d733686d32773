package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "homesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "raspberry", cfg.Auth.Password)
	assert.Empty(t, cfg.Sensor.Port)
	assert.Equal(t, sensor.DefaultBaudRate, cfg.Sensor.BaudRate)
	assert.Equal(t, sensor.DefaultTemperatureRange, cfg.Sensor.Temperature)
	assert.Equal(t, sensor.DefaultHumidityRange, cfg.Sensor.Humidity)
	assert.Equal(t, notify.DefaultQueueSize, cfg.Notifier.QueueSize)
	assert.False(t, cfg.Speech.Enabled)
	assert.False(t, cfg.MQTT.Enabled)
	assert.False(t, cfg.InfluxDB.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
auth:
  username: owner
  password: s3cret
sensor:
  port: /dev/ttyUSB0
  humidity:
    min: 30
    max: 80
speech:
  enabled: true
  args: ["-s", "140"]
mqtt:
  enabled: true
  broker: tcp://broker:1883
  qos: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "owner", cfg.Auth.Username)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Sensor.Port)
	assert.Equal(t, sensor.Range{Min: 30, Max: 80}, cfg.Sensor.Humidity)
	// untouched sections keep their defaults
	assert.Equal(t, sensor.DefaultTemperatureRange, cfg.Sensor.Temperature)
	assert.True(t, cfg.Speech.Enabled)
	assert.Equal(t, notify.DefaultSpeechCommand, cfg.Speech.Command)
	assert.Equal(t, []string{"-s", "140"}, cfg.Speech.Args)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, 2, cfg.MQTT.QoS)
	assert.Equal(t, notify.DefaultMQTTTopic, cfg.MQTT.Topic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOMESIM_AUTH_PASSWORD", "from-env")
	t.Setenv("HOMESIM_SENSOR_PORT", "/dev/ttyACM0")
	t.Setenv("HOMESIM_SPEECH_ENABLED", "true")
	t.Setenv("HOMESIM_INFLUXDB_TOKEN", "tok")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Password)
	assert.Equal(t, "/dev/ttyACM0", cfg.Sensor.Port)
	assert.True(t, cfg.Speech.Enabled)
	assert.True(t, cfg.InfluxDB.Enabled)
	assert.Equal(t, "tok", cfg.InfluxDB.Token)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "logging: [not, a, map"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty password", func(c *Config) { c.Auth.Password = "" }},
		{"zero baud", func(c *Config) { c.Sensor.BaudRate = 0 }},
		{"negative max age", func(c *Config) { c.Sensor.MaxAgeSeconds = -1 }},
		{"inverted humidity", func(c *Config) { c.Sensor.Humidity = sensor.Range{Min: 70, Max: 30} }},
		{"mqtt qos", func(c *Config) { c.MQTT.Enabled = true; c.MQTT.QoS = 3 }},
		{"mqtt broker", func(c *Config) { c.MQTT.Enabled = true; c.MQTT.Broker = "" }},
		{"influx bucket", func(c *Config) { c.InfluxDB.Enabled = true; c.InfluxDB.Bucket = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, SetupLogging(LoggingConfig{Level: "warn", Format: "json"}, &buf))

	log.Info().Msg("hidden")
	log.Warn().Str("device", "ac").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"device":"ac"`)

	err := SetupLogging(LoggingConfig{Level: "loud"}, &buf)
	assert.ErrorIs(t, err, ErrInvalid)
}
