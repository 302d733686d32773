// Package config loads process-level settings (logging, credentials, sensor
// hardware, announcement and telemetry backends) from a YAML file with
// HOMESIM_* environment overrides.
//
// Per-profile runtime settings such as automation thresholds live in the
// SQLite store instead (see package db).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Notifier NotifierConfig `yaml:"notifier"`
	Speech   SpeechConfig   `yaml:"speech"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// AuthConfig is the single credential pair guarding the HTTP API.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SensorConfig selects the sensor source. With no Port the readings are simulated.
type SensorConfig struct {
	Port          string       `yaml:"port"`
	BaudRate      int          `yaml:"baud_rate"`
	MaxAgeSeconds int          `yaml:"max_age_seconds"`
	Seed          int64        `yaml:"seed"` // 0 seeds from the clock
	Temperature   sensor.Range `yaml:"temperature"`
	Humidity      sensor.Range `yaml:"humidity"`
}

type NotifierConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// SpeechConfig enables spoken announcements through an external command.
type SpeechConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// MQTTConfig enables publishing announcements to a broker.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      int    `yaml:"qos"`
}

// InfluxDBConfig enables writing sensor readings as time series.
type InfluxDBConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Org     string `yaml:"org"`
	Bucket  string `yaml:"bucket"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Auth: AuthConfig{
			Username: "admin",
			Password: "raspberry",
		},
		Sensor: SensorConfig{
			BaudRate:      sensor.DefaultBaudRate,
			MaxAgeSeconds: int(sensor.DefaultMaxAge.Seconds()),
			Temperature:   sensor.DefaultTemperatureRange,
			Humidity:      sensor.DefaultHumidityRange,
		},
		Notifier: NotifierConfig{
			QueueSize: notify.DefaultQueueSize,
		},
		Speech: SpeechConfig{
			Command: notify.DefaultSpeechCommand,
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "homesim",
			Topic:    notify.DefaultMQTTTopic,
			QoS:      1,
		},
		InfluxDB: InfluxDBConfig{
			URL:    "http://localhost:8086",
			Org:    "homesim",
			Bucket: "sensors",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads HOMESIM_SECTION_KEY variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOMESIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HOMESIM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("HOMESIM_AUTH_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("HOMESIM_AUTH_PASSWORD"); v != "" {
		cfg.Auth.Password = v
	}

	if v := os.Getenv("HOMESIM_SENSOR_PORT"); v != "" {
		cfg.Sensor.Port = v
	}
	if v := os.Getenv("HOMESIM_SENSOR_BAUD_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sensor.BaudRate = n
		}
	}

	if v := os.Getenv("HOMESIM_SPEECH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Speech.Enabled = b
		}
	}

	if v := os.Getenv("HOMESIM_MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
		cfg.MQTT.Enabled = true
	}
	if v := os.Getenv("HOMESIM_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("HOMESIM_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}

	if v := os.Getenv("HOMESIM_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("HOMESIM_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
		cfg.InfluxDB.Enabled = true
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, "logging.format must be console or json")
	}

	if c.Auth.Username == "" || c.Auth.Password == "" {
		errs = append(errs, "auth.username and auth.password are required")
	}

	if c.Sensor.BaudRate <= 0 {
		errs = append(errs, "sensor.baud_rate must be positive")
	}
	if c.Sensor.MaxAgeSeconds < 0 {
		errs = append(errs, "sensor.max_age_seconds must not be negative")
	}
	if c.Sensor.Temperature.Min > c.Sensor.Temperature.Max {
		errs = append(errs, "sensor.temperature.min must not exceed max")
	}
	if c.Sensor.Humidity.Min > c.Sensor.Humidity.Max {
		errs = append(errs, "sensor.humidity.min must not exceed max")
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" {
			errs = append(errs, "mqtt.broker is required when mqtt is enabled")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" || c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.url, influxdb.org and influxdb.bucket are required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}
