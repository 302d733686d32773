// Package home is the composition root. It owns the single device registry
// and notification log of the process and wires every component to them.
// The HTTP and MCP layers drive the system only through a *Home.
package home

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/command"
	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/device/schema"
	"github.com/urmzd/homesim/pkg/emergency"
	"github.com/urmzd/homesim/pkg/metrics"
	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
	"github.com/urmzd/homesim/pkg/telemetry"
)

// SourceSimulated names the random sensor source in health output and telemetry tags.
const SourceSimulated = "simulated"

// SettingsStore persists runtime threshold changes.
type SettingsStore interface {
	SetThresholds(ctx context.Context, profileID int64, t automation.Thresholds) error
}

// Options configures New. Zero values select the simulated defaults.
type Options struct {
	Config *config.Config

	// Thresholds and AlarmProbability usually come from the active profile.
	// A nil AlarmProbability selects sensor.DefaultHazardProbability; zero
	// disables the simulated detector.
	Thresholds       automation.Thresholds
	AlarmProbability *float64

	// ProfileID and Store persist threshold changes; a nil Store keeps them in memory
	ProfileID int64
	Store     SettingsStore

	// Overrides, mainly for tests
	Sink     notify.Sink
	Source   sensor.Source
	Detector sensor.Detector
}

// Home holds every shared object of one running controller.
type Home struct {
	Devices   *device.Registry
	Log       *notify.Log
	Center    *notify.Center
	Sensors   sensor.Source
	Engine    *automation.Engine
	Monitor   *emergency.Monitor
	Commands  *command.Interpreter
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Validator *schema.Validator

	source     sensor.Source
	sourceName string
	settingsMu sync.Mutex
	profileID  int64
	store      SettingsStore
	notifier   *notify.AsyncNotifier
	closers    []func()
}

// New builds a Home. Optional backends (serial board, MQTT, InfluxDB) that
// fail to start are logged and skipped.
func New(ctx context.Context, opts Options) (*Home, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if p := opts.AlarmProbability; p != nil && (*p < 0 || *p > 1) {
		return nil, fmt.Errorf("alarm probability must be within [0, 1], got %v", *p)
	}
	if opts.Thresholds != (automation.Thresholds{}) {
		if err := opts.Thresholds.Validate(); err != nil {
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	h := &Home{
		Devices:   device.NewRegistry(),
		Log:       notify.NewLog(notify.DefaultCapacity),
		Metrics:   m,
		Gatherer:  reg,
		Validator: schema.NewValidator(),
		profileID: opts.ProfileID,
		store:     opts.Store,
	}

	sink := opts.Sink
	if sink == nil {
		sink = h.buildSink(ctx, cfg)
	}
	h.notifier = notify.NewAsyncNotifier(sink, cfg.Notifier.QueueSize, m)
	h.Center = notify.NewCenter(h.Log, h.notifier, m)

	seed := cfg.Sensor.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	src := opts.Source
	if src == nil {
		src = h.buildSource(cfg.Sensor, seed)
	} else {
		h.sourceName = SourceSimulated
	}
	h.source = src
	h.Sensors = sensor.WithRecorder(src, m, h.buildTelemetry(cfg.InfluxDB))

	detector := opts.Detector
	if detector == nil {
		p := sensor.DefaultHazardProbability
		if opts.AlarmProbability != nil {
			p = *opts.AlarmProbability
		}
		detector = sensor.NewRandomDetector(seed+1, p)
	}

	thresholds := opts.Thresholds
	if thresholds == (automation.Thresholds{}) {
		thresholds = automation.DefaultThresholds()
	}

	h.Engine = automation.NewEngine(h.Devices, h.Sensors, h.Center, thresholds, m)
	h.Monitor = emergency.NewMonitor(h.Devices, detector, h.Center, m)
	h.Commands = command.NewInterpreter(h.Devices, h.Center, m)

	log.Info().
		Str("sensors", h.sourceName).
		Int("notification_capacity", h.Log.Capacity()).
		Msg("Home initialized")

	return h, nil
}

func (h *Home) buildSink(ctx context.Context, cfg *config.Config) notify.Sink {
	sinks := notify.MultiSink{notify.LogSink{}}

	if cfg.Speech.Enabled {
		sinks = append(sinks, notify.NewBreakerSink("speech", notify.NewSpeechSink(cfg.Speech.Command, cfg.Speech.Args)))
	}

	if cfg.MQTT.Enabled {
		mq, err := notify.DialMQTT(ctx, notify.MQTTOptions{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			QoS:      byte(cfg.MQTT.QoS),
		})
		if err != nil {
			log.Warn().Err(err).Msg("MQTT announcements disabled")
		} else {
			sinks = append(sinks, notify.NewBreakerSink("mqtt", mq))
			h.closers = append(h.closers, mq.Close)
		}
	}

	if len(sinks) == 1 {
		return sinks[0]
	}
	return sinks
}

func (h *Home) buildSource(cfg config.SensorConfig, seed int64) sensor.Source {
	if cfg.Port != "" {
		s, err := sensor.OpenSerial(cfg.Port, cfg.BaudRate, time.Duration(cfg.MaxAgeSeconds)*time.Second)
		if err == nil {
			h.sourceName = "serial:" + cfg.Port
			h.closers = append(h.closers, func() {
				if err := s.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close sensor port")
				}
			})
			return s
		}
		log.Warn().Err(err).Str("port", cfg.Port).Msg("Sensor board unavailable, using simulated readings")
	}

	h.sourceName = SourceSimulated
	return sensor.NewRandomSource(seed, cfg.Temperature, cfg.Humidity)
}

func (h *Home) buildTelemetry(cfg config.InfluxDBConfig) sensor.Recorder {
	rec, err := telemetry.Connect(cfg, h.sourceName)
	if errors.Is(err, telemetry.ErrDisabled) {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("InfluxDB telemetry disabled")
		return nil
	}
	h.closers = append(h.closers, rec.Close)
	return rec
}

// SensorSource describes where readings come from ("simulated" or "serial:<port>").
func (h *Home) SensorSource() string {
	return h.sourceName
}

// CheckSensors reads the undecorated source so health checks leave the
// recorded gauges and telemetry untouched.
func (h *Home) CheckSensors(ctx context.Context) error {
	_, err := h.source.Read(ctx)
	return err
}

// Toggle flips a device and emits the toggle notification.
func (h *Home) Toggle(name device.Name) (bool, error) {
	on, err := h.Devices.Toggle(name)
	if err != nil {
		return false, err
	}
	h.deviceChanged(name, on, "toggle")
	return on, nil
}

// Set assigns a device state and reports whether it changed. A notification
// is emitted only on change.
func (h *Home) Set(name device.Name, on bool) (bool, error) {
	prev, err := h.Devices.Set(name, on)
	if err != nil {
		return false, err
	}
	if prev == on {
		return false, nil
	}
	h.deviceChanged(name, on, "manual")
	return true, nil
}

func (h *Home) deviceChanged(name device.Name, on bool, source string) {
	h.Metrics.Transition(string(name), on, source)
	h.Center.Emit(notify.Text(fmt.Sprintf("💡 The %s has been turned %s.", name.Label(), device.StateLabel(on))))
}

// SetFanSpeed sets the fan speed and emits a notification.
func (h *Home) SetFanSpeed(speed int) error {
	if err := h.Devices.SetFanSpeed(speed); err != nil {
		return err
	}
	h.Center.Emit(notify.Text(fmt.Sprintf("🌀 Fan speed set to %d%%", speed)))
	return nil
}

// SetThresholds validates, persists and applies new automation thresholds.
// Concurrent calls are serialized so the store and the engine agree.
func (h *Home) SetThresholds(ctx context.Context, t automation.Thresholds) error {
	h.settingsMu.Lock()
	defer h.settingsMu.Unlock()

	if err := t.Validate(); err != nil {
		return err
	}
	if h.store != nil {
		if err := h.store.SetThresholds(ctx, h.profileID, t); err != nil {
			return fmt.Errorf("persist thresholds: %w", err)
		}
	}
	return h.Engine.SetThresholds(t)
}

// Close drains pending announcements and releases optional backends.
func (h *Home) Close() {
	h.notifier.Close()
	for i := len(h.closers) - 1; i >= 0; i-- {
		h.closers[i]()
	}
	h.closers = nil
}
