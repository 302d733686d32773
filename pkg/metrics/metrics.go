// Package metrics exposes Prometheus collectors for device transitions,
// notifications, emergency polls and sensor readings.
//
// Every method is safe on a nil *Metrics, so components can run without
// instrumentation in tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/urmzd/homesim/pkg/sensor"
)

const namespace = "homesim"

// Metrics holds the collectors registered for one process.
type Metrics struct {
	transitions          *prometheus.CounterVec
	notifications        prometheus.Counter
	announcementsDropped prometheus.Counter
	announcementFailures prometheus.Counter
	emergencyPolls       *prometheus.CounterVec
	commands             *prometheus.CounterVec
	temperature          prometheus.Gauge
	humidity             prometheus.Gauge
	mainDoorOpen         prometheus.Gauge
	windowOpen           prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_transitions_total",
			Help:      "Device state changes by device, new state and originating component.",
		}, []string{"device", "state", "source"}),
		notifications: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications appended to the log.",
		}),
		announcementsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcements_dropped_total",
			Help:      "Announcements discarded because the notifier queue was full.",
		}),
		announcementFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcement_failures_total",
			Help:      "Announcements the sink failed to deliver.",
		}),
		emergencyPolls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergency_polls_total",
			Help:      "Emergency detector polls by outcome.",
		}, []string{"outcome"}),
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Free-text commands by result.",
		}, []string{"result"}),
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Last temperature reading.",
		}),
		humidity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "humidity_percent",
			Help:      "Last relative humidity reading.",
		}),
		mainDoorOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "main_door_open",
			Help:      "1 if the main door contact was open on the last read.",
		}),
		windowOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_open",
			Help:      "1 if the window contact was open on the last read.",
		}),
	}
}

// Transition counts a device state change made by source.
func (m *Metrics) Transition(device string, on bool, source string) {
	if m == nil {
		return
	}
	state := "off"
	if on {
		state = "on"
	}
	m.transitions.WithLabelValues(device, state, source).Inc()
}

func (m *Metrics) Notification() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

func (m *Metrics) AnnouncementDropped() {
	if m == nil {
		return
	}
	m.announcementsDropped.Inc()
}

func (m *Metrics) AnnouncementFailed() {
	if m == nil {
		return
	}
	m.announcementFailures.Inc()
}

// EmergencyPoll counts one detector poll; outcome is "alarm", "clear" or "error".
func (m *Metrics) EmergencyPoll(outcome string) {
	if m == nil {
		return
	}
	m.emergencyPolls.WithLabelValues(outcome).Inc()
}

// Command counts one interpreted command; result is "applied" or "unrecognized".
func (m *Metrics) Command(result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(result).Inc()
}

// RecordReading implements sensor.Recorder.
func (m *Metrics) RecordReading(r sensor.Reading) {
	if m == nil {
		return
	}
	m.temperature.Set(r.Temperature)
	m.humidity.Set(r.Humidity)
}

// RecordDoors implements sensor.Recorder.
func (m *Metrics) RecordDoors(d sensor.DoorState) {
	if m == nil {
		return
	}
	m.mainDoorOpen.Set(boolGauge(d.MainDoorOpen))
	m.windowOpen.Set(boolGauge(d.WindowOpen))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
