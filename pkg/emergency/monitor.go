// Package emergency implements the fire/gas override. A positive detection
// switches every device off in one step and latches the Alarmed state until
// the next clear poll. Devices are not locked afterwards and nothing is
// restored automatically.
package emergency

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/metrics"
	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
)

// State of the monitor
type State int

const (
	Normal State = iota
	Alarmed
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Alarmed:
		return "alarmed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status messages
const (
	AlarmMessage = "🔥 Fire/Gas detected! All devices OFF. Alerting Fire Department!"
	AlarmSpoken  = "Emergency detected! Alerting Fire Department!"
	ClearMessage = "✅ No emergency."
)

const metricsSource = "emergency"

// Status is the result of the most recent poll.
type Status struct {
	Active  bool   `json:"status"`
	Message string `json:"message"`
}

// Monitor samples a hazard detector and forces devices off on detection.
type Monitor struct {
	devices  device.Controller
	detector sensor.Detector
	emitter  notify.Emitter
	metrics  *metrics.Metrics

	mu     sync.Mutex
	state  State
	status Status
}

// NewMonitor creates a Monitor in the Normal state.
func NewMonitor(devices device.Controller, detector sensor.Detector, emitter notify.Emitter, m *metrics.Metrics) *Monitor {
	return &Monitor{
		devices:  devices,
		detector: detector,
		emitter:  emitter,
		metrics:  m,
		state:    Normal,
		status:   Status{Message: ClearMessage},
	}
}

// Poll re-samples the detector. Polls are serialized; a detector error leaves
// the state untouched.
func (m *Monitor) Poll(ctx context.Context) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	detected, err := m.detector.Detect(ctx)
	if err != nil {
		m.metrics.EmergencyPoll("error")
		return m.status, fmt.Errorf("detect hazard: %w", err)
	}

	if !detected {
		if m.state == Alarmed {
			log.Info().Msg("Emergency cleared")
		}
		m.state = Normal
		m.status = Status{Active: false, Message: ClearMessage}
		m.metrics.EmergencyPoll("clear")
		return m.status, nil
	}

	prev := m.devices.AllOff()
	for name, on := range prev {
		if on {
			m.metrics.Transition(string(name), false, metricsSource)
		}
	}

	m.state = Alarmed
	m.status = Status{Active: true, Message: AlarmMessage}
	m.metrics.EmergencyPoll("alarm")
	m.emitter.Emit(notify.Message{Text: AlarmMessage, Spoken: AlarmSpoken})

	log.Warn().Interface("previous", prev).Msg("Hazard detected, all devices forced off")

	return m.status, nil
}

// Status returns the last computed status without sampling the detector.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
