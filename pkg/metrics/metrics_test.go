package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/urmzd/homesim/pkg/sensor"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Transition("light", true, "command")
		m.Notification()
		m.AnnouncementDropped()
		m.AnnouncementFailed()
		m.EmergencyPoll("alarm")
		m.Command("applied")
		m.RecordReading(sensor.Reading{Temperature: 21})
		m.RecordDoors(sensor.DoorState{WindowOpen: true})
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Transition("ac", true, "automation")
	m.Transition("ac", true, "automation")
	m.Transition("ac", false, "emergency")
	m.Notification()
	m.EmergencyPoll("alarm")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("ac", "on", "automation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("ac", "off", "emergency")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emergencyPolls.WithLabelValues("alarm")))
}

func TestRecordReading(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordReading(sensor.Reading{Temperature: 27.5, Humidity: 48.2})
	m.RecordDoors(sensor.DoorState{MainDoorOpen: true})

	assert.Equal(t, 27.5, testutil.ToFloat64(m.temperature))
	assert.Equal(t, 48.2, testutil.ToFloat64(m.humidity))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mainDoorOpen))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.windowOpen))
}
