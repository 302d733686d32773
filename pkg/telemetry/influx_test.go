package telemetry

import (
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/sensor"
)

type fakeWriter struct {
	points  []*write.Point
	flushed int
}

func (w *fakeWriter) WritePoint(p *write.Point) { w.points = append(w.points, p) }
func (w *fakeWriter) Flush()                    { w.flushed++ }

func fields(p *write.Point) map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range p.FieldList() {
		out[f.Key] = f.Value
	}
	return out
}

func tags(p *write.Point) map[string]string {
	out := map[string]string{}
	for _, t := range p.TagList() {
		out[t.Key] = t.Value
	}
	return out
}

func TestRecorder_Reading(t *testing.T) {
	w := &fakeWriter{}
	r := newRecorder(w, "simulated")

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.RecordReading(sensor.Reading{Temperature: 27.4, Humidity: 51.2, Timestamp: ts})

	require.Len(t, w.points, 1)
	p := w.points[0]
	assert.Equal(t, MeasurementEnvironment, p.Name())
	assert.Equal(t, ts, p.Time())
	assert.Equal(t, map[string]string{"source": "simulated"}, tags(p))
	assert.Equal(t, map[string]interface{}{"temperature": 27.4, "humidity": 51.2}, fields(p))
}

func TestRecorder_Doors(t *testing.T) {
	w := &fakeWriter{}
	r := newRecorder(w, "/dev/ttyUSB0")

	r.RecordDoors(sensor.DoorState{MainDoorOpen: true})

	require.Len(t, w.points, 1)
	p := w.points[0]
	assert.Equal(t, MeasurementSecurity, p.Name())
	assert.Equal(t, map[string]interface{}{"main_door_open": true, "window_open": false}, fields(p))
}

func TestRecorder_Close(t *testing.T) {
	w := &fakeWriter{}
	newRecorder(w, "simulated").Close()
	assert.Equal(t, 1, w.flushed)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordReading(sensor.Reading{})
		r.RecordDoors(sensor.DoorState{})
		r.Close()
	})
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{}, "simulated")
	assert.ErrorIs(t, err, ErrDisabled)
}
