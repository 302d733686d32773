package home

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/db"
	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/sensor"
)

type recordingSink struct {
	mu    sync.Mutex
	texts []string
}

func (s *recordingSink) Say(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	return nil
}

func (s *recordingSink) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

type fixedSource struct {
	reading sensor.Reading
}

func (s fixedSource) Read(context.Context) (sensor.Reading, error) { return s.reading, nil }
func (s fixedSource) ReadDoors(context.Context) (sensor.DoorState, error) {
	return sensor.DoorState{WindowOpen: true}, nil
}

type alwaysDetect bool

func (d alwaysDetect) Detect(context.Context) (bool, error) { return bool(d), nil }

type memoryStore struct {
	saved map[int64]automation.Thresholds
	err   error
}

func (m *memoryStore) SetThresholds(_ context.Context, id int64, t automation.Thresholds) error {
	if m.err != nil {
		return m.err
	}
	m.saved[id] = t
	return nil
}

func probability(p float64) *float64 { return &p }

func newTestHome(t *testing.T, opts Options) (*Home, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	opts.Sink = sink
	if opts.Source == nil {
		opts.Source = fixedSource{reading: sensor.Reading{Temperature: 29, Humidity: 55}}
	}
	if opts.Detector == nil {
		opts.Detector = alwaysDetect(false)
	}
	h, err := New(context.Background(), opts)
	require.NoError(t, err)
	return h, sink
}

func TestNew_Defaults(t *testing.T) {
	h, err := New(context.Background(), Options{Sink: &recordingSink{}})
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, SourceSimulated, h.SensorSource())
	assert.Equal(t, automation.DefaultThresholds(), h.Engine.Thresholds())
	assert.True(t, h.Devices.AllStates().AllOff())
	assert.Equal(t, device.DefaultFanSpeed, h.Devices.FanSpeed())

	r, err := h.Sensors.Read(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Temperature, sensor.DefaultTemperatureRange.Min)
	assert.LessOrEqual(t, r.Temperature, sensor.DefaultTemperatureRange.Max)
}

func TestNew_RejectsBadOptions(t *testing.T) {
	_, err := New(context.Background(), Options{AlarmProbability: probability(2)})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Thresholds: automation.Thresholds{ACOnAbove: 1, ACOffBelow: 2, FanOnAbove: 3, FanOffBelow: 1}})
	assert.ErrorIs(t, err, automation.ErrInvalidThresholds)
}

func TestToggle_EmitsAndAnnounces(t *testing.T) {
	h, sink := newTestHome(t, Options{})

	on, err := h.Toggle(device.AC)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = h.Toggle(device.Light)
	require.NoError(t, err)
	assert.True(t, on)

	h.Close()

	want := []string{"💡 The AC has been turned ON.", "💡 The light has been turned ON."}
	assert.Equal(t, want, h.Log.All())
	assert.Equal(t, want, sink.said())
}

func TestToggle_InvalidDevice(t *testing.T) {
	h, _ := newTestHome(t, Options{})
	defer h.Close()

	_, err := h.Toggle("oven")
	assert.ErrorIs(t, err, device.ErrInvalidDevice)
	assert.Empty(t, h.Log.All())
}

func TestSet_EmitsOnlyOnChange(t *testing.T) {
	h, _ := newTestHome(t, Options{})
	defer h.Close()

	changed, err := h.Set(device.Fan, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, h.Log.All())

	changed, err = h.Set(device.Fan, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"💡 The fan has been turned ON."}, h.Log.All())
}

func TestSetFanSpeed(t *testing.T) {
	h, _ := newTestHome(t, Options{})
	defer h.Close()

	require.NoError(t, h.SetFanSpeed(70))
	assert.Equal(t, 70, h.Devices.FanSpeed())
	assert.Equal(t, []string{"🌀 Fan speed set to 70%"}, h.Log.All())

	assert.ErrorIs(t, h.SetFanSpeed(101), device.ErrInvalidRange)
	assert.Equal(t, 70, h.Devices.FanSpeed())
	assert.Len(t, h.Log.All(), 1)
}

func TestSetThresholds_Persists(t *testing.T) {
	store := &memoryStore{saved: map[int64]automation.Thresholds{}}
	h, _ := newTestHome(t, Options{ProfileID: 7, Store: store})
	defer h.Close()

	custom := automation.Thresholds{ACOnAbove: 30, ACOffBelow: 26, FanOnAbove: 70, FanOffBelow: 40}
	require.NoError(t, h.SetThresholds(context.Background(), custom))
	assert.Equal(t, custom, store.saved[7])
	assert.Equal(t, custom, h.Engine.Thresholds())

	// 29 °C no longer exceeds the AC threshold
	got, err := h.Engine.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetThresholds_StoreFailureKeepsOld(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	h, _ := newTestHome(t, Options{Store: store})
	defer h.Close()

	err := h.SetThresholds(context.Background(), automation.Thresholds{ACOnAbove: 30, ACOffBelow: 26, FanOnAbove: 70, FanOffBelow: 40})
	assert.Error(t, err)
	assert.Equal(t, automation.DefaultThresholds(), h.Engine.Thresholds())

	bad := automation.DefaultThresholds()
	bad.FanOnAbove = 0
	assert.ErrorIs(t, h.SetThresholds(context.Background(), bad), automation.ErrInvalidThresholds)
}

func TestComponentsShareState(t *testing.T) {
	h, sink := newTestHome(t, Options{Detector: alwaysDetect(true)})

	got, err := h.Engine.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = h.Commands.Apply(context.Background(), "turn on the light")
	require.NoError(t, err)
	assert.False(t, h.Devices.AllStates().AllOff())

	st, err := h.Monitor.Poll(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.True(t, h.Devices.AllStates().AllOff())

	h.Close()

	assert.Equal(t, []string{
		"🌡️ Temperature is high. Turning on the AC.",
		"🎙️ Voice command: Turning on the light.",
		"🔥 Fire/Gas detected! All devices OFF. Alerting Fire Department!",
	}, h.Log.All())
	assert.Equal(t, []string{
		"🌡️ Temperature is high. Turning on the AC.",
		"Turning on the light.",
		"Emergency detected! Alerting Fire Department!",
	}, sink.said())
}

func TestSensorsRecordMetrics(t *testing.T) {
	h, _ := newTestHome(t, Options{})
	defer h.Close()

	_, err := h.Sensors.Read(context.Background())
	require.NoError(t, err)

	families, err := h.Gatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "homesim_temperature_celsius" {
			found = true
			assert.Equal(t, 29.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func TestNew_StoredZeroProbabilityNeverAlarms(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(filepath.Join(t.TempDir(), "homesim.db"))
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.Init(ctx))

	active, err := database.ActiveConfig(ctx)
	require.NoError(t, err)
	active.Automation.AlarmProbability = 0
	require.NoError(t, database.AutomationSettings().Update(ctx, active.Automation))

	active, err = database.ActiveConfig(ctx)
	require.NoError(t, err)
	require.Zero(t, active.Automation.AlarmProbability)

	h, err := New(ctx, Options{
		Sink:             &recordingSink{},
		Source:           fixedSource{reading: sensor.Reading{Temperature: 25, Humidity: 55}},
		AlarmProbability: &active.Automation.AlarmProbability,
	})
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Toggle(device.Light)
	require.NoError(t, err)

	for i := 0; i < 400; i++ {
		st, err := h.Monitor.Poll(ctx)
		require.NoError(t, err)
		require.False(t, st.Active, "poll %d raised an alarm", i)
	}
	on, err := h.Devices.Get(device.Light)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestNew_NilProbabilityUsesDefault(t *testing.T) {
	h, err := New(context.Background(), Options{
		Sink:   &recordingSink{},
		Source: fixedSource{reading: sensor.Reading{Temperature: 25, Humidity: 55}},
	})
	require.NoError(t, err)
	defer h.Close()

	alarms := 0
	for i := 0; i < 400; i++ {
		st, err := h.Monitor.Poll(context.Background())
		require.NoError(t, err)
		if st.Active {
			alarms++
		}
	}
	assert.Positive(t, alarms)
}

func TestCheckSensors_DoesNotRecord(t *testing.T) {
	h, _ := newTestHome(t, Options{})
	defer h.Close()

	temperature := func() float64 {
		families, err := h.Gatherer.Gather()
		require.NoError(t, err)
		for _, f := range families {
			if f.GetName() == "homesim_temperature_celsius" {
				return f.GetMetric()[0].GetGauge().GetValue()
			}
		}
		t.Fatal("temperature gauge not registered")
		return 0
	}

	require.NoError(t, h.CheckSensors(context.Background()))
	assert.Zero(t, temperature())

	_, err := h.Sensors.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 29.0, temperature())
}

// slowStore counts persists that overlap in time.
type slowStore struct {
	active   atomic.Int32
	overlaps atomic.Int32

	mu   sync.Mutex
	last automation.Thresholds
}

func (s *slowStore) SetThresholds(_ context.Context, _ int64, t automation.Thresholds) error {
	if s.active.Add(1) > 1 {
		s.overlaps.Add(1)
	}
	defer s.active.Add(-1)

	time.Sleep(time.Millisecond)
	s.mu.Lock()
	s.last = t
	s.mu.Unlock()
	return nil
}

func TestSetThresholds_ConcurrentStoreMatchesEngine(t *testing.T) {
	store := &slowStore{}
	h, _ := newTestHome(t, Options{Store: store})
	defer h.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- h.SetThresholds(context.Background(), automation.Thresholds{
				ACOnAbove:   30 + float64(i),
				ACOffBelow:  20,
				FanOnAbove:  70,
				FanOffBelow: 40,
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Zero(t, store.overlaps.Load())
	assert.Equal(t, store.last, h.Engine.Thresholds())
}
