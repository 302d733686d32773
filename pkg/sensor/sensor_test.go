package sensor

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSource_ReadInRange(t *testing.T) {
	src := NewRandomSource(1, Range{}, Range{})
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		r, err := src.Read(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Temperature, DefaultTemperatureRange.Min)
		assert.LessOrEqual(t, r.Temperature, DefaultTemperatureRange.Max)
		assert.GreaterOrEqual(t, r.Humidity, DefaultHumidityRange.Min)
		assert.LessOrEqual(t, r.Humidity, DefaultHumidityRange.Max)

		// one decimal place
		assert.InDelta(t, r.Temperature, math.Round(r.Temperature*10)/10, 1e-9)
	}
}

func TestRandomSource_CustomRange(t *testing.T) {
	src := NewRandomSource(7, Range{Min: 29, Max: 29}, Range{Min: 70, Max: 70})

	r, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 29.0, r.Temperature)
	assert.Equal(t, 70.0, r.Humidity)
}

func TestRandomSource_CancelledContext(t *testing.T) {
	src := NewRandomSource(1, Range{}, Range{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = src.ReadDoors(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRandomDetector_Bounds(t *testing.T) {
	ctx := context.Background()

	never := NewRandomDetector(1, 0)
	always := NewRandomDetector(1, 1)
	for i := 0; i < 50; i++ {
		hit, err := never.Detect(ctx)
		require.NoError(t, err)
		assert.False(t, hit)

		hit, err = always.Detect(ctx)
		require.NoError(t, err)
		assert.True(t, hit)
	}
}

func TestRandomDetector_DefaultProbability(t *testing.T) {
	d := NewRandomDetector(42, -3)
	assert.Equal(t, DefaultHazardProbability, d.probability)

	hits := 0
	for i := 0; i < 4000; i++ {
		hit, _ := d.Detect(context.Background())
		if hit {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/4000, 0.05)
}

func TestSerialSource_Frames(t *testing.T) {
	pr, pw := io.Pipe()
	src := newSerialSource(pr, time.Minute)
	ctx := context.Background()

	_, err := src.Read(ctx)
	assert.ErrorIs(t, err, ErrNoReading)

	_, err = io.WriteString(pw, "not json\n{\"temperature\":29.5,\"humidity\":66.1,\"window_open\":true}\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := src.Read(ctx)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	r, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 29.5, r.Temperature)
	assert.Equal(t, 66.1, r.Humidity)

	doors, err := src.ReadDoors(ctx)
	require.NoError(t, err)
	assert.True(t, doors.WindowOpen)
	assert.False(t, doors.MainDoorOpen)

	require.NoError(t, pw.Close())
	require.NoError(t, src.Close())
}

func TestSerialSource_Stale(t *testing.T) {
	pr, pw := io.Pipe()
	src := newSerialSource(pr, time.Second)
	defer func() {
		_ = pw.Close()
		_ = src.Close()
	}()

	_, err := io.WriteString(pw, "{\"temperature\":21,\"humidity\":45}\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := src.Read(context.Background())
		return err == nil
	}, time.Second, 5*time.Millisecond)

	src.mu.Lock()
	src.now = func() time.Time { return time.Now().Add(time.Hour) }
	src.mu.Unlock()

	_, err = src.Read(context.Background())
	assert.ErrorIs(t, err, ErrNoReading)
}

type fakeRecorder struct {
	readings []Reading
	doors    []DoorState
}

func (f *fakeRecorder) RecordReading(r Reading) { f.readings = append(f.readings, r) }
func (f *fakeRecorder) RecordDoors(d DoorState) { f.doors = append(f.doors, d) }

func TestWithRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	src := WithRecorder(NewRandomSource(3, Range{}, Range{}), rec)

	r, err := src.Read(context.Background())
	require.NoError(t, err)
	_, err = src.ReadDoors(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.readings, 1)
	assert.Equal(t, r, rec.readings[0])
	assert.Len(t, rec.doors, 1)
}

func TestWithRecorder_Nil(t *testing.T) {
	base := NewRandomSource(3, Range{}, Range{})
	assert.Same(t, base, WithRecorder(base, nil).(*RandomSource))
	assert.Same(t, base, WithRecorder(base).(*RandomSource))
}

func TestWithRecorder_FanOut(t *testing.T) {
	a, b := &fakeRecorder{}, &fakeRecorder{}
	src := WithRecorder(NewRandomSource(5, Range{}, Range{}), a, nil, b)

	_, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, a.readings, 1)
	assert.Len(t, b.readings, 1)
}
