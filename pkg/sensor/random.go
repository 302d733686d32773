package sensor

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Range is an inclusive interval readings are drawn from.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Default simulated ranges
var (
	DefaultTemperatureRange = Range{Min: 20.0, Max: 30.0}
	DefaultHumidityRange    = Range{Min: 40.0, Max: 60.0}
)

// DefaultHazardProbability is the chance a RandomDetector reports a hazard.
const DefaultHazardProbability = 0.25

// RandomSource simulates a sensor board with uniform-random readings rounded
// to one decimal place.
type RandomSource struct {
	mu          sync.Mutex
	rng         *rand.Rand
	temperature Range
	humidity    Range
	now         func() time.Time
}

// NewRandomSource creates a RandomSource. A zero Range falls back to the default.
func NewRandomSource(seed int64, temperature, humidity Range) *RandomSource {
	if temperature == (Range{}) {
		temperature = DefaultTemperatureRange
	}
	if humidity == (Range{}) {
		humidity = DefaultHumidityRange
	}
	return &RandomSource{
		rng:         rand.New(rand.NewSource(seed)),
		temperature: temperature,
		humidity:    humidity,
		now:         time.Now,
	}
}

func (s *RandomSource) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return Reading{
		Temperature: s.uniform(s.temperature),
		Humidity:    s.uniform(s.humidity),
		Timestamp:   s.now().UTC(),
	}, nil
}

func (s *RandomSource) ReadDoors(ctx context.Context) (DoorState, error) {
	if err := ctx.Err(); err != nil {
		return DoorState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return DoorState{
		MainDoorOpen: s.rng.Intn(2) == 1,
		WindowOpen:   s.rng.Intn(2) == 1,
	}, nil
}

func (s *RandomSource) uniform(r Range) float64 {
	v := r.Min + s.rng.Float64()*(r.Max-r.Min)
	return math.Round(v*10) / 10
}

// RandomDetector is a biased coin standing in for a smoke/gas detector.
type RandomDetector struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
}

// NewRandomDetector creates a detector firing with the given probability.
// Values outside [0, 1] fall back to DefaultHazardProbability.
func NewRandomDetector(seed int64, probability float64) *RandomDetector {
	if probability < 0 || probability > 1 {
		probability = DefaultHazardProbability
	}
	return &RandomDetector{
		rng:         rand.New(rand.NewSource(seed)),
		probability: probability,
	}
}

func (d *RandomDetector) Detect(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64() < d.probability, nil
}
