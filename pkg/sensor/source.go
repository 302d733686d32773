// Package sensor provides the environmental and security readings that drive
// automation and emergency handling. Sources are pluggable: the default is a
// uniform-random simulator, and a serial-attached sensor board can replace it.
package sensor

import (
	"context"
	"errors"
	"time"
)

// ErrNoReading indicates a source has not produced any data yet
var ErrNoReading = errors.New("no sensor reading available")

// Reading is one environmental sample.
type Reading struct {
	Temperature float64   `json:"temperature"` // degrees Celsius
	Humidity    float64   `json:"humidity"`    // relative humidity, percent
	Timestamp   time.Time `json:"timestamp"`
}

// DoorState is one security-sensor sample.
type DoorState struct {
	MainDoorOpen bool `json:"main_door_open"`
	WindowOpen   bool `json:"window_open"`
}

// Source produces fresh sensor snapshots on demand. Reads have no side
// effects on device state.
type Source interface {
	// Read returns the current temperature and humidity
	Read(ctx context.Context) (Reading, error)

	// ReadDoors returns the current door and window contacts
	ReadDoors(ctx context.Context) (DoorState, error)
}

// Detector reports whether a hazard (smoke, gas) is present right now.
type Detector interface {
	Detect(ctx context.Context) (bool, error)
}
