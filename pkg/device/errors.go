package device

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDevice indicates a name outside the fixed device set
	ErrInvalidDevice = errors.New("invalid device")

	// ErrInvalidRange indicates a fan speed outside [MinFanSpeed, MaxFanSpeed]
	ErrInvalidRange = errors.New("fan speed out of range")
)

func invalidDevice(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidDevice, name)
}
