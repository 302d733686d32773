package device

// Controller defines the operations every component uses to read and mutate
// shared device state. Implementations never emit notifications; callers pair
// each successful mutation with their own notification.
type Controller interface {
	// Get returns the current state of a device
	Get(name Name) (bool, error)

	// Set assigns a device state and returns the previous one
	Set(name Name, on bool) (bool, error)

	// Toggle flips a device and returns the new state
	Toggle(name Name) (bool, error)

	// CompareAndSet assigns on only if the device is currently expect
	CompareAndSet(name Name, expect, on bool) (bool, error)

	// AllStates returns a snapshot of every device state
	AllStates() States

	// AllOff switches every device off in one step and returns the prior states
	AllOff() States

	// FanSpeed returns the fan speed percentage
	FanSpeed() int

	// SetFanSpeed sets the fan speed percentage
	SetFanSpeed(speed int) error
}
