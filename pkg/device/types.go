package device

import "strings"

// Name identifies one of the fixed set of controllable devices.
type Name string

// Device name constants
const (
	Light Name = "light"
	Fan   Name = "fan"
	AC    Name = "ac"
)

// Names lists every device in display order. Devices are created at startup
// and never added or removed afterwards.
var Names = []Name{Light, Fan, AC}

// Fan speed bounds
const (
	MinFanSpeed     = 0
	MaxFanSpeed     = 100
	DefaultFanSpeed = 50
)

// States maps each device to its on/off state.
type States map[Name]bool

// Clone returns an independent copy of s.
func (s States) Clone() States {
	out := make(States, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// AllOff reports whether every device in s is off.
func (s States) AllOff() bool {
	for _, on := range s {
		if on {
			return false
		}
	}
	return true
}

// ParseName resolves a device name, ignoring case and surrounding space.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", invalidDevice(s)
	}
	return n, nil
}

// Valid reports whether n is part of the fixed device set.
func (n Name) Valid() bool {
	switch n {
	case Light, Fan, AC:
		return true
	}
	return false
}

// Label is the human-facing name used in notifications ("AC" rather than "ac").
func (n Name) Label() string {
	if n == AC {
		return "AC"
	}
	return string(n)
}

// StateLabel renders a device state the way notifications show it.
func StateLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
