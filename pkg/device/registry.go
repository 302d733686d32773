package device

import (
	"fmt"
	"sync"
)

// Registry is the canonical in-memory device state store. Every method is a
// single critical section, so concurrent callers never observe a torn update.
type Registry struct {
	mu       sync.RWMutex
	states   States
	fanSpeed int
}

// NewRegistry creates a Registry with every device off and the default fan speed.
func NewRegistry() *Registry {
	states := make(States, len(Names))
	for _, n := range Names {
		states[n] = false
	}
	return &Registry{
		states:   states,
		fanSpeed: DefaultFanSpeed,
	}
}

func (r *Registry) Get(name Name) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	on, ok := r.states[name]
	if !ok {
		return false, invalidDevice(string(name))
	}
	return on, nil
}

func (r *Registry) Set(name Name, on bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.states[name]
	if !ok {
		return false, invalidDevice(string(name))
	}
	r.states[name] = on
	return prev, nil
}

func (r *Registry) Toggle(name Name) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.states[name]
	if !ok {
		return false, invalidDevice(string(name))
	}
	r.states[name] = !prev
	return !prev, nil
}

func (r *Registry) CompareAndSet(name Name, expect, on bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.states[name]
	if !ok {
		return false, invalidDevice(string(name))
	}
	if cur != expect {
		return false, nil
	}
	r.states[name] = on
	return true, nil
}

func (r *Registry) AllStates() States {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states.Clone()
}

func (r *Registry) AllOff() States {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.states.Clone()
	for n := range r.states {
		r.states[n] = false
	}
	return prev
}

func (r *Registry) FanSpeed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fanSpeed
}

func (r *Registry) SetFanSpeed(speed int) error {
	if speed < MinFanSpeed || speed > MaxFanSpeed {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRange, speed, MinFanSpeed, MaxFanSpeed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fanSpeed = speed
	return nil
}
