// Package automation evaluates threshold rules against sensor readings and
// switches devices accordingly.
//
// Each rule has an "on" and an "off" threshold; readings between the two
// never change the device, so a value hovering near one threshold does not
// make the device oscillate.
package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/metrics"
	"github.com/urmzd/homesim/pkg/notify"
	"github.com/urmzd/homesim/pkg/sensor"
)

// ErrInvalidThresholds is returned when an "on" threshold does not exceed its "off" threshold
var ErrInvalidThresholds = errors.New("invalid automation thresholds")

// Transition reasons
const (
	ReasonTemperatureHigh        = "temperature high"
	ReasonTemperatureComfortable = "temperature comfortable"
	ReasonHumidityHigh           = "humidity high"
	ReasonHumidityLow            = "humidity low"
)

// metricsSource labels transitions made by the engine.
const metricsSource = "automation"

// Thresholds bound the hysteresis bands of the AC and fan rules.
type Thresholds struct {
	ACOnAbove   float64 `json:"ac_on_above" yaml:"ac_on_above"`
	ACOffBelow  float64 `json:"ac_off_below" yaml:"ac_off_below"`
	FanOnAbove  float64 `json:"fan_on_above" yaml:"fan_on_above"`
	FanOffBelow float64 `json:"fan_off_below" yaml:"fan_off_below"`
}

// DefaultThresholds returns the stock rule bands: AC [24,28] °C, fan [50,65] %RH.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ACOnAbove:   28,
		ACOffBelow:  24,
		FanOnAbove:  65,
		FanOffBelow: 50,
	}
}

// Validate checks that both bands are non-empty.
func (t Thresholds) Validate() error {
	if t.ACOnAbove <= t.ACOffBelow {
		return fmt.Errorf("%w: ac_on_above (%.1f) must exceed ac_off_below (%.1f)", ErrInvalidThresholds, t.ACOnAbove, t.ACOffBelow)
	}
	if t.FanOnAbove <= t.FanOffBelow {
		return fmt.Errorf("%w: fan_on_above (%.1f) must exceed fan_off_below (%.1f)", ErrInvalidThresholds, t.FanOnAbove, t.FanOffBelow)
	}
	return nil
}

// Transition is one device change made by an evaluation.
type Transition struct {
	Device device.Name `json:"device"`
	On     bool        `json:"on"`
	Reason string      `json:"reason"`
}

// rule switches one device from a single scalar reading.
type rule struct {
	device     device.Name
	value      func(sensor.Reading) float64
	onAbove    func(Thresholds) float64
	offBelow   func(Thresholds) float64
	onReason   string
	offReason  string
	onMessage  string
	offMessage string
}

var rules = []rule{
	{
		device:     device.AC,
		value:      func(r sensor.Reading) float64 { return r.Temperature },
		onAbove:    func(t Thresholds) float64 { return t.ACOnAbove },
		offBelow:   func(t Thresholds) float64 { return t.ACOffBelow },
		onReason:   ReasonTemperatureHigh,
		offReason:  ReasonTemperatureComfortable,
		onMessage:  "🌡️ Temperature is high. Turning on the AC.",
		offMessage: "🌡️ Temperature is comfortable. Turning off the AC.",
	},
	{
		device:     device.Fan,
		value:      func(r sensor.Reading) float64 { return r.Humidity },
		onAbove:    func(t Thresholds) float64 { return t.FanOnAbove },
		offBelow:   func(t Thresholds) float64 { return t.FanOffBelow },
		onReason:   ReasonHumidityHigh,
		offReason:  ReasonHumidityLow,
		onMessage:  "💧 Humidity is high. Turning on the fan.",
		offMessage: "💧 Humidity is low. Turning off the fan.",
	},
}

// Engine applies the rules against one shared device controller.
type Engine struct {
	devices device.Controller
	sensors sensor.Source
	emitter notify.Emitter
	metrics *metrics.Metrics

	mu         sync.RWMutex
	thresholds Thresholds
}

// NewEngine creates an Engine. Invalid thresholds fall back to DefaultThresholds.
func NewEngine(devices device.Controller, sensors sensor.Source, emitter notify.Emitter, thresholds Thresholds, m *metrics.Metrics) *Engine {
	if err := thresholds.Validate(); err != nil {
		log.Warn().Err(err).Msg("Using default automation thresholds")
		thresholds = DefaultThresholds()
	}
	return &Engine{
		devices:    devices,
		sensors:    sensors,
		emitter:    emitter,
		metrics:    m,
		thresholds: thresholds,
	}
}

// Thresholds returns the thresholds currently in effect.
func (e *Engine) Thresholds() Thresholds {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.thresholds
}

// SetThresholds replaces the thresholds used by later evaluations.
func (e *Engine) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.thresholds = t
	e.mu.Unlock()
	return nil
}

// Evaluate takes one sensor reading and applies every rule to it. The
// returned slice lists the transitions actually made, in rule order.
func (e *Engine) Evaluate(ctx context.Context) ([]Transition, error) {
	reading, err := e.sensors.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	t := e.Thresholds()
	var out []Transition

	for _, r := range rules {
		v := r.value(reading)

		var (
			expect, on bool
			reason     string
			message    string
		)
		switch {
		case v > r.onAbove(t):
			expect, on, reason, message = false, true, r.onReason, r.onMessage
		case v < r.offBelow(t):
			expect, on, reason, message = true, false, r.offReason, r.offMessage
		default:
			continue
		}

		swapped, err := e.devices.CompareAndSet(r.device, expect, on)
		if err != nil {
			return out, err
		}
		if !swapped {
			continue
		}

		e.metrics.Transition(string(r.device), on, metricsSource)
		e.emitter.Emit(notify.Text(message))

		log.Info().
			Str("device", string(r.device)).
			Bool("on", on).
			Float64("value", v).
			Str("reason", reason).
			Msg("Automation transition")

		out = append(out, Transition{Device: r.device, On: on, Reason: reason})
	}

	return out, nil
}

// Run evaluates every interval until ctx is cancelled. Evaluation errors are
// logged and do not stop the loop.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("Automation scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Automation scheduler stopped")
			return
		case <-ticker.C:
			if _, err := e.Evaluate(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("Scheduled automation failed")
			}
		}
	}
}
