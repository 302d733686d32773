// Package command turns free-text instructions such as "turn on the light"
// into device changes.
//
// Matching is case-insensitive substring containment checked in a fixed
// order: the first device keyword found wins (light, then fan, then ac), and
// "on" is checked before "off". Only one device is acted on per command.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/device"
	"github.com/urmzd/homesim/pkg/metrics"
	"github.com/urmzd/homesim/pkg/notify"
)

// ErrUnrecognized is returned when a command names no device or no action
var ErrUnrecognized = errors.New("command not recognized")

// NotUnderstood is the result message for a command that names a device but no action.
const NotUnderstood = "Command not understood."

const (
	messagePrefix = "🎙️ Voice command: "
	metricsSource = "command"
)

type keyword struct {
	word string
	name device.Name
}

// deviceKeywords is checked in order; earlier entries take precedence.
var deviceKeywords = []keyword{
	{"light", device.Light},
	{"fan", device.Fan},
	{"ac", device.AC},
}

type action struct {
	word string
	on   bool
}

var actionKeywords = []action{
	{"on", true},
	{"off", false},
}

// Result describes what a command did. Device is empty when no device
// keyword matched; Applied is false when nothing changed.
type Result struct {
	Device  device.Name `json:"device,omitempty"`
	On      bool        `json:"on"`
	Applied bool        `json:"applied"`
	Message string      `json:"message"`
}

// Interpreter applies parsed commands to a device controller.
type Interpreter struct {
	devices device.Controller
	emitter notify.Emitter
	metrics *metrics.Metrics
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(devices device.Controller, emitter notify.Emitter, m *metrics.Metrics) *Interpreter {
	return &Interpreter{devices: devices, emitter: emitter, metrics: m}
}

// Parse resolves text to a device and action without applying it. ok is
// false when no action keyword was found.
func Parse(text string) (name device.Name, on bool, ok bool, err error) {
	lower := strings.ToLower(text)

	found := false
	for _, k := range deviceKeywords {
		if strings.Contains(lower, k.word) {
			name, found = k.name, true
			break
		}
	}
	if !found {
		return "", false, false, fmt.Errorf("%w: %q", ErrUnrecognized, text)
	}

	for _, a := range actionKeywords {
		if strings.Contains(lower, a.word) {
			return name, a.on, true, nil
		}
	}
	return name, false, false, nil
}

// Apply parses text and, when both a device and an action are present,
// sets the device and emits one notification.
func (i *Interpreter) Apply(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	name, on, ok, err := Parse(text)
	if err != nil {
		i.metrics.Command("unrecognized")
		log.Debug().Str("command", text).Msg("No device in command")
		return Result{Message: NotUnderstood}, err
	}
	if !ok {
		i.metrics.Command("unrecognized")
		log.Debug().Str("command", text).Str("device", string(name)).Msg("No action in command")
		return Result{Device: name, Message: NotUnderstood}, fmt.Errorf("%w: no on/off for %s", ErrUnrecognized, name)
	}

	if _, err := i.devices.Set(name, on); err != nil {
		return Result{}, err
	}

	spoken := fmt.Sprintf("Turning %s the %s.", onOff(on), name.Label())
	i.metrics.Command("applied")
	i.metrics.Transition(string(name), on, metricsSource)
	i.emitter.Emit(notify.Message{Text: messagePrefix + spoken, Spoken: spoken})

	log.Info().Str("command", text).Str("device", string(name)).Bool("on", on).Msg("Command applied")

	return Result{Device: name, On: on, Applied: true, Message: spoken}, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
