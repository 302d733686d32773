package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// LogSink writes announcements to the process log. It is the fallback when
// no speech or MQTT backend is configured.
type LogSink struct{}

func (LogSink) Say(_ context.Context, text string) error {
	log.Info().Str("text", text).Msg("Announcement")
	return nil
}

// MultiSink delivers to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Say(ctx context.Context, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Say(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DefaultSpeechCommand is the text-to-speech binary used when none is configured.
const DefaultSpeechCommand = "espeak"

// SpeechSink speaks announcements through an external text-to-speech
// command; the text is passed as the final argument.
type SpeechSink struct {
	command string
	args    []string
}

// NewSpeechSink creates a SpeechSink. An empty command uses DefaultSpeechCommand.
func NewSpeechSink(command string, args []string) *SpeechSink {
	if command == "" {
		command = DefaultSpeechCommand
	}
	return &SpeechSink{command: command, args: args}
}

func (s *SpeechSink) Say(ctx context.Context, text string) error {
	args := append(append([]string{}, s.args...), text)
	out, err := exec.CommandContext(ctx, s.command, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", s.command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// breaker defaults
const (
	breakerFailures = 3
	breakerCooldown = time.Minute
)

// BreakerSink stops calling a failing sink for a cooldown period after
// consecutive failures, so an unavailable backend fails fast.
type BreakerSink struct {
	next Sink
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSink wraps next in a circuit breaker named name.
func NewBreakerSink(name string, next Sink) *BreakerSink {
	return &BreakerSink{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("sink", name).Str("from", from.String()).Str("to", to.String()).Msg("Announcement sink breaker changed state")
			},
		}),
	}
}

func (s *BreakerSink) Say(ctx context.Context, text string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Say(ctx, text)
	})
	return err
}
