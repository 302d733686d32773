package notify

import (
	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/metrics"
)

// Message is one notification. Text goes to the log; Spoken, when set,
// replaces Text for the announcement.
type Message struct {
	Text   string
	Spoken string
}

// Text builds a Message whose log and spoken forms are identical.
func Text(s string) Message {
	return Message{Text: s}
}

// Speech returns the string to announce.
func (m Message) Speech() string {
	if m.Spoken != "" {
		return m.Spoken
	}
	return m.Text
}

// Emitter is implemented by anything that can publish a notification.
type Emitter interface {
	Emit(m Message)
}

// Center appends each message to the Log and hands it to the Notifier.
// The two steps are independent; a reader may briefly see one without the other.
type Center struct {
	log      *Log
	notifier Notifier
	metrics  *metrics.Metrics
}

// NewCenter wires a log and a notifier. A nil notifier only logs.
func NewCenter(l *Log, n Notifier, m *metrics.Metrics) *Center {
	return &Center{log: l, notifier: n, metrics: m}
}

// Emit records and announces m.
func (c *Center) Emit(m Message) {
	e := c.log.Append(m.Text)
	c.metrics.Notification()

	log.Debug().Str("id", e.ID).Str("message", e.Message).Msg("Notification")

	if c.notifier != nil {
		c.notifier.Announce(m.Speech())
	}
}

// Log returns the underlying notification log.
func (c *Center) Log() *Log {
	return c.log
}
