// Package notify records human-readable notifications and announces them
// out of band.
//
// A Log keeps the most recent messages for display. A Notifier hands each
// message to a Sink (speech, MQTT, log) without blocking the caller. Center
// pairs the two so every emitter produces exactly one log entry and one
// announcement per message.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries a Log retains.
const DefaultCapacity = 10

// subscriberBuffer is the per-subscriber channel depth.
const subscriberBuffer = 16

// Entry is one logged notification.
type Entry struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Log is a fixed-capacity, oldest-first notification history. When an append
// would exceed the capacity the oldest entry is evicted.
type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	subs     map[chan Entry]struct{}
	now      func() time.Time
}

// NewLog creates a Log holding at most capacity entries. Non-positive values
// use DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
		subs:     make(map[chan Entry]struct{}),
		now:      time.Now,
	}
}

// Append adds message as the newest entry and returns it.
func (l *Log) Append(message string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:      uuid.NewString(),
		Message: message,
		Time:    l.now().UTC(),
	}

	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.capacity-1]
	}
	l.entries = append(l.entries, e)

	for ch := range l.subs {
		select {
		case ch <- e:
		default:
			// slow subscriber misses this entry
		}
	}

	return e
}

// All returns the logged messages, oldest first.
func (l *Log) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Message
	}
	return out
}

// Entries returns a copy of the logged entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Capacity returns the maximum number of retained entries.
func (l *Log) Capacity() int {
	return l.capacity
}

// Subscribe returns a channel that receives every entry appended from now on.
func (l *Log) Subscribe() chan Entry {
	ch := make(chan Entry, subscriberBuffer)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	return ch
}

// Unsubscribe removes and closes a subscription.
func (l *Log) Unsubscribe(ch chan Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.subs[ch]; ok {
		delete(l.subs, ch)
		close(ch)
	}
}
