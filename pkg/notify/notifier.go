package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/metrics"
)

// DefaultQueueSize is the announcement backlog an AsyncNotifier buffers.
const DefaultQueueSize = 32

// announceTimeout bounds a single sink delivery.
const announceTimeout = 30 * time.Second

// Notifier performs an out-of-band announcement. Announce never blocks and
// never reports failure to the caller.
type Notifier interface {
	Announce(text string)
}

// Sink delivers one announcement.
type Sink interface {
	Say(ctx context.Context, text string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, text string) error

func (f SinkFunc) Say(ctx context.Context, text string) error {
	return f(ctx, text)
}

// AsyncNotifier feeds announcements to a Sink from a single long-lived
// worker goroutine. When the queue is full new announcements are dropped.
type AsyncNotifier struct {
	sink    Sink
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan string
	done   chan struct{}
}

// NewAsyncNotifier starts the worker. Non-positive queueSize uses DefaultQueueSize.
func NewAsyncNotifier(sink Sink, queueSize int, m *metrics.Metrics) *AsyncNotifier {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	n := &AsyncNotifier{
		sink:    sink,
		metrics: m,
		queue:   make(chan string, queueSize),
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

// Announce queues text for delivery and returns immediately.
func (n *AsyncNotifier) Announce(text string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	select {
	case n.queue <- text:
	default:
		n.metrics.AnnouncementDropped()
		log.Warn().Str("text", text).Msg("Announcement queue full, dropping")
	}
}

// Close stops accepting announcements and waits for the queue to drain.
func (n *AsyncNotifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	<-n.done
}

func (n *AsyncNotifier) run() {
	defer close(n.done)

	for text := range n.queue {
		if err := n.deliver(text); err != nil {
			n.metrics.AnnouncementFailed()
			log.Warn().Err(err).Str("text", text).Msg("Announcement failed")
		}
	}
}

func (n *AsyncNotifier) deliver(text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
	defer cancel()
	return n.sink.Say(ctx, text)
}
