package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Kind identifies which entity family changed
type Kind string

const (
	KindAccount Kind = "account"
	KindPost    Kind = "post"
	KindPoll    Kind = "poll"
)

// Op identifies what happened to the entity
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
)

// Change describes one entity mutation. Consumers (cache layers, audit
// logging) subscribe to these instead of invalidating by endpoint string.
type Change struct {
	Kind Kind
	ID   int64
	Op   Op
}

// Bus is an in-process fan-out of entity change notifications. Publishing
// never blocks the mutation path: a subscriber with a full channel misses
// the notification and the drop is logged.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Change
	logger      zerolog.Logger
}

// NewBus creates a new change notification bus
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a new subscriber and returns its channel. The buffer
// absorbs bursts; consumers that fall behind lose notifications rather than
// stalling writers.
func (b *Bus) Subscribe(buffer int) <-chan Change {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Publish delivers a change to all subscribers without blocking
func (b *Bus) Publish(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- change:
		default:
			b.logger.Warn().
				Str("kind", string(change.Kind)).
				Int64("id", change.ID).
				Str("op", string(change.Op)).
				Msg("Change notification dropped, subscriber buffer full")
		}
	}
}
