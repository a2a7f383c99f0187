package events

import (
	"context"
	"sync"
	"time"

	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// Handler processes one published event. Handler errors are logged and
// never propagated back to the publisher: a failed side effect (e.g. a
// notification email) must not roll back the domain write that caused it.
type Handler func(ctx context.Context, event Event) error

// Bus is the publish/subscribe contract used by the domain services
type Bus interface {
	Subscribe(topic Topic, handler Handler)
	Publish(ctx context.Context, topic Topic, payload any)
}

// InMemoryBus is a synchronous in-process bus. It is sufficient for a
// single-instance deployment; handlers run on the publisher's goroutine
// so tests can assert on their effects without synchronization.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// NewInMemoryBus creates an empty bus
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic
func (b *InMemoryBus) Subscribe(topic Topic, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish delivers the payload to every handler subscribed to the topic
func (b *InMemoryBus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	event := Event{Topic: topic, OccurredAt: time.Now(), Payload: payload}
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			logger.Error().
				Err(err).
				Str("topic", string(topic)).
				Msg("Event handler failed")
		}
	}
}
