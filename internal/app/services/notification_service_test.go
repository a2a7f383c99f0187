package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
)

// recordingBus captures subscriptions so tests can assert on the wiring
// without a database behind the handlers
type recordingBus struct {
	handlers map[events.Topic][]events.Handler
}

func newRecordingBus() *recordingBus {
	return &recordingBus{handlers: make(map[events.Topic][]events.Handler)}
}

func (b *recordingBus) Subscribe(topic events.Topic, handler events.Handler) {
	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *recordingBus) Publish(ctx context.Context, topic events.Topic, payload any) {
	for _, handler := range b.handlers[topic] {
		_ = handler(ctx, events.Event{Topic: topic, Payload: payload})
	}
}

func TestNotificationServiceSubscribesToEveryDomainTopic(t *testing.T) {
	bus := newRecordingBus()
	NewNotificationService(nil, nil, nil).SubscribeTo(bus)

	topics := []events.Topic{
		events.TopicCreditValidated,
		events.TopicCreditRejected,
		events.TopicAbsencesIncreased,
		events.TopicAbsencesCritical,
		events.TopicSanctionAdded,
		events.TopicSanctionRemoved,
		events.TopicEventCreated,
		events.TopicEventRescheduled,
		events.TopicEventCancelled,
		events.TopicRecommendationAdded,
	}
	for _, topic := range topics {
		assert.NotEmpty(t, bus.handlers[topic], "no handler for %s", topic)
	}
}

func TestEventCreatedHandlerRejectsUnexpectedPayload(t *testing.T) {
	bus := newRecordingBus()
	NewNotificationService(nil, nil, nil).SubscribeTo(bus)

	handlers := bus.handlers[events.TopicEventCreated]
	require.Len(t, handlers, 1)

	err := handlers[0](context.Background(), events.Event{
		Topic:   events.TopicEventCreated,
		Payload: "not an event payload",
	})
	assert.Error(t, err)
}
