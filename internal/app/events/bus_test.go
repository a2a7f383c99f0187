package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus()

	var received []Event
	bus.Subscribe(TopicCreditValidated, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	bus.Subscribe(TopicCreditValidated, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	bus.Publish(context.Background(), TopicCreditValidated, CreditReviewed{OwnerUserID: 7})

	require.Len(t, received, 2)
	assert.Equal(t, TopicCreditValidated, received[0].Topic)
	payload, ok := received[0].Payload.(CreditReviewed)
	require.True(t, ok)
	assert.Equal(t, int64(7), payload.OwnerUserID)
	assert.False(t, received[0].OccurredAt.IsZero())
}

func TestInMemoryBusTopicIsolation(t *testing.T) {
	bus := NewInMemoryBus()

	called := 0
	bus.Subscribe(TopicAbsencesCritical, func(ctx context.Context, event Event) error {
		called++
		return nil
	})

	bus.Publish(context.Background(), TopicAbsencesIncreased, AbsencesChanged{Delta: 2})
	assert.Zero(t, called, "handler must not see other topics")

	bus.Publish(context.Background(), TopicAbsencesCritical, AbsencesChanged{Critical: true})
	assert.Equal(t, 1, called)
}

func TestInMemoryBusHandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryBus()

	var order []string
	bus.Subscribe(TopicEventCancelled, func(ctx context.Context, event Event) error {
		order = append(order, "first")
		return errors.New("smtp unavailable")
	})
	bus.Subscribe(TopicEventCancelled, func(ctx context.Context, event Event) error {
		order = append(order, "second")
		return nil
	})

	bus.Publish(context.Background(), TopicEventCancelled, EventLifecycle{})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInMemoryBusNoSubscribers(t *testing.T) {
	bus := NewInMemoryBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), TopicSanctionAdded, SanctionChanged{})
	})
}
