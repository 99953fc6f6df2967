package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTicketClaimed, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventTicketTransferred, func(ctx context.Context, event Event) error {
		t.Fatal("handler for other event type must not fire")
		return nil
	})

	event := Event{
		ID:        "e1",
		Type:      EventTicketClaimed,
		TicketID:  "t1",
		Timestamp: time.Now(),
		Payload:   TicketClaimedPayload{AssigneeID: "w1"},
	}
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.Len(t, received, 1)
	assert.Equal(t, "t1", received[0].TicketID)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	sentinel := errors.New("handler failed")

	var secondRan bool
	dispatcher.Subscribe(EventTicketRouted, func(ctx context.Context, event Event) error {
		return sentinel
	})
	dispatcher.Subscribe(EventTicketRouted, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketRouted})
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, secondRan)
}
