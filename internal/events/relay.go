package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Relay forwards assignment events to a Redis channel for external
// collaborators (notification delivery, reporting). Delivery and retry
// are theirs; the relay only hands events off.
type Relay struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRelay builds a relay publishing to the given channel. A nil
// client disables relaying.
func NewRelay(client *redis.Client, channel string, logger *zap.Logger) *Relay {
	return &Relay{client: client, channel: channel, logger: logger}
}

// RegisterHandlers subscribes the relay to every assignment event type.
func (r *Relay) RegisterHandlers(dispatcher Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []EventType{
		EventTicketRouted,
		EventTicketClaimed,
		EventTicketReassigned,
		EventTicketTransferred,
	} {
		dispatcher.Subscribe(eventType, r.handle)
	}
}

func (r *Relay) handle(ctx context.Context, event Event) error {
	r.logger.Info("assignment event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID))

	if r.client == nil || r.channel == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		// Relay failures must not fail the assignment operation.
		r.logger.Warn("event relay publish failed", zap.Error(err))
	}
	return nil
}
