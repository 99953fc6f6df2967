package worker

import (
	"github.com/spec-kit/ticket-assignment/internal/events"
)

// StartEventRelay registers the Redis relay on the dispatcher so
// assignment events reach the external notification collaborator.
func StartEventRelay(relay *events.Relay, dispatcher events.Dispatcher) {
	if relay == nil {
		return
	}
	relay.RegisterHandlers(dispatcher)
}
