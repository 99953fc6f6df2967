package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketRouted      EventType = "ticket_routed"
	EventTicketClaimed     EventType = "ticket_claimed"
	EventTicketReassigned  EventType = "ticket_reassigned"
	EventTicketTransferred EventType = "ticket_transferred"
)

// Event represents a domain event emitted by the assignment engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketRoutedPayload payload.
type TicketRoutedPayload struct {
	UnitID   string `json:"unit_id"`
	UnitCode string `json:"unit_code"`
}

// TicketClaimedPayload payload.
type TicketClaimedPayload struct {
	AssigneeID string  `json:"assignee_id"`
	UnitID     *string `json:"unit_id,omitempty"`
}

// TicketReassignedPayload payload.
type TicketReassignedPayload struct {
	PreviousAssigneeID *string `json:"previous_assignee_id,omitempty"`
	AssigneeID         string  `json:"assignee_id"`
	ReassignmentCount  int     `json:"reassignment_count"`
	Reason             string  `json:"reason,omitempty"`
}

// TicketTransferredPayload payload.
type TicketTransferredPayload struct {
	OldUnitID          *string `json:"old_unit_id,omitempty"`
	NewUnitID          string  `json:"new_unit_id"`
	PreviousAssigneeID *string `json:"previous_assignee_id,omitempty"`
	AssigneeID         *string `json:"assignee_id,omitempty"`
	Reason             string  `json:"reason,omitempty"`
}
