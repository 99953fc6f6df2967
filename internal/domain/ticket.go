package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The assignment
// engine only ever writes OPEN and ASSIGNED; the remaining states are
// driven by the ticket-lifecycle collaborator and merely observed here.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusAssigned   TicketStatus = "ASSIGNED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusReopened   TicketStatus = "REOPENED"
)

// IsTerminal reports whether a ticket no longer counts toward workload.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates urgency, ordered LOW < MEDIUM < HIGH < URGENT.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Rank returns the priority's position in the ordering, 0 for LOW.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityMedium:
		return 1
	case TicketPriorityHigh:
		return 2
	case TicketPriorityUrgent:
		return 3
	default:
		return 0
	}
}

// ReassignmentLimit caps internal reassignments per ticket. Transfers
// increment the same counter but are not capped.
const ReassignmentLimit = 3

// Ticket is the aggregate for support requests. PreviousAssigneeID keeps
// a one-step assignment history; Version backs the optimistic
// concurrency check on updates.
type Ticket struct {
	ID                 string
	Title              string
	Description        string
	Category           string
	Priority           TicketPriority
	Status             TicketStatus
	AssignedUnitID     *string
	AssigneeID         *string
	PreviousAssigneeID *string
	ReassignmentCount  int
	Version            int64
	CreatedAt          time.Time
	AssignedAt         *time.Time
	UpdatedAt          time.Time
}
