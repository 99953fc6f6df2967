package dto

import (
	"time"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// ClaimRequest payload.
type ClaimRequest struct {
	WorkerID string `json:"worker_id"`
}

// ReassignRequest payload.
type ReassignRequest struct {
	WorkerID string `json:"worker_id"`
	Reason   string `json:"reason"`
}

// TransferRequest payload.
type TransferRequest struct {
	UnitID string `json:"unit_id"`
	Reason string `json:"reason"`
}

// TransferAndAssignRequest payload.
type TransferAndAssignRequest struct {
	UnitID   string `json:"unit_id"`
	WorkerID string `json:"worker_id"`
	Reason   string `json:"reason"`
}

// TicketResponse mirrors the ticket's assignment-relevant state.
type TicketResponse struct {
	ID                 string                `json:"id"`
	Title              string                `json:"title"`
	Category           string                `json:"category"`
	Priority           domain.TicketPriority `json:"priority"`
	Status             domain.TicketStatus   `json:"status"`
	AssignedUnitID     *string               `json:"assigned_unit_id"`
	AssigneeID         *string               `json:"assignee_id"`
	PreviousAssigneeID *string               `json:"previous_assignee_id"`
	ReassignmentCount  int                   `json:"reassignment_count"`
	CreatedAt          time.Time             `json:"created_at"`
	AssignedAt         *time.Time            `json:"assigned_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// UnitResponse describes an organizational unit.
type UnitResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// WorkerResponse describes a directory worker.
type WorkerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitID    *string `json:"unit_id"`
	Specialty string  `json:"specialty,omitempty"`
	Active    bool    `json:"active"`
}

// WorkloadResponse carries a single load count.
type WorkloadResponse struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// FromTicket converts a domain ticket.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		Title:              ticket.Title,
		Category:           ticket.Category,
		Priority:           ticket.Priority,
		Status:             ticket.Status,
		AssignedUnitID:     ticket.AssignedUnitID,
		AssigneeID:         ticket.AssigneeID,
		PreviousAssigneeID: ticket.PreviousAssigneeID,
		ReassignmentCount:  ticket.ReassignmentCount,
		CreatedAt:          ticket.CreatedAt,
		AssignedAt:         ticket.AssignedAt,
		UpdatedAt:          ticket.UpdatedAt,
	}
}

// FromUnit converts a domain unit.
func FromUnit(unit *domain.OrgUnit) UnitResponse {
	return UnitResponse{
		ID:     unit.ID,
		Code:   unit.Code,
		Name:   unit.Name,
		Active: unit.Active,
	}
}

// FromWorker converts a domain worker.
func FromWorker(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:        worker.ID,
		Name:      worker.Name,
		UnitID:    worker.UnitID,
		Specialty: worker.Specialty,
		Active:    worker.Active,
	}
}
