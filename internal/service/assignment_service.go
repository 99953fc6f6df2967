package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/events"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	"github.com/spec-kit/ticket-assignment/internal/routing"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AssignmentService owns the ticket assignment state machine: routing,
// claim, internal reassignment and cross-unit transfer. Every operation
// validates all preconditions before mutating and persists the ticket
// with a single version-checked write, so concurrent operations on the
// same ticket resolve to one winner and a CONFLICT for the rest.
type AssignmentService struct {
	tickets    repository.TicketRepository
	units      repository.UnitRepository
	workers    repository.WorkerRepository
	classifier *routing.Classifier
	workload   *WorkloadService
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TicketRepo repository.TicketRepository
	UnitRepo   repository.UnitRepository
	WorkerRepo repository.WorkerRepository
	Classifier *routing.Classifier
	Workload   *WorkloadService
	Dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		units:      deps.UnitRepo,
		workers:    deps.WorkerRepo,
		classifier: deps.Classifier,
		workload:   deps.Workload,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// RouteToUnit classifies the ticket's text and attaches the resolved
// unit, leaving the ticket open for claim. Refused once a ticket has an
// assignee: moving an assigned ticket's unit would strand the assignee
// outside it, so that move goes through TransferToUnit instead.
func (s *AssignmentService) RouteToUnit(ctx context.Context, ticketID string) (*domain.OrgUnit, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.AssigneeID != nil {
		return nil, apperrors.NewAlreadyAssigned(ticket.ID, ticket.AssigneeID)
	}
	unit, err := s.resolveUnitByCode(ctx, s.classifier.Classify(ticket))
	if err != nil {
		return nil, err
	}

	ticket.AssignedUnitID = &unit.ID
	ticket.Status = domain.TicketStatusOpen
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketRouted, ticket.ID, events.TicketRoutedPayload{
		UnitID:   unit.ID,
		UnitCode: unit.Code,
	})
	return unit, nil
}

// AutoRouteAndAssign routes the ticket and hands it to the least busy
// active worker of the resolved unit. When the unit has no available
// worker the ticket stays open with a unit attached; that is a valid
// resting state, not an error.
func (s *AssignmentService) AutoRouteAndAssign(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.AssigneeID != nil {
		return nil, apperrors.NewAlreadyAssigned(ticket.ID, ticket.AssigneeID)
	}
	unit, err := s.resolveUnitByCode(ctx, s.classifier.Classify(ticket))
	if err != nil {
		return nil, err
	}

	ticket.AssignedUnitID = &unit.ID
	ticket.Status = domain.TicketStatusOpen

	worker, err := s.workload.LeastBusyWorker(ctx, unit.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if worker != nil {
		s.attachAssignee(ticket, worker.ID)
	}
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketRouted, ticket.ID, events.TicketRoutedPayload{
		UnitID:   unit.ID,
		UnitCode: unit.Code,
	})
	if worker != nil {
		s.publish(ctx, events.EventTicketClaimed, ticket.ID, events.TicketClaimedPayload{
			AssigneeID: worker.ID,
			UnitID:     ticket.AssignedUnitID,
		})
	}
	return ticket, nil
}

// Claim lets a worker take an unassigned ticket. A routed ticket can
// only be claimed by a worker of its unit.
func (s *AssignmentService) Claim(ctx context.Context, ticketID, workerID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.AssigneeID != nil {
		return nil, apperrors.NewAlreadyAssigned(ticket.ID, ticket.AssigneeID)
	}
	worker, err := s.loadActiveWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if ticket.AssignedUnitID != nil && !worker.InUnit(*ticket.AssignedUnitID) {
		return nil, apperrors.NewUnitMismatch(ticket.ID, worker.ID)
	}

	s.attachAssignee(ticket, worker.ID)
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketClaimed, ticket.ID, events.TicketClaimedPayload{
		AssigneeID: worker.ID,
		UnitID:     ticket.AssignedUnitID,
	})
	return ticket, nil
}

// ReassignInternally moves the ticket to another worker of the same
// unit. Refused once the reassignment counter hits the limit; moves
// across units must go through TransferToUnit.
func (s *AssignmentService) ReassignInternally(ctx context.Context, ticketID, newWorkerID, reason string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.ReassignmentCount >= domain.ReassignmentLimit {
		return nil, apperrors.NewReassignLimitExceeded(ticket.ID, ticket.ReassignmentCount)
	}
	worker, err := s.loadActiveWorker(ctx, newWorkerID)
	if err != nil {
		return nil, err
	}

	if ticket.AssigneeID != nil {
		current, err := s.workers.GetByID(ctx, *ticket.AssigneeID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		if current != nil && current.UnitID != nil && !worker.InUnit(*current.UnitID) {
			return nil, apperrors.NewCrossUnitNotAllowed(ticket.ID, worker.ID)
		}
	} else if ticket.AssignedUnitID != nil && !worker.InUnit(*ticket.AssignedUnitID) {
		return nil, apperrors.NewCrossUnitNotAllowed(ticket.ID, worker.ID)
	}

	previous := ticket.AssigneeID
	ticket.PreviousAssigneeID = previous
	s.attachAssignee(ticket, worker.ID)
	ticket.ReassignmentCount++
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketReassigned, ticket.ID, events.TicketReassignedPayload{
		PreviousAssigneeID: previous,
		AssigneeID:         worker.ID,
		ReassignmentCount:  ticket.ReassignmentCount,
		Reason:             reason,
	})
	return ticket, nil
}

// TransferToUnit moves the ticket to another unit, clearing the current
// assignee and reopening it for claim. The reassignment counter is
// incremented but transfers themselves are never capped.
func (s *AssignmentService) TransferToUnit(ctx context.Context, ticketID, newUnitID, reason string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	unit, err := s.loadActiveUnit(ctx, newUnitID)
	if err != nil {
		return nil, err
	}
	if ticket.AssignedUnitID != nil && *ticket.AssignedUnitID == unit.ID {
		return nil, apperrors.NewSameUnitTransfer(ticket.ID, unit.ID)
	}

	oldUnit := ticket.AssignedUnitID
	previous := ticket.AssigneeID
	s.applyTransfer(ticket, unit.ID)
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketTransferred, ticket.ID, events.TicketTransferredPayload{
		OldUnitID:          oldUnit,
		NewUnitID:          unit.ID,
		PreviousAssigneeID: previous,
		Reason:             reason,
	})
	return ticket, nil
}

// TransferAndAssign transfers the ticket and hands it directly to a
// named worker of the target unit, as one atomic write.
func (s *AssignmentService) TransferAndAssign(ctx context.Context, ticketID, newUnitID, newWorkerID, reason string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	unit, err := s.loadActiveUnit(ctx, newUnitID)
	if err != nil {
		return nil, err
	}
	if ticket.AssignedUnitID != nil && *ticket.AssignedUnitID == unit.ID {
		return nil, apperrors.NewSameUnitTransfer(ticket.ID, unit.ID)
	}
	worker, err := s.loadActiveWorker(ctx, newWorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.InUnit(unit.ID) {
		return nil, apperrors.NewWorkerNotInTargetUnit(worker.ID, unit.ID)
	}

	oldUnit := ticket.AssignedUnitID
	previous := ticket.AssigneeID
	s.applyTransfer(ticket, unit.ID)
	s.attachAssignee(ticket, worker.ID)
	if err := s.saveTicket(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketTransferred, ticket.ID, events.TicketTransferredPayload{
		OldUnitID:          oldUnit,
		NewUnitID:          unit.ID,
		PreviousAssigneeID: previous,
		AssigneeID:         ticket.AssigneeID,
		Reason:             reason,
	})
	return ticket, nil
}

// attachAssignee sets the current assignee and marks the ticket
// assigned. PreviousAssigneeID is managed by the callers that rotate it.
func (s *AssignmentService) attachAssignee(ticket *domain.Ticket, workerID string) {
	assignedAt := s.now()
	ticket.AssigneeID = &workerID
	ticket.AssignedAt = &assignedAt
	ticket.Status = domain.TicketStatusAssigned
}

// applyTransfer records the outgoing assignee in the one-step history
// slot, clears the assignment and reopens the ticket in the new unit.
func (s *AssignmentService) applyTransfer(ticket *domain.Ticket, unitID string) {
	ticket.PreviousAssigneeID = ticket.AssigneeID
	ticket.AssigneeID = nil
	ticket.AssignedAt = nil
	ticket.AssignedUnitID = &unitID
	ticket.Status = domain.TicketStatusOpen
	ticket.ReassignmentCount++
}

func (s *AssignmentService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *AssignmentService) loadActiveWorker(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}
	if !worker.Active {
		return nil, apperrors.NewConflict("worker inactive", map[string]any{"worker_id": workerID})
	}
	return worker, nil
}

func (s *AssignmentService) loadActiveUnit(ctx context.Context, unitID string) (*domain.OrgUnit, error) {
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("unit", map[string]any{"unit_id": unitID})
		}
		return nil, apperrors.MapError(err)
	}
	if !unit.Active {
		return nil, apperrors.NewConflict("unit inactive", map[string]any{"unit_id": unitID})
	}
	return unit, nil
}

func (s *AssignmentService) resolveUnitByCode(ctx context.Context, code string) (*domain.OrgUnit, error) {
	unit, err := s.units.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("unit", map[string]any{"unit_code": code})
		}
		return nil, apperrors.MapError(err)
	}
	if !unit.Active {
		return nil, apperrors.NewNotFound("unit", map[string]any{"unit_code": code})
	}
	return unit, nil
}

// saveTicket persists the mutation; a stale version surfaces as a
// CONFLICT the caller may retry.
func (s *AssignmentService) saveTicket(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return apperrors.NewConflict("ticket modified concurrently", map[string]any{"ticket_id": ticket.ID})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, ticketID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: s.now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
