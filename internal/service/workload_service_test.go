package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository/memory"
)

func newWorkloadEnv(t *testing.T) (*WorkloadService, *memory.TicketRepository, *memory.WorkerRepository) {
	t.Helper()
	tickets := memory.NewTicketRepository()
	workers := memory.NewWorkerRepository()
	return NewWorkloadService(tickets, workers, nil, 0, zap.NewNop()), tickets, workers
}

func seedTicketWithStatus(t *testing.T, tickets *memory.TicketRepository, workerID, unitID string, status domain.TicketStatus) {
	t.Helper()
	ticket := &domain.Ticket{
		Title:          "load",
		Priority:       domain.TicketPriorityMedium,
		Status:         status,
		AssignedUnitID: &unitID,
		AssigneeID:     &workerID,
	}
	require.NoError(t, tickets.Create(context.Background(), ticket))
}

func TestWorkerWorkloadExcludesTerminalStatuses(t *testing.T) {
	svc, tickets, _ := newWorkloadEnv(t)

	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusAssigned)
	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusInProgress)
	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusReopened)
	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusResolved)
	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusClosed)
	seedTicketWithStatus(t, tickets, "w2", "u1", domain.TicketStatusAssigned)

	count, err := svc.WorkerWorkload(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUnitWorkload(t *testing.T) {
	svc, tickets, _ := newWorkloadEnv(t)

	seedTicketWithStatus(t, tickets, "w1", "u1", domain.TicketStatusAssigned)
	seedTicketWithStatus(t, tickets, "w2", "u1", domain.TicketStatusOpen)
	seedTicketWithStatus(t, tickets, "w3", "u1", domain.TicketStatusClosed)
	seedTicketWithStatus(t, tickets, "w4", "u2", domain.TicketStatusAssigned)

	count, err := svc.UnitWorkload(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLeastBusyWorker(t *testing.T) {
	svc, tickets, workers := newWorkloadEnv(t)
	unitID := "u1"

	loaded := &domain.Worker{ID: "a-loaded", Name: "loaded", UnitID: &unitID, Active: true}
	idle := &domain.Worker{ID: "b-idle", Name: "idle", UnitID: &unitID, Active: true}
	inactive := &domain.Worker{ID: "c-inactive", Name: "off", UnitID: &unitID, Active: false}
	require.NoError(t, workers.Create(context.Background(), loaded))
	require.NoError(t, workers.Create(context.Background(), idle))
	require.NoError(t, workers.Create(context.Background(), inactive))

	seedTicketWithStatus(t, tickets, loaded.ID, unitID, domain.TicketStatusAssigned)

	worker, err := svc.LeastBusyWorker(context.Background(), unitID)
	require.NoError(t, err)
	require.NotNil(t, worker)
	assert.Equal(t, idle.ID, worker.ID)
}

func TestLeastBusyWorkerTieBreaksOnLowestID(t *testing.T) {
	svc, tickets, workers := newWorkloadEnv(t)
	unitID := "u1"

	second := &domain.Worker{ID: "worker-b", Name: "b", UnitID: &unitID, Active: true}
	first := &domain.Worker{ID: "worker-a", Name: "a", UnitID: &unitID, Active: true}
	require.NoError(t, workers.Create(context.Background(), second))
	require.NoError(t, workers.Create(context.Background(), first))

	// Equal load for both.
	seedTicketWithStatus(t, tickets, first.ID, unitID, domain.TicketStatusAssigned)
	seedTicketWithStatus(t, tickets, second.ID, unitID, domain.TicketStatusAssigned)

	worker, err := svc.LeastBusyWorker(context.Background(), unitID)
	require.NoError(t, err)
	require.NotNil(t, worker)
	assert.Equal(t, "worker-a", worker.ID)
}

func TestLeastBusyWorkerEmptyUnit(t *testing.T) {
	svc, _, _ := newWorkloadEnv(t)

	worker, err := svc.LeastBusyWorker(context.Background(), "empty")
	require.NoError(t, err)
	assert.Nil(t, worker)
}

func TestTerminalStatusHelper(t *testing.T) {
	assert.True(t, domain.TicketStatusClosed.IsTerminal())
	assert.True(t, domain.TicketStatusResolved.IsTerminal())
	assert.False(t, domain.TicketStatusOpen.IsTerminal())
	assert.False(t, domain.TicketStatusAssigned.IsTerminal())
	assert.False(t, domain.TicketStatusInProgress.IsTerminal())
	assert.False(t, domain.TicketStatusReopened.IsTerminal())
}
