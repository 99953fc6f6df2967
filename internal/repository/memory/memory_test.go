package memory

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository"
)

func TestTicketUpdateVersionCheck(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()

	ticket := &domain.Ticket{Title: "t", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow}
	require.NoError(t, repo.Create(ctx, ticket))
	assert.Equal(t, int64(1), ticket.Version)

	fresh, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	stale, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)

	fresh.Title = "updated"
	require.NoError(t, repo.Update(ctx, fresh))
	assert.Equal(t, int64(2), fresh.Version)

	stale.Title = "stale write"
	err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	stored, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", stored.Title)
}

func TestTicketUpdateMissingRow(t *testing.T) {
	repo := NewTicketRepository()
	err := repo.Update(context.Background(), &domain.Ticket{ID: "missing", Version: 1})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestWorkerListOrderedByID(t *testing.T) {
	repo := NewWorkerRepository()
	ctx := context.Background()
	unitID := "u1"

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, &domain.Worker{ID: id, Name: id, UnitID: &unitID, Active: true}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Worker{ID: "z", Name: "z", UnitID: &unitID, Active: false}))

	workers, err := repo.ListActiveByUnit(ctx, unitID)
	require.NoError(t, err)
	require.Len(t, workers, 3)
	assert.Equal(t, "a", workers[0].ID)
	assert.Equal(t, "b", workers[1].ID)
	assert.Equal(t, "c", workers[2].ID)
}

func TestUnitLookupByCode(t *testing.T) {
	repo := NewUnitRepository()
	ctx := context.Background()

	unit := &domain.OrgUnit{Code: "IT", Name: "IT", Active: true}
	require.NoError(t, repo.Create(ctx, unit))

	found, err := repo.GetByCode(ctx, "IT")
	require.NoError(t, err)
	assert.Equal(t, unit.ID, found.ID)

	_, err = repo.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
