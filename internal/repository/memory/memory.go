// Package memory provides in-memory repository implementations with the
// same contracts as the postgres ones, including the optimistic version
// check on ticket updates. Used by tests and local experimentation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository"
)

// TicketRepository is a mutex-guarded in-memory ticket store.
type TicketRepository struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

// NewTicketRepository creates an empty store.
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	now := time.Now()
	ticket.Version = 1
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != ticket.Version {
		return repository.ErrVersionConflict
	}
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (r *TicketRepository) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, t := range r.tickets {
		if filter.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.AssigneeID) {
			continue
		}
		if filter.AssignedUnitID != nil && (t.AssignedUnitID == nil || *t.AssignedUnitID != *filter.AssignedUnitID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, t.Priority) {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *TicketRepository) CountActiveByAssignee(ctx context.Context, workerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.tickets {
		if t.AssigneeID != nil && *t.AssigneeID == workerID && !t.Status.IsTerminal() {
			count++
		}
	}
	return count, nil
}

func (r *TicketRepository) CountActiveByUnit(ctx context.Context, unitID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.tickets {
		if t.AssignedUnitID != nil && *t.AssignedUnitID == unitID && !t.Status.IsTerminal() {
			count++
		}
	}
	return count, nil
}

// UnitRepository is an in-memory unit directory.
type UnitRepository struct {
	mu    sync.Mutex
	units map[string]domain.OrgUnit
}

// NewUnitRepository creates an empty directory.
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{units: make(map[string]domain.OrgUnit)}
}

func (r *UnitRepository) Create(ctx context.Context, unit *domain.OrgUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	now := time.Now()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	r.units[unit.ID] = *unit
	return nil
}

func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.units[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (r *UnitRepository) GetByCode(ctx context.Context, code string) (*domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, unit := range r.units {
		if unit.Code == code {
			out := unit
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UnitRepository) ListActive(ctx context.Context) ([]domain.OrgUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.OrgUnit
	for _, unit := range r.units {
		if unit.Active {
			result = append(result, unit)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// WorkerRepository is an in-memory worker directory.
type WorkerRepository struct {
	mu      sync.Mutex
	workers map[string]domain.Worker
}

// NewWorkerRepository creates an empty directory.
func NewWorkerRepository() *WorkerRepository {
	return &WorkerRepository{workers: make(map[string]domain.Worker)}
}

func (r *WorkerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if worker.ID == "" {
		worker.ID = uuid.NewString()
	}
	now := time.Now()
	worker.CreatedAt = now
	worker.UpdatedAt = now
	r.workers[worker.ID] = *worker
	return nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := stored
	return &out, nil
}

func (r *WorkerRepository) ListActiveByUnit(ctx context.Context, unitID string) ([]domain.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Worker
	for _, worker := range r.workers {
		if worker.Active && worker.UnitID != nil && *worker.UnitID == unitID {
			result = append(result, worker)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func containsStatus(list []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.TicketPriority, priority domain.TicketPriority) bool {
	for _, p := range list {
		if p == priority {
			return true
		}
	}
	return false
}

var (
	_ repository.TicketRepository = (*TicketRepository)(nil)
	_ repository.UnitRepository   = (*UnitRepository)(nil)
	_ repository.WorkerRepository = (*WorkerRepository)(nil)
)
