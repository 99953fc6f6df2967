package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository"
)

// WorkloadService answers load queries used for balancing. It is
// read-only over ticket and directory state; tickets in a terminal
// status (CLOSED, RESOLVED) never count.
type WorkloadService struct {
	tickets  repository.TicketRepository
	workers  repository.WorkerRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewWorkloadService creates the service. A nil cache client or a zero
// TTL disables caching; counts then always hit the ticket store.
func NewWorkloadService(tickets repository.TicketRepository, workers repository.WorkerRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *WorkloadService {
	return &WorkloadService{
		tickets:  tickets,
		workers:  workers,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// WorkerWorkload counts the worker's non-terminal tickets.
func (s *WorkloadService) WorkerWorkload(ctx context.Context, workerID string) (int, error) {
	return s.cachedCount(ctx, "workload:worker:"+workerID, func() (int, error) {
		return s.tickets.CountActiveByAssignee(ctx, workerID)
	})
}

// UnitWorkload counts the unit's non-terminal tickets.
func (s *WorkloadService) UnitWorkload(ctx context.Context, unitID string) (int, error) {
	return s.cachedCount(ctx, "workload:unit:"+unitID, func() (int, error) {
		return s.tickets.CountActiveByUnit(ctx, unitID)
	})
}

// LeastBusyWorker selects the active worker of the unit with the
// fewest non-terminal tickets. Ties break to the lowest worker id via
// the directory's id-ordered listing. Returns nil when the unit has no
// active workers.
func (s *WorkloadService) LeastBusyWorker(ctx context.Context, unitID string) (*domain.Worker, error) {
	workers, err := s.workers.ListActiveByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, nil
	}

	var best *domain.Worker
	bestLoad := 0
	for i := range workers {
		load, err := s.WorkerWorkload(ctx, workers[i].ID)
		if err != nil {
			return nil, err
		}
		if best == nil || load < bestLoad {
			best = &workers[i]
			bestLoad = load
		}
	}
	return best, nil
}

// cachedCount reads the count through the optional Redis cache. Cache
// failures degrade to the ticket store rather than failing the query.
func (s *WorkloadService) cachedCount(ctx context.Context, key string, load func() (int, error)) (int, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			if count, convErr := strconv.Atoi(raw); convErr == nil {
				return count, nil
			}
		}
	}

	count, err := load()
	if err != nil {
		return 0, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, fmt.Sprintf("%d", count), s.cacheTTL).Err(); err != nil {
			s.logger.Debug("workload cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return count, nil
}
