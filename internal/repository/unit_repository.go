package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// UnitRepository is the read side of the unit directory. Create exists
// for provisioning and test fixtures; the assignment core never writes
// directory data.
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.OrgUnit) error
	GetByID(ctx context.Context, id string) (*domain.OrgUnit, error)
	GetByCode(ctx context.Context, code string) (*domain.OrgUnit, error)
	ListActive(ctx context.Context) ([]domain.OrgUnit, error)
}

type unitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository builds the repository.
func NewUnitRepository(pool *pgxpool.Pool) UnitRepository {
	return &unitRepository{pool: pool}
}

func (r *unitRepository) Create(ctx context.Context, unit *domain.OrgUnit) error {
	const query = `
        INSERT INTO org_units (code, name, active_flag)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		unit.Code,
		unit.Name,
		unit.Active,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
}

func (r *unitRepository) GetByID(ctx context.Context, id string) (*domain.OrgUnit, error) {
	const query = `
        SELECT id, code, name, active_flag, created_at, updated_at
        FROM org_units WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *unitRepository) GetByCode(ctx context.Context, code string) (*domain.OrgUnit, error) {
	const query = `
        SELECT id, code, name, active_flag, created_at, updated_at
        FROM org_units WHERE code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *unitRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.OrgUnit, error) {
	var unit domain.OrgUnit
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&unit.ID,
		&unit.Code,
		&unit.Name,
		&unit.Active,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) ListActive(ctx context.Context) ([]domain.OrgUnit, error) {
	const query = `
        SELECT id, code, name, active_flag, created_at, updated_at
        FROM org_units WHERE active_flag = TRUE ORDER BY code ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrgUnit
	for rows.Next() {
		var unit domain.OrgUnit
		if err := rows.Scan(&unit.ID, &unit.Code, &unit.Name, &unit.Active, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	return result, rows.Err()
}
