package repository

import (
	"context"
	"fmt"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/pkg/database"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CoachAllocationRepository interface {
	Create(ctx context.Context, allocation *entity.CoachAllocation) error
	FindByDate(ctx context.Context, day time.Time) (*entity.CoachAllocation, error)
	FindRange(ctx context.Context, from, to time.Time) ([]*entity.CoachAllocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type coachAllocationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCoachAllocationRepository(db database.PgxIface, log *zap.Logger) CoachAllocationRepository {
	return &coachAllocationRepository{
		db:  db,
		log: log.With(zap.String("repository", "coach_allocation")),
	}
}

const allocationColumns = `id, coach_id, date, notes, created_by, created_at, updated_at`

func scanAllocation(row pgx.Row) (*entity.CoachAllocation, error) {
	var allocation entity.CoachAllocation
	err := row.Scan(
		&allocation.ID,
		&allocation.CoachID,
		&allocation.Date,
		&allocation.Notes,
		&allocation.CreatedBy,
		&allocation.CreatedAt,
		&allocation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *coachAllocationRepository) Create(ctx context.Context, allocation *entity.CoachAllocation) error {
	query := `
		INSERT INTO coach_allocations (id, coach_id, date, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		allocation.ID,
		allocation.CoachID,
		utils.DayStart(allocation.Date),
		allocation.Notes,
		allocation.CreatedBy,
		allocation.CreatedAt,
		allocation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create coach allocation",
			zap.Error(err),
			zap.String("coach_id", allocation.CoachID.String()),
			zap.Time("date", allocation.Date),
		)
		return fmt.Errorf("create coach allocation on %s: %w", allocation.Date.Format("2006-01-02"), err)
	}

	return nil
}

func (r *coachAllocationRepository) FindByDate(ctx context.Context, day time.Time) (*entity.CoachAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM coach_allocations WHERE date >= $1 AND date < $2`

	allocation, err := scanAllocation(r.db.QueryRow(ctx, query, utils.DayStart(day), utils.DayEnd(day)))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coach allocation by date",
			zap.Error(err),
			zap.Time("date", day),
		)
		return nil, fmt.Errorf("find coach allocation on %s: %w", day.Format("2006-01-02"), err)
	}

	return allocation, nil
}

func (r *coachAllocationRepository) FindRange(ctx context.Context, from, to time.Time) ([]*entity.CoachAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM coach_allocations WHERE date >= $1 AND date <= $2 ORDER BY date`

	rows, err := r.db.Query(ctx, query, utils.DayStart(from), utils.DayStart(to))
	if err != nil {
		r.log.Error("Failed to list coach allocations", zap.Error(err))
		return nil, fmt.Errorf("list coach allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*entity.CoachAllocation
	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			r.log.Error("Failed to scan coach allocation row", zap.Error(err))
			return nil, fmt.Errorf("scan coach allocation row: %w", err)
		}
		allocations = append(allocations, allocation)
	}

	return allocations, nil
}

func (r *coachAllocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM coach_allocations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete coach allocation",
			zap.Error(err),
			zap.String("allocation_id", id.String()),
		)
		return fmt.Errorf("delete coach allocation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coach allocation %s not found", id.String())
	}

	return nil
}
