package repository

import (
	"context"
	"fmt"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PoolStatusRepository interface {
	Create(ctx context.Context, status *entity.PoolStatus) error
	// FindEffectiveOverride returns the newest manual override that has not
	// expired, or nil when no override is in force
	FindEffectiveOverride(ctx context.Context, now time.Time) (*entity.PoolStatus, error)
	ExpireActiveOverrides(ctx context.Context, now time.Time) error
}

type poolStatusRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPoolStatusRepository(db database.PgxIface, log *zap.Logger) PoolStatusRepository {
	return &poolStatusRepository{
		db:  db,
		log: log.With(zap.String("repository", "pool_status")),
	}
}

func (r *poolStatusRepository) Create(ctx context.Context, status *entity.PoolStatus) error {
	query := `
		INSERT INTO pool_statuses (id, status, message, manual_override, effective_until, maintenance_id, set_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		status.ID,
		status.Status,
		status.Message,
		status.ManualOverride,
		status.EffectiveUntil,
		status.MaintenanceID,
		status.SetBy,
		status.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pool status",
			zap.Error(err),
			zap.String("status", string(status.Status)),
		)
		return fmt.Errorf("create pool status: %w", err)
	}

	return nil
}

func (r *poolStatusRepository) FindEffectiveOverride(ctx context.Context, now time.Time) (*entity.PoolStatus, error) {
	query := `
		SELECT id, status, message, manual_override, effective_until, maintenance_id, set_by, created_at
		FROM pool_statuses
		WHERE manual_override = true AND (effective_until IS NULL OR effective_until > $1)
		ORDER BY created_at DESC
		LIMIT 1
	`

	var status entity.PoolStatus
	err := r.db.QueryRow(ctx, query, now).Scan(
		&status.ID,
		&status.Status,
		&status.Message,
		&status.ManualOverride,
		&status.EffectiveUntil,
		&status.MaintenanceID,
		&status.SetBy,
		&status.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find effective pool status override", zap.Error(err))
		return nil, fmt.Errorf("find effective pool status override: %w", err)
	}

	return &status, nil
}

func (r *poolStatusRepository) ExpireActiveOverrides(ctx context.Context, now time.Time) error {
	query := `
		UPDATE pool_statuses
		SET effective_until = $1
		WHERE manual_override = true AND (effective_until IS NULL OR effective_until > $1)
	`

	_, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to expire pool status overrides", zap.Error(err))
		return fmt.Errorf("expire pool status overrides: %w", err)
	}

	return nil
}
