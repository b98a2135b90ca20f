package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pool-booking/internal/data/entity"
	"pool-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, report *entity.Maintenance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error)
	FindAll(ctx context.Context, status entity.MaintenanceStatus) ([]*entity.Maintenance, error)
	Update(ctx context.Context, report *entity.Maintenance) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MaintenanceStatus, reviewedBy *uuid.UUID) error
}

type maintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaintenanceRepository(db database.PgxIface, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

const maintenanceColumns = `id, type, priority, status, scheduled_date, pool_impact, details, notes, reported_by, reviewed_by, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*entity.Maintenance, error) {
	var report entity.Maintenance
	var details []byte
	err := row.Scan(
		&report.ID,
		&report.Type,
		&report.Priority,
		&report.Status,
		&report.ScheduledDate,
		&report.PoolImpact,
		&details,
		&report.Notes,
		&report.ReportedBy,
		&report.ReviewedBy,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &report.Details); err != nil {
			return nil, fmt.Errorf("decode maintenance details: %w", err)
		}
	}

	return &report, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, report *entity.Maintenance) error {
	details, err := json.Marshal(report.Details)
	if err != nil {
		return fmt.Errorf("encode maintenance details: %w", err)
	}

	query := `
		INSERT INTO maintenance_reports (id, type, priority, status, scheduled_date, pool_impact, details, notes, reported_by, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.Exec(ctx, query,
		report.ID,
		report.Type,
		report.Priority,
		report.Status,
		report.ScheduledDate,
		report.PoolImpact,
		details,
		report.Notes,
		report.ReportedBy,
		report.ReviewedBy,
		report.CreatedAt,
		report.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create maintenance report",
			zap.Error(err),
			zap.String("type", report.Type),
		)
		return fmt.Errorf("create maintenance report: %w", err)
	}

	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_reports WHERE id = $1`

	report, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance report",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
		)
		return nil, fmt.Errorf("find maintenance report %s: %w", id.String(), err)
	}

	return report, nil
}

func (r *maintenanceRepository) FindAll(ctx context.Context, status entity.MaintenanceStatus) ([]*entity.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_reports`
	args := []any{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list maintenance reports",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list maintenance reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.Maintenance
	for rows.Next() {
		report, err := scanMaintenance(rows)
		if err != nil {
			r.log.Error("Failed to scan maintenance row", zap.Error(err))
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, report *entity.Maintenance) error {
	details, err := json.Marshal(report.Details)
	if err != nil {
		return fmt.Errorf("encode maintenance details: %w", err)
	}

	query := `
		UPDATE maintenance_reports
		SET type = $2, priority = $3, status = $4, scheduled_date = $5, pool_impact = $6,
		    details = $7, notes = $8, reviewed_by = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		report.ID,
		report.Type,
		report.Priority,
		report.Status,
		report.ScheduledDate,
		report.PoolImpact,
		details,
		report.Notes,
		report.ReviewedBy,
		report.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update maintenance report",
			zap.Error(err),
			zap.String("maintenance_id", report.ID.String()),
		)
		return fmt.Errorf("update maintenance report %s: %w", report.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance report %s not found", report.ID.String())
	}

	return nil
}

func (r *maintenanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MaintenanceStatus, reviewedBy *uuid.UUID) error {
	query := `UPDATE maintenance_reports SET status = $2, reviewed_by = COALESCE($3, reviewed_by), updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, reviewedBy)
	if err != nil {
		r.log.Error("Failed to update maintenance status",
			zap.Error(err),
			zap.String("maintenance_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update maintenance %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance report %s not found", id.String())
	}

	return nil
}
