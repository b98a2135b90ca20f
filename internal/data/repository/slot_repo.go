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

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	CreateBatch(ctx context.Context, slots []*entity.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindByDate(ctx context.Context, day time.Time) ([]*entity.Slot, error)
	ExistsOnDay(ctx context.Context, day time.Time) (bool, error)
	Update(ctx context.Context, slot *entity.Slot) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)

	// Atomic seat accounting. ReserveSeat increments booked_count only while
	// below capacity and reports whether a seat was taken.
	ReserveSeat(ctx context.Context, slotID uuid.UUID) (bool, error)
	ReleaseSeat(ctx context.Context, slotID uuid.UUID) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, start_time, end_time, capacity, booked_count, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.BookedCount,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.Slot) error {
	query := `
		INSERT INTO slots (id, start_time, end_time, capacity, booked_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.BookedCount,
		slot.Status,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.Time("start_time", slot.StartTime),
		)
		return fmt.Errorf("create slot %s: %w", slot.ID.String(), err)
	}

	return nil
}

func (r *slotRepository) CreateBatch(ctx context.Context, slots []*entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin slot batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO slots (id, start_time, end_time, capacity, booked_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, slot := range slots {
		if _, err := tx.Exec(ctx, query,
			slot.ID,
			slot.StartTime,
			slot.EndTime,
			slot.Capacity,
			slot.BookedCount,
			slot.Status,
			slot.CreatedAt,
			slot.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to insert slot in batch",
				zap.Error(err),
				zap.Time("start_time", slot.StartTime),
			)
			return fmt.Errorf("insert slot %s in batch: %w", slot.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit slot batch: %w", err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindByDate(ctx context.Context, day time.Time) ([]*entity.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, utils.DayStart(day), utils.DayEnd(day))
	if err != nil {
		r.log.Error("Failed to find slots by date",
			zap.Error(err),
			zap.Time("date", day),
		)
		return nil, fmt.Errorf("find slots by date %s: %w", day.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) ExistsOnDay(ctx context.Context, day time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM slots WHERE start_time >= $1 AND start_time < $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, utils.DayStart(day), utils.DayEnd(day)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slots on day",
			zap.Error(err),
			zap.Time("date", day),
		)
		return false, fmt.Errorf("check slots on day %s: %w", day.Format("2006-01-02"), err)
	}

	return exists, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *entity.Slot) error {
	query := `
		UPDATE slots
		SET start_time = $2, end_time = $3, capacity = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.Status,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update slot %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slot.ID.String())
	}

	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Dependent bookings go with the slot (ON DELETE CASCADE)
	query := `DELETE FROM slots WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("delete slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	r.log.Info("Slot deleted", zap.String("slot_id", id.String()))
	return nil
}

func (r *slotRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM slots`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count slots", zap.Error(err))
		return 0, fmt.Errorf("count slots: %w", err)
	}

	return count, nil
}

func (r *slotRepository) ReserveSeat(ctx context.Context, slotID uuid.UUID) (bool, error) {
	// Conditional update instead of read-then-write so two concurrent
	// bookings can never push booked_count past capacity
	query := `
		UPDATE slots
		SET booked_count = booked_count + 1, updated_at = NOW()
		WHERE id = $1 AND booked_count < capacity
	`

	result, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		r.log.Error("Failed to reserve seat",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return false, fmt.Errorf("reserve seat in slot %s: %w", slotID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *slotRepository) ReleaseSeat(ctx context.Context, slotID uuid.UUID) error {
	query := `
		UPDATE slots
		SET booked_count = GREATEST(booked_count - 1, 0), updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		r.log.Error("Failed to release seat",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return fmt.Errorf("release seat in slot %s: %w", slotID.String(), err)
	}

	return nil
}
