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

type HolidayRepository interface {
	Create(ctx context.Context, holiday *entity.Holiday) error
	FindAll(ctx context.Context) ([]*entity.Holiday, error)
	FindByDate(ctx context.Context, day time.Time) (*entity.Holiday, error)
	ExistsOnDay(ctx context.Context, day time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type holidayRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHolidayRepository(db database.PgxIface, log *zap.Logger) HolidayRepository {
	return &holidayRepository{
		db:  db,
		log: log.With(zap.String("repository", "holiday")),
	}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *entity.Holiday) error {
	query := `
		INSERT INTO holidays (id, date, description, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		holiday.ID,
		utils.DayStart(holiday.Date),
		holiday.Description,
		holiday.Type,
		holiday.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create holiday",
			zap.Error(err),
			zap.Time("date", holiday.Date),
		)
		return fmt.Errorf("create holiday on %s: %w", holiday.Date.Format("2006-01-02"), err)
	}

	return nil
}

func (r *holidayRepository) FindAll(ctx context.Context) ([]*entity.Holiday, error) {
	query := `SELECT id, date, description, type, created_at FROM holidays ORDER BY date`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list holidays", zap.Error(err))
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*entity.Holiday
	for rows.Next() {
		var holiday entity.Holiday
		err := rows.Scan(
			&holiday.ID,
			&holiday.Date,
			&holiday.Description,
			&holiday.Type,
			&holiday.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan holiday row", zap.Error(err))
			return nil, fmt.Errorf("scan holiday row: %w", err)
		}
		holidays = append(holidays, &holiday)
	}

	return holidays, nil
}

func (r *holidayRepository) FindByDate(ctx context.Context, day time.Time) (*entity.Holiday, error) {
	query := `
		SELECT id, date, description, type, created_at
		FROM holidays
		WHERE date >= $1 AND date < $2
	`

	var holiday entity.Holiday
	err := r.db.QueryRow(ctx, query, utils.DayStart(day), utils.DayEnd(day)).Scan(
		&holiday.ID,
		&holiday.Date,
		&holiday.Description,
		&holiday.Type,
		&holiday.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find holiday by date",
			zap.Error(err),
			zap.Time("date", day),
		)
		return nil, fmt.Errorf("find holiday on %s: %w", day.Format("2006-01-02"), err)
	}

	return &holiday, nil
}

func (r *holidayRepository) ExistsOnDay(ctx context.Context, day time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE date >= $1 AND date < $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, utils.DayStart(day), utils.DayEnd(day)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check holiday on day",
			zap.Error(err),
			zap.Time("date", day),
		)
		return false, fmt.Errorf("check holiday on %s: %w", day.Format("2006-01-02"), err)
	}

	return exists, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM holidays WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete holiday",
			zap.Error(err),
			zap.String("holiday_id", id.String()),
		)
		return fmt.Errorf("delete holiday %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("holiday %s not found", id.String())
	}

	r.log.Info("Holiday deleted", zap.String("holiday_id", id.String()))
	return nil
}
