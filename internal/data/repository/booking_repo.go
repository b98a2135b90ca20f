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

// BookingWithSlot pairs a booking with its slot for list/verify reads
type BookingWithSlot struct {
	Booking entity.Booking
	Slot    entity.Slot
}

// OffenderRow is one entry of the no-show top list
type OffenderRow struct {
	UserID uuid.UUID
	Name   string
	Missed int64
}

// HeatmapRow is one day-of-week / hour occupancy bucket
type HeatmapRow struct {
	Weekday  int
	Hour     int
	Bookings int64
	Capacity int64
}

// TrendingRow is one entry of the most-booked slots list
type TrendingRow struct {
	SlotID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Bookings  int64
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDWithSlot(ctx context.Context, id uuid.UUID) (*BookingWithSlot, error)
	FindByUserIDWithSlot(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithSlot, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAttendeesBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.User, error)

	// Business queries
	ExistsActiveOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	ExistsByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (bool, error)
	FindCurrentWithSlotByUserID(ctx context.Context, userID uuid.UUID, from time.Time) ([]*BookingWithSlot, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) (bool, error)

	// Background jobs
	SetReminded(ctx context.Context, bookingID uuid.UUID) error
	FindDueRemindersWithSlot(ctx context.Context, windowStart, windowEnd time.Time) ([]*BookingWithSlot, error)
	MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Reporting
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)
	TopOffenders(ctx context.Context, limit int) ([]OffenderRow, error)
	OccupancyHeatmap(ctx context.Context) ([]HeatmapRow, error)
	TrendingSlots(ctx context.Context, limit int) ([]TrendingRow, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, slot_id, slot_date, status, qr_code, reminded, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.SlotDate,
		&booking.Status,
		&booking.QRCode,
		&booking.Reminded,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

const bookingWithSlotQuery = `
	SELECT b.id, b.user_id, b.slot_id, b.slot_date, b.status, b.qr_code, b.reminded, b.created_at, b.updated_at,
	       s.id, s.start_time, s.end_time, s.capacity, s.booked_count, s.status, s.created_at, s.updated_at
	FROM bookings b
	JOIN slots s ON s.id = b.slot_id
`

func scanBookingWithSlot(row pgx.Row) (*BookingWithSlot, error) {
	var bs BookingWithSlot
	err := row.Scan(
		&bs.Booking.ID,
		&bs.Booking.UserID,
		&bs.Booking.SlotID,
		&bs.Booking.SlotDate,
		&bs.Booking.Status,
		&bs.Booking.QRCode,
		&bs.Booking.Reminded,
		&bs.Booking.CreatedAt,
		&bs.Booking.UpdatedAt,
		&bs.Slot.ID,
		&bs.Slot.StartTime,
		&bs.Slot.EndTime,
		&bs.Slot.Capacity,
		&bs.Slot.BookedCount,
		&bs.Slot.Status,
		&bs.Slot.CreatedAt,
		&bs.Slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bs, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, slot_id, slot_date, status, qr_code, reminded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.SlotID,
		booking.SlotDate,
		booking.Status,
		booking.QRCode,
		booking.Reminded,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("slot_id", booking.SlotID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIDWithSlot(ctx context.Context, id uuid.UUID) (*BookingWithSlot, error) {
	query := bookingWithSlotQuery + ` WHERE b.id = $1`

	bs, err := scanBookingWithSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking with slot",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking with slot %s: %w", id.String(), err)
	}

	return bs, nil
}

func (r *bookingRepository) FindByUserIDWithSlot(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingWithSlot, error) {
	query := bookingWithSlotQuery + `
		WHERE b.user_id = $1
		ORDER BY s.start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*BookingWithSlot
	for rows.Next() {
		bs, err := scanBookingWithSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, bs)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAttendeesBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password, u.role, u.qr_code, u.profile_picture, u.specialization, u.schedule, u.is_active, u.created_at, u.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.slot_id = $1 AND b.status IN ('confirmed', 'attended')
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, slotID)
	if err != nil {
		r.log.Error("Failed to find slot attendees",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find attendees for slot %s: %w", slotID.String(), err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan attendee row", zap.Error(err))
			return nil, fmt.Errorf("scan attendee row: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *bookingRepository) ExistsActiveOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND slot_date = $2 AND status <> 'cancelled'
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, utils.DayStart(day)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active booking on date",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check active booking on %s: %w", day.Format("2006-01-02"), err)
	}

	return exists, nil
}

func (r *bookingRepository) ExistsByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND slot_id = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, slotID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking by user and slot",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("slot_id", slotID.String()),
		)
		return false, fmt.Errorf("check booking by user %s and slot %s: %w", userID.String(), slotID.String(), err)
	}

	return exists, nil
}

// FindCurrentWithSlotByUserID returns all of a user's bookings, any
// status, whose slot has not yet ended at the given time.
func (r *bookingRepository) FindCurrentWithSlotByUserID(ctx context.Context, userID uuid.UUID, from time.Time) ([]*BookingWithSlot, error) {
	query := bookingWithSlotQuery + `
		WHERE b.user_id = $1 AND s.end_time >= $2
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, userID, from)
	if err != nil {
		r.log.Error("Failed to find current bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find current bookings for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*BookingWithSlot
	for rows.Next() {
		bs, err := scanBookingWithSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, bs)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	// Compare-and-set so two concurrent verifications cannot both succeed
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, bookingID, from, to)
	if err != nil {
		r.log.Error("Failed to transition booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition booking %s from %s to %s: %w", bookingID.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetReminded(ctx context.Context, bookingID uuid.UUID) error {
	query := `UPDATE bookings SET reminded = true, updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to mark booking reminded",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("mark booking %s reminded: %w", bookingID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindDueRemindersWithSlot(ctx context.Context, windowStart, windowEnd time.Time) ([]*BookingWithSlot, error) {
	query := bookingWithSlotQuery + `
		WHERE b.status = 'confirmed' AND b.reminded = false
		  AND s.start_time >= $1 AND s.start_time <= $2
	`

	rows, err := r.db.Query(ctx, query, windowStart, windowEnd)
	if err != nil {
		r.log.Error("Failed to find due reminders", zap.Error(err))
		return nil, fmt.Errorf("find due reminders: %w", err)
	}
	defer rows.Close()

	var bookings []*BookingWithSlot
	for rows.Next() {
		bs, err := scanBookingWithSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan reminder row", zap.Error(err))
			return nil, fmt.Errorf("scan reminder row: %w", err)
		}
		bookings = append(bookings, bs)
	}

	return bookings, nil
}

func (r *bookingRepository) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// Confirmed bookings whose slot has fully elapsed were never verified
	query := `
		UPDATE bookings b
		SET status = 'missed', updated_at = NOW()
		FROM slots s
		WHERE s.id = b.slot_id AND b.status = 'confirmed' AND s.end_time < $1
	`

	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to mark missed bookings", zap.Error(err))
		return 0, fmt.Errorf("mark missed bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE status = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count bookings by status %s: %w", string(status), err)
	}

	return count, nil
}

func (r *bookingRepository) TopOffenders(ctx context.Context, limit int) ([]OffenderRow, error) {
	query := `
		SELECT u.id, u.name, COUNT(*) AS missed
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.status = 'missed'
		GROUP BY u.id, u.name
		ORDER BY missed DESC, u.name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to query top offenders", zap.Error(err))
		return nil, fmt.Errorf("query top offenders: %w", err)
	}
	defer rows.Close()

	var offenders []OffenderRow
	for rows.Next() {
		var row OffenderRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Missed); err != nil {
			r.log.Error("Failed to scan offender row", zap.Error(err))
			return nil, fmt.Errorf("scan offender row: %w", err)
		}
		offenders = append(offenders, row)
	}

	return offenders, nil
}

func (r *bookingRepository) OccupancyHeatmap(ctx context.Context) ([]HeatmapRow, error) {
	query := `
		SELECT EXTRACT(DOW FROM s.start_time)::int AS weekday,
		       EXTRACT(HOUR FROM s.start_time)::int AS hour,
		       COALESCE(SUM(bc.cnt), 0) AS bookings,
		       SUM(s.capacity) AS capacity
		FROM slots s
		LEFT JOIN (
			SELECT slot_id, COUNT(*) AS cnt
			FROM bookings
			WHERE status <> 'cancelled'
			GROUP BY slot_id
		) bc ON bc.slot_id = s.id
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query occupancy heatmap", zap.Error(err))
		return nil, fmt.Errorf("query occupancy heatmap: %w", err)
	}
	defer rows.Close()

	var buckets []HeatmapRow
	for rows.Next() {
		var row HeatmapRow
		if err := rows.Scan(&row.Weekday, &row.Hour, &row.Bookings, &row.Capacity); err != nil {
			r.log.Error("Failed to scan heatmap row", zap.Error(err))
			return nil, fmt.Errorf("scan heatmap row: %w", err)
		}
		buckets = append(buckets, row)
	}

	return buckets, nil
}

func (r *bookingRepository) TrendingSlots(ctx context.Context, limit int) ([]TrendingRow, error) {
	query := `
		SELECT s.id, s.start_time, s.end_time, COUNT(b.id) AS bookings
		FROM slots s
		JOIN bookings b ON b.slot_id = s.id AND b.status <> 'cancelled'
		GROUP BY s.id, s.start_time, s.end_time
		ORDER BY bookings DESC, s.start_time
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to query trending slots", zap.Error(err))
		return nil, fmt.Errorf("query trending slots: %w", err)
	}
	defer rows.Close()

	var trending []TrendingRow
	for rows.Next() {
		var row TrendingRow
		if err := rows.Scan(&row.SlotID, &row.StartTime, &row.EndTime, &row.Bookings); err != nil {
			r.log.Error("Failed to scan trending row", zap.Error(err))
			return nil, fmt.Errorf("scan trending row: %w", err)
		}
		trending = append(trending, row)
	}

	return trending, nil
}
