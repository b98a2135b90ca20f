package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusAttended  BookingStatus = "attended"
	BookingStatusMissed    BookingStatus = "missed"
)

type Booking struct {
	Base
	UserID uuid.UUID `db:"user_id"`
	SlotID uuid.UUID `db:"slot_id"`
	// Calendar date of the slot, denormalized so the one-session-per-day
	// rule is an indexed lookup instead of a scan over the user's bookings
	SlotDate time.Time     `db:"slot_date"`
	Status   BookingStatus `db:"status"`
	QRCode   string        `db:"qr_code"` // user's code at booking time, for audit
	Reminded bool          `db:"reminded"`
}
