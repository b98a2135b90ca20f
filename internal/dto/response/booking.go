package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	SlotID    string               `json:"slot_id"`
	Date      string               `json:"date"`
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time"`
	Status    entity.BookingStatus `json:"status"`
	QRCode    string               `json:"qr_code"`
	Reminded  bool                 `json:"reminded"`
	CreatedAt time.Time            `json:"created_at"`
}

// VerifyResponse is the immediate on-screen feedback for the staff scanner
type VerifyResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserName  string `json:"user,omitempty"`
	SlotRange string `json:"slot,omitempty"`
}

func BookingToResponse(booking *entity.Booking, slot *entity.Slot) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID.String(),
		UserID:    booking.UserID.String(),
		SlotID:    booking.SlotID.String(),
		Date:      booking.SlotDate.Format("2006-01-02"),
		Status:    booking.Status,
		QRCode:    booking.QRCode,
		Reminded:  booking.Reminded,
		CreatedAt: booking.CreatedAt,
	}

	if slot != nil {
		resp.StartTime = slot.StartTime
		resp.EndTime = slot.EndTime
	}

	return resp
}
