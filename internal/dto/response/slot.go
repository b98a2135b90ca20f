package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type SlotResponse struct {
	ID          string            `json:"id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Capacity    int               `json:"capacity"`
	BookedCount int               `json:"booked_count"`
	Available   int               `json:"available"`
	Status      entity.SlotStatus `json:"status"`
}

// SlotRosterResponse is the coach view with populated attendee details
type SlotRosterResponse struct {
	SlotResponse
	Attendees []UserResponse `json:"attendees"`
}

func SlotToResponse(slot *entity.Slot) SlotResponse {
	available := slot.Capacity - slot.BookedCount
	if available < 0 {
		available = 0
	}

	return SlotResponse{
		ID:          slot.ID.String(),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Capacity:    slot.Capacity,
		BookedCount: slot.BookedCount,
		Available:   available,
		Status:      slot.Status,
	}
}
