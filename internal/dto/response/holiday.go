package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type HolidayResponse struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	Description string             `json:"description"`
	Type        entity.HolidayType `json:"type"`
	CreatedAt   time.Time          `json:"created_at"`
}

func HolidayToResponse(holiday *entity.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          holiday.ID.String(),
		Date:        holiday.Date.Format("2006-01-02"),
		Description: holiday.Description,
		Type:        holiday.Type,
		CreatedAt:   holiday.CreatedAt,
	}
}
