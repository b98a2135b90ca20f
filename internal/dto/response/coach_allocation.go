package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type CoachAllocationResponse struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coach_id"`
	CoachName string    `json:"coach_name,omitempty"`
	Date      string    `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func CoachAllocationToResponse(allocation *entity.CoachAllocation, coach *entity.User) CoachAllocationResponse {
	resp := CoachAllocationResponse{
		ID:        allocation.ID.String(),
		CoachID:   allocation.CoachID.String(),
		Date:      allocation.Date.Format("2006-01-02"),
		Notes:     allocation.Notes,
		CreatedAt: allocation.CreatedAt,
	}

	if coach != nil {
		resp.CoachName = coach.Name
	}

	return resp
}
