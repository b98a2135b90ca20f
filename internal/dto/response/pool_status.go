package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type PoolStatusResponse struct {
	Status         entity.PoolState `json:"status"`
	Message        *string          `json:"message,omitempty"`
	ManualOverride bool             `json:"manual_override"`
	EffectiveUntil *time.Time       `json:"effective_until,omitempty"`
	MaintenanceID  *string          `json:"maintenance_id,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
