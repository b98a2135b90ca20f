package request

import "pool-booking/internal/data/entity"

type CreateMaintenanceRequest struct {
	Type          string                    `json:"type" validate:"required,min=2,max=100"`
	Priority      string                    `json:"priority" validate:"required,oneof=low medium high urgent"`
	ScheduledDate string                    `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	PoolImpact    string                    `json:"poolImpact" validate:"omitempty,oneof=none restricted closed"`
	Details       entity.MaintenanceDetails `json:"details"`
	Notes         *string                   `json:"notes,omitempty"`
}

type ReviewMaintenanceRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}
