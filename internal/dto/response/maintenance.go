package response

import (
	"time"

	"pool-booking/internal/data/entity"
)

type MaintenanceResponse struct {
	ID            string                     `json:"id"`
	Type          string                     `json:"type"`
	Priority      entity.MaintenancePriority `json:"priority"`
	Status        entity.MaintenanceStatus   `json:"status"`
	ScheduledDate string                     `json:"scheduled_date"`
	PoolImpact    entity.PoolImpact          `json:"pool_impact"`
	Details       entity.MaintenanceDetails  `json:"details"`
	Notes         *string                    `json:"notes,omitempty"`
	ReportedBy    string                     `json:"reported_by"`
	ReviewedBy    *string                    `json:"reviewed_by,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func MaintenanceToResponse(report *entity.Maintenance) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:            report.ID.String(),
		Type:          report.Type,
		Priority:      report.Priority,
		Status:        report.Status,
		ScheduledDate: report.ScheduledDate.Format("2006-01-02"),
		PoolImpact:    report.PoolImpact,
		Details:       report.Details,
		Notes:         report.Notes,
		ReportedBy:    report.ReportedBy.String(),
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}

	if report.ReviewedBy != nil {
		reviewedBy := report.ReviewedBy.String()
		resp.ReviewedBy = &reviewedBy
	}

	return resp
}
