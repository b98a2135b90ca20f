package usecase

import (
	"context"
	"fmt"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/dto/request"
	"pool-booking/internal/dto/response"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceService interface {
	CreateReport(ctx context.Context, reporterID string, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error)
	GetReports(ctx context.Context, status string) ([]response.MaintenanceResponse, error)
	GetReport(ctx context.Context, reportID string) (*response.MaintenanceResponse, error)
	ReviewReport(ctx context.Context, reviewerID string, reportID string, req *request.ReviewMaintenanceRequest) (*response.MaintenanceResponse, error)
	UpdateReportStatus(ctx context.Context, reportID string, status string) (*response.MaintenanceResponse, error)

	GetPoolStatus(ctx context.Context) (*response.PoolStatusResponse, error)
	SetPoolStatus(ctx context.Context, adminID string, req *request.SetPoolStatusRequest) (*response.PoolStatusResponse, error)
	ClearPoolStatus(ctx context.Context) error
}

type maintenanceService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewMaintenanceService(repo *repository.Repository, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo: repo,
		log:  log.With(zap.String("service", "maintenance")),
		now:  time.Now,
	}
}

func (s *maintenanceService) CreateReport(ctx context.Context, reporterID string, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reporter, err := utils.ParseUUID(reporterID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", reporterID, err)
	}

	scheduledDate, err := time.ParseInLocation("2006-01-02", req.ScheduledDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled date %s, expected YYYY-MM-DD", req.ScheduledDate)
	}

	impact := entity.PoolImpactNone
	if req.PoolImpact != "" {
		impact = entity.PoolImpact(req.PoolImpact)
	}

	now := s.now()
	report := &entity.Maintenance{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:          req.Type,
		Priority:      entity.MaintenancePriority(req.Priority),
		Status:        entity.MaintenanceStatusPending,
		ScheduledDate: utils.DayStart(scheduledDate),
		PoolImpact:    impact,
		Details:       req.Details,
		Notes:         req.Notes,
		ReportedBy:    reporter,
	}

	if err := s.repo.Maintenance.Create(ctx, report); err != nil {
		s.log.Error("Failed to create maintenance report", zap.Error(err))
		return nil, fmt.Errorf("create maintenance report: %w", err)
	}

	s.log.Info("Maintenance report created",
		zap.String("report_id", report.ID.String()),
		zap.String("priority", req.Priority),
		zap.String("pool_impact", string(impact)),
	)

	resp := response.MaintenanceToResponse(report)
	return &resp, nil
}

func (s *maintenanceService) GetReports(ctx context.Context, status string) ([]response.MaintenanceResponse, error) {
	var filter entity.MaintenanceStatus
	if status != "" {
		switch entity.MaintenanceStatus(status) {
		case entity.MaintenanceStatusPending, entity.MaintenanceStatusApproved,
			entity.MaintenanceStatusRejected, entity.MaintenanceStatusInProgress,
			entity.MaintenanceStatusCompleted:
			filter = entity.MaintenanceStatus(status)
		default:
			return nil, fmt.Errorf("invalid status filter %s", status)
		}
	}

	reports, err := s.repo.Maintenance.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get maintenance reports: %w", err)
	}

	reportResponses := make([]response.MaintenanceResponse, 0, len(reports))
	for _, r := range reports {
		reportResponses = append(reportResponses, response.MaintenanceToResponse(r))
	}

	return reportResponses, nil
}

func (s *maintenanceService) GetReport(ctx context.Context, reportID string) (*response.MaintenanceResponse, error) {
	id, err := utils.ParseUUID(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format %s: %w", reportID, err)
	}

	report, err := s.repo.Maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get maintenance report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("maintenance report %s not found", reportID)
	}

	resp := response.MaintenanceToResponse(report)
	return &resp, nil
}

// ReviewReport approves or rejects a pending report. Approving a report
// with a pool impact also records a linked facility status override for
// the scheduled day.
func (s *maintenanceService) ReviewReport(ctx context.Context, reviewerID string, reportID string, req *request.ReviewMaintenanceRequest) (*response.MaintenanceResponse, error) {
	reviewer, err := utils.ParseUUID(reviewerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", reviewerID, err)
	}

	id, err := utils.ParseUUID(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format %s: %w", reportID, err)
	}

	report, err := s.repo.Maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get maintenance report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("maintenance report %s not found", reportID)
	}

	if report.Status != entity.MaintenanceStatusPending {
		return nil, fmt.Errorf("maintenance report has already been reviewed")
	}

	newStatus := entity.MaintenanceStatusRejected
	if req.Approve {
		newStatus = entity.MaintenanceStatusApproved
	}

	if err := s.repo.Maintenance.UpdateStatus(ctx, id, newStatus, &reviewer); err != nil {
		return nil, fmt.Errorf("review maintenance report %s: %w", reportID, err)
	}

	report.Status = newStatus
	report.ReviewedBy = &reviewer
	if req.Notes != nil {
		report.Notes = req.Notes
		if err := s.repo.Maintenance.Update(ctx, report); err != nil {
			s.log.Warn("Failed to store review notes", zap.Error(err), zap.String("report_id", reportID))
		}
	}

	if req.Approve && report.PoolImpact != entity.PoolImpactNone {
		state := entity.PoolStateRestricted
		if report.PoolImpact == entity.PoolImpactClosed {
			state = entity.PoolStateClosed
		}

		message := fmt.Sprintf("Scheduled maintenance: %s", report.Type)
		effectiveUntil := utils.DayEnd(report.ScheduledDate)

		override := &entity.PoolStatus{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: s.now(),
			},
			Status:         state,
			Message:        &message,
			ManualOverride: true,
			EffectiveUntil: &effectiveUntil,
			MaintenanceID:  &report.ID,
			SetBy:          reviewer,
		}

		if err := s.repo.PoolStatus.Create(ctx, override); err != nil {
			s.log.Error("Failed to create pool status override for approved maintenance",
				zap.Error(err),
				zap.String("report_id", reportID),
			)
		} else {
			s.log.Info("Pool status override created for maintenance",
				zap.String("report_id", reportID),
				zap.String("status", string(state)),
			)
		}
	}

	s.log.Info("Maintenance report reviewed",
		zap.String("report_id", reportID),
		zap.String("status", string(newStatus)),
		zap.String("reviewed_by", reviewerID),
	)

	resp := response.MaintenanceToResponse(report)
	return &resp, nil
}

func (s *maintenanceService) UpdateReportStatus(ctx context.Context, reportID string, status string) (*response.MaintenanceResponse, error) {
	id, err := utils.ParseUUID(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format %s: %w", reportID, err)
	}

	report, err := s.repo.Maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get maintenance report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("maintenance report %s not found", reportID)
	}

	next := entity.MaintenanceStatus(status)
	switch {
	case report.Status == entity.MaintenanceStatusApproved && next == entity.MaintenanceStatusInProgress:
	case report.Status == entity.MaintenanceStatusInProgress && next == entity.MaintenanceStatusCompleted:
	default:
		return nil, fmt.Errorf("cannot move maintenance report from %s to %s", report.Status, status)
	}

	if err := s.repo.Maintenance.UpdateStatus(ctx, id, next, report.ReviewedBy); err != nil {
		return nil, fmt.Errorf("update maintenance status: %w", err)
	}

	report.Status = next
	s.log.Info("Maintenance status updated",
		zap.String("report_id", reportID),
		zap.String("status", status),
	)

	resp := response.MaintenanceToResponse(report)
	return &resp, nil
}

// GetPoolStatus resolves the current facility status. An unexpired manual
// override wins, then a holiday on the current date, otherwise open.
func (s *maintenanceService) GetPoolStatus(ctx context.Context) (*response.PoolStatusResponse, error) {
	now := s.now()

	override, err := s.repo.PoolStatus.FindEffectiveOverride(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("get pool status override: %w", err)
	}
	if override != nil {
		resp := &response.PoolStatusResponse{
			Status:         override.Status,
			Message:        override.Message,
			ManualOverride: true,
			EffectiveUntil: override.EffectiveUntil,
			UpdatedAt:      override.CreatedAt,
		}
		if override.MaintenanceID != nil {
			maintenanceID := override.MaintenanceID.String()
			resp.MaintenanceID = &maintenanceID
		}
		return resp, nil
	}

	holiday, err := s.repo.Holiday.FindByDate(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("check holiday: %w", err)
	}
	if holiday != nil {
		return &response.PoolStatusResponse{
			Status:    entity.PoolStateClosed,
			Message:   &holiday.Description,
			UpdatedAt: holiday.CreatedAt,
		}, nil
	}

	return &response.PoolStatusResponse{
		Status:    entity.PoolStateOpen,
		UpdatedAt: now,
	}, nil
}

func (s *maintenanceService) SetPoolStatus(ctx context.Context, adminID string, req *request.SetPoolStatusRequest) (*response.PoolStatusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	admin, err := utils.ParseUUID(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", adminID, err)
	}

	var effectiveUntil *time.Time
	if req.EffectiveUntil != nil {
		parsed, err := time.ParseInLocation(time.RFC3339, *req.EffectiveUntil, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid effective until %s: %w", *req.EffectiveUntil, err)
		}
		if !parsed.After(s.now()) {
			return nil, fmt.Errorf("effective until must be in the future")
		}
		effectiveUntil = &parsed
	}

	var maintenanceID *uuid.UUID
	if req.MaintenanceID != nil {
		id, err := utils.ParseUUID(*req.MaintenanceID)
		if err != nil {
			return nil, fmt.Errorf("invalid maintenance ID format %s: %w", *req.MaintenanceID, err)
		}
		report, err := s.repo.Maintenance.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get maintenance report: %w", err)
		}
		if report == nil {
			return nil, fmt.Errorf("maintenance report %s not found", *req.MaintenanceID)
		}
		maintenanceID = &id
	}

	// Only one override in force at a time
	if err := s.repo.PoolStatus.ExpireActiveOverrides(ctx, s.now()); err != nil {
		return nil, fmt.Errorf("expire previous overrides: %w", err)
	}

	status := &entity.PoolStatus{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		Status:         entity.PoolState(req.Status),
		Message:        req.Message,
		ManualOverride: true,
		EffectiveUntil: effectiveUntil,
		MaintenanceID:  maintenanceID,
		SetBy:          admin,
	}

	if err := s.repo.PoolStatus.Create(ctx, status); err != nil {
		s.log.Error("Failed to set pool status", zap.Error(err))
		return nil, fmt.Errorf("set pool status: %w", err)
	}

	s.log.Info("Pool status override set",
		zap.String("status", req.Status),
		zap.String("set_by", adminID),
	)

	resp := &response.PoolStatusResponse{
		Status:         status.Status,
		Message:        status.Message,
		ManualOverride: true,
		EffectiveUntil: status.EffectiveUntil,
		MaintenanceID:  req.MaintenanceID,
		UpdatedAt:      status.CreatedAt,
	}
	return resp, nil
}

func (s *maintenanceService) ClearPoolStatus(ctx context.Context) error {
	if err := s.repo.PoolStatus.ExpireActiveOverrides(ctx, s.now()); err != nil {
		return fmt.Errorf("clear pool status override: %w", err)
	}

	s.log.Info("Pool status override cleared")
	return nil
}
