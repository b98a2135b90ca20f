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

	"go.uber.org/zap"
)

type CoachAllocationService interface {
	GetCoaches(ctx context.Context) ([]response.UserResponse, error)
	GetAllocations(ctx context.Context, from, to string) ([]response.CoachAllocationResponse, error)
	GetAllocationByDate(ctx context.Context, date string) (*response.CoachAllocationResponse, error)
	CreateAllocation(ctx context.Context, adminID string, req *request.CreateCoachAllocationRequest) (*response.CoachAllocationResponse, error)
	DeleteAllocation(ctx context.Context, allocationID string) error
}

type coachAllocationService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewCoachAllocationService(repo *repository.Repository, log *zap.Logger) CoachAllocationService {
	return &coachAllocationService{
		repo: repo,
		log:  log.With(zap.String("service", "coach_allocation")),
		now:  time.Now,
	}
}

func (s *coachAllocationService) GetCoaches(ctx context.Context) ([]response.UserResponse, error) {
	coaches, err := s.repo.User.FindByRole(ctx, entity.RoleCoach)
	if err != nil {
		return nil, fmt.Errorf("get coaches: %w", err)
	}

	coachResponses := make([]response.UserResponse, 0, len(coaches))
	for _, c := range coaches {
		coachResponses = append(coachResponses, response.UserToResponse(c))
	}

	return coachResponses, nil
}

func (s *coachAllocationService) GetAllocations(ctx context.Context, from, to string) ([]response.CoachAllocationResponse, error) {
	// Default range is the coming two weeks
	now := s.now()
	fromDay := utils.DayStart(now)
	toDay := fromDay.AddDate(0, 0, 14)

	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %s, expected YYYY-MM-DD", from)
		}
		fromDay = utils.DayStart(parsed)
	}
	if to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %s, expected YYYY-MM-DD", to)
		}
		toDay = utils.DayEnd(parsed)
	}

	allocations, err := s.repo.CoachAllocation.FindRange(ctx, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("get coach allocations: %w", err)
	}

	allocationResponses := make([]response.CoachAllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		coach, err := s.repo.User.FindByID(ctx, a.CoachID)
		if err != nil {
			return nil, fmt.Errorf("get coach %s: %w", a.CoachID.String(), err)
		}
		allocationResponses = append(allocationResponses, response.CoachAllocationToResponse(a, coach))
	}

	return allocationResponses, nil
}

func (s *coachAllocationService) GetAllocationByDate(ctx context.Context, date string) (*response.CoachAllocationResponse, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %s, expected YYYY-MM-DD", date)
		}
		day = parsed
	}

	allocation, err := s.repo.CoachAllocation.FindByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get coach allocation: %w", err)
	}
	if allocation == nil {
		return nil, fmt.Errorf("no coach allocated for this date")
	}

	coach, err := s.repo.User.FindByID(ctx, allocation.CoachID)
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}

	resp := response.CoachAllocationToResponse(allocation, coach)
	return &resp, nil
}

func (s *coachAllocationService) CreateAllocation(ctx context.Context, adminID string, req *request.CreateCoachAllocationRequest) (*response.CoachAllocationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	admin, err := utils.ParseUUID(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", adminID, err)
	}

	coachID, err := utils.ParseUUID(req.CoachID)
	if err != nil {
		return nil, fmt.Errorf("invalid coach ID format %s: %w", req.CoachID, err)
	}

	coach, err := s.repo.User.FindByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}
	if coach == nil {
		return nil, fmt.Errorf("coach %s not found", req.CoachID)
	}
	if coach.Role != entity.RoleCoach {
		return nil, fmt.Errorf("user %s is not a coach", req.CoachID)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s, expected YYYY-MM-DD", req.Date)
	}

	existing, err := s.repo.CoachAllocation.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check existing allocation: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a coach is already allocated for this date")
	}

	now := s.now()
	allocation := &entity.CoachAllocation{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CoachID:   coachID,
		Date:      utils.DayStart(date),
		Notes:     req.Notes,
		CreatedBy: admin,
	}

	if err := s.repo.CoachAllocation.Create(ctx, allocation); err != nil {
		s.log.Error("Failed to create coach allocation", zap.Error(err))
		return nil, fmt.Errorf("a coach is already allocated for this date")
	}

	s.log.Info("Coach allocated",
		zap.String("coach_id", req.CoachID),
		zap.String("date", req.Date),
	)

	resp := response.CoachAllocationToResponse(allocation, coach)
	return &resp, nil
}

func (s *coachAllocationService) DeleteAllocation(ctx context.Context, allocationID string) error {
	id, err := utils.ParseUUID(allocationID)
	if err != nil {
		return fmt.Errorf("invalid allocation ID format %s: %w", allocationID, err)
	}

	if err := s.repo.CoachAllocation.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete coach allocation %s: %w", allocationID, err)
	}

	s.log.Info("Coach allocation removed", zap.String("allocation_id", allocationID))
	return nil
}
