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

type SlotService interface {
	GetSlotsByDate(ctx context.Context, date string) ([]response.SlotResponse, error)
	GetSlotByID(ctx context.Context, slotID string) (*response.SlotResponse, error)
	GetTodayRoster(ctx context.Context) ([]response.SlotRosterResponse, error)
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
	UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID string) error

	// GenerateSlots is shared between the daily job and the admin
	// on-demand endpoint
	GenerateSlots(ctx context.Context, from time.Time) (int, error)
}

type slotService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewSlotService(repo *repository.Repository, config *utils.Config, log *zap.Logger) SlotService {
	return &slotService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "slot")),
		now:    time.Now,
	}
}

func (s *slotService) GetSlotsByDate(ctx context.Context, date string) ([]response.SlotResponse, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %s, expected YYYY-MM-DD", date)
		}
		day = parsed
	}

	slots, err := s.repo.Slot.FindByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get slots for date: %w", err)
	}

	slotResponses := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		slotResponses = append(slotResponses, response.SlotToResponse(slot))
	}

	return slotResponses, nil
}

func (s *slotService) GetSlotByID(ctx context.Context, slotID string) (*response.SlotResponse, error) {
	id, err := utils.ParseUUID(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s not found", slotID)
	}

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

// GetTodayRoster returns today's slots with their attendee lists, the
// coach's check-in view
func (s *slotService) GetTodayRoster(ctx context.Context) ([]response.SlotRosterResponse, error) {
	today := s.now()

	slots, err := s.repo.Slot.FindByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("get today's slots: %w", err)
	}

	roster := make([]response.SlotRosterResponse, 0, len(slots))
	for _, slot := range slots {
		attendees, err := s.repo.Booking.FindAttendeesBySlotID(ctx, slot.ID)
		if err != nil {
			return nil, fmt.Errorf("get attendees for slot %s: %w", slot.ID.String(), err)
		}

		attendeeResponses := make([]response.UserResponse, 0, len(attendees))
		for _, u := range attendees {
			attendeeResponses = append(attendeeResponses, response.UserToResponse(u))
		}

		roster = append(roster, response.SlotRosterResponse{
			SlotResponse: response.SlotToResponse(slot),
			Attendees:    attendeeResponses,
		})
	}

	return roster, nil
}

func (s *slotService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	startTime, err := time.ParseInLocation(time.RFC3339, req.StartTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %s: %w", req.StartTime, err)
	}

	endTime, err := time.ParseInLocation(time.RFC3339, req.EndTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %s: %w", req.EndTime, err)
	}

	if !endTime.After(startTime) {
		return nil, fmt.Errorf("end time must be after start time")
	}
	if !utils.SameDay(startTime, endTime) {
		return nil, fmt.Errorf("slot must start and end on the same day")
	}

	status := entity.SlotStatusOpen
	if req.Status != "" {
		status = entity.SlotStatus(req.Status)
	}

	now := s.now()
	slot := &entity.Slot{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  req.Capacity,
		Status:    status,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create slot", zap.Error(err))
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.Time("start_time", startTime),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(slotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s not found", slotID)
	}

	if req.StartTime != nil {
		startTime, err := time.ParseInLocation(time.RFC3339, *req.StartTime, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %s: %w", *req.StartTime, err)
		}
		slot.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := time.ParseInLocation(time.RFC3339, *req.EndTime, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end time %s: %w", *req.EndTime, err)
		}
		slot.EndTime = endTime
	}
	if !slot.EndTime.After(slot.StartTime) {
		return nil, fmt.Errorf("end time must be after start time")
	}
	if req.Capacity != nil {
		// Never shrink below the seats already taken
		if *req.Capacity < slot.BookedCount {
			return nil, fmt.Errorf("capacity cannot be lower than current bookings (%d)", slot.BookedCount)
		}
		slot.Capacity = *req.Capacity
	}
	if req.Status != nil {
		slot.Status = entity.SlotStatus(*req.Status)
	}
	slot.UpdatedAt = s.now()

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		s.log.Error("Failed to update slot", zap.Error(err), zap.String("slot_id", slotID))
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.log.Info("Slot updated", zap.String("slot_id", slotID))

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) DeleteSlot(ctx context.Context, slotID string) error {
	id, err := utils.ParseUUID(slotID)
	if err != nil {
		return fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("slot %s not found", slotID)
	}

	if err := s.repo.Slot.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}

	s.log.Info("Slot deleted", zap.String("slot_id", slotID))
	return nil
}

// GenerateSlots populates the booking horizon with hourly slots. Weekends,
// holidays and days that already have slots are skipped, so repeated runs
// are harmless. A failing day is logged and skipped so the rest of the
// horizon still gets its slots.
func (s *slotService) GenerateSlots(ctx context.Context, from time.Time) (int, error) {
	created := 0

	for offset := 0; offset < s.config.Generator.HorizonDays; offset++ {
		day := utils.DayStart(from.AddDate(0, 0, offset))
		dateStr := day.Format("2006-01-02")

		if utils.IsWeekend(day) {
			s.log.Debug("Skipping slot generation", zap.String("date", dateStr), zap.String("reason", "weekend"))
			continue
		}

		holiday, err := s.repo.Holiday.ExistsOnDay(ctx, day)
		if err != nil {
			s.log.Error("Failed to check holiday, skipping day",
				zap.Error(err),
				zap.String("date", dateStr),
			)
			continue
		}
		if holiday {
			s.log.Debug("Skipping slot generation", zap.String("date", dateStr), zap.String("reason", "holiday"))
			continue
		}

		exists, err := s.repo.Slot.ExistsOnDay(ctx, day)
		if err != nil {
			s.log.Error("Failed to check existing slots, skipping day",
				zap.Error(err),
				zap.String("date", dateStr),
			)
			continue
		}
		if exists {
			s.log.Debug("Skipping slot generation", zap.String("date", dateStr), zap.String("reason", "slots already exist"))
			continue
		}

		now := s.now()
		slots := make([]*entity.Slot, 0, s.config.Generator.EndHour-s.config.Generator.StartHour)
		for hour := s.config.Generator.StartHour; hour < s.config.Generator.EndHour; hour++ {
			start := day.Add(time.Duration(hour) * time.Hour)
			slots = append(slots, &entity.Slot{
				Base: entity.Base{
					ID:        utils.GenerateUUID(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Capacity:  s.config.Generator.DefaultCapacity,
				Status:    entity.SlotStatusOpen,
			})
		}

		if err := s.repo.Slot.CreateBatch(ctx, slots); err != nil {
			s.log.Error("Failed to create slots, skipping day",
				zap.Error(err),
				zap.String("date", dateStr),
			)
			continue
		}

		created += len(slots)
		s.log.Info("Generated slots",
			zap.String("date", dateStr),
			zap.Int("count", len(slots)),
		)
	}

	return created, nil
}
