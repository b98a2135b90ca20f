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

type HolidayService interface {
	GetHolidays(ctx context.Context) ([]response.HolidayResponse, error)
	CreateHoliday(ctx context.Context, req *request.CreateHolidayRequest) (*response.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, holidayID string) error
}

type holidayService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewHolidayService(repo *repository.Repository, log *zap.Logger) HolidayService {
	return &holidayService{
		repo: repo,
		log:  log.With(zap.String("service", "holiday")),
		now:  time.Now,
	}
}

func (s *holidayService) GetHolidays(ctx context.Context) ([]response.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get holidays: %w", err)
	}

	holidayResponses := make([]response.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		holidayResponses = append(holidayResponses, response.HolidayToResponse(h))
	}

	return holidayResponses, nil
}

func (s *holidayService) CreateHoliday(ctx context.Context, req *request.CreateHolidayRequest) (*response.HolidayResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s, expected YYYY-MM-DD", req.Date)
	}

	existing, err := s.repo.Holiday.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check existing holiday: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a holiday already exists on this date")
	}

	holidayType := entity.HolidayTypeHoliday
	if req.Type != "" {
		holidayType = entity.HolidayType(req.Type)
	}

	holiday := &entity.Holiday{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		Date:        utils.DayStart(date),
		Description: req.Description,
		Type:        holidayType,
	}

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.log.Error("Failed to create holiday", zap.Error(err), zap.String("date", req.Date))
		return nil, fmt.Errorf("a holiday already exists on this date")
	}

	s.log.Info("Holiday created",
		zap.String("date", req.Date),
		zap.String("type", string(holidayType)),
	)

	resp := response.HolidayToResponse(holiday)
	return &resp, nil
}

func (s *holidayService) DeleteHoliday(ctx context.Context, holidayID string) error {
	id, err := utils.ParseUUID(holidayID)
	if err != nil {
		return fmt.Errorf("invalid holiday ID format %s: %w", holidayID, err)
	}

	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete holiday %s: %w", holidayID, err)
	}

	s.log.Info("Holiday deleted", zap.String("holiday_id", holidayID))
	return nil
}
