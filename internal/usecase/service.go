package usecase

import (
	"pool-booking/internal/data/repository"
	"pool-booking/internal/notify"
	"pool-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth            AuthService
	User            UserService
	Slot            SlotService
	Booking         BookingService
	Holiday         HolidayService
	Maintenance     MaintenanceService
	Notice          NoticeService
	CoachAllocation CoachAllocationService
	Stats           StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier *notify.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Auth:            NewAuthService(repo, config, log),
		User:            NewUserService(repo, log),
		Slot:            NewSlotService(repo, config, log),
		Booking:         NewBookingService(repo, config, notifier, log),
		Holiday:         NewHolidayService(repo, log),
		Maintenance:     NewMaintenanceService(repo, log),
		Notice:          NewNoticeService(repo, log),
		CoachAllocation: NewCoachAllocationService(repo, log),
		Stats:           NewStatsService(repo, log),
	}
}
