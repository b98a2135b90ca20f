package adaptor

import (
	"pool-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth            *AuthHandler
	User            *UserHandler
	Slot            *SlotHandler
	Booking         *BookingHandler
	Holiday         *HolidayHandler
	Maintenance     *MaintenanceHandler
	Notice          *NoticeHandler
	CoachAllocation *CoachAllocationHandler
	Stats           *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(service.Auth, log),
		User:            NewUserHandler(service.User, log),
		Slot:            NewSlotHandler(service.Slot, log),
		Booking:         NewBookingHandler(service.Booking, log),
		Holiday:         NewHolidayHandler(service.Holiday, log),
		Maintenance:     NewMaintenanceHandler(service.Maintenance, log),
		Notice:          NewNoticeHandler(service.Notice, log),
		CoachAllocation: NewCoachAllocationHandler(service.CoachAllocation, log),
		Stats:           NewStatsHandler(service.Stats, log),
	}
}
