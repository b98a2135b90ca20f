package repository

import (
	"pool-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User            UserRepository
	Session         SessionRepository
	Slot            SlotRepository
	Booking         BookingRepository
	Holiday         HolidayRepository
	PoolStatus      PoolStatusRepository
	Maintenance     MaintenanceRepository
	Notice          NoticeRepository
	CoachAllocation CoachAllocationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:            NewUserRepository(db, log),
		Session:         NewSessionRepository(db, log),
		Slot:            NewSlotRepository(db, log),
		Booking:         NewBookingRepository(db, log),
		Holiday:         NewHolidayRepository(db, log),
		PoolStatus:      NewPoolStatusRepository(db, log),
		Maintenance:     NewMaintenanceRepository(db, log),
		Notice:          NewNoticeRepository(db, log),
		CoachAllocation: NewCoachAllocationRepository(db, log),
	}
}
