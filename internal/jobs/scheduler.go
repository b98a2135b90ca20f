package jobs

import (
	"context"
	"time"

	"pool-booking/internal/usecase"
	"pool-booking/pkg/utils"

	"go.uber.org/zap"
)

// Scheduler runs the periodic background tasks: slot generation, booking
// reminders and the missed-booking sweep.
type Scheduler struct {
	service  *usecase.Service
	config   *utils.Config
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewScheduler(service *usecase.Service, config *utils.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		config:   config,
		logger:   logger.With(zap.String("component", "scheduler")),
		stopChan: make(chan struct{}),
	}
}

// Start launches the background tasks
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runSlotGenerationTask(ctx)
	go s.runReminderTask(ctx)
}

// Stop signals all background tasks to exit
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSlotGenerationTask keeps the booking horizon populated
func (s *Scheduler) runSlotGenerationTask(ctx context.Context) {
	// First run right away so a fresh deployment has slots
	s.generateSlots(ctx)

	ticker := time.NewTicker(time.Duration(s.config.Generator.IntervalHours) * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateSlots(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot generation task cancelled")
			return
		}
	}
}

// runReminderTask sends upcoming-session reminders and reconciles stale
// confirmed bookings on the same cadence
func (s *Scheduler) runReminderTask(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(s.config.Reminder.IntervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendReminders(ctx)
			s.reconcileMissed(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) generateSlots(ctx context.Context) {
	s.logger.Info("Starting automatic slot generation")

	created, err := s.service.Slot.GenerateSlots(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to generate slots", zap.Error(err))
		return
	}

	s.logger.Info("Automatic slot generation completed", zap.Int("created", created))
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	sent, err := s.service.Booking.SendReminders(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to send reminders", zap.Error(err))
		return
	}

	if sent > 0 {
		s.logger.Info("Booking reminders sent", zap.Int("count", sent))
	}
}

func (s *Scheduler) reconcileMissed(ctx context.Context) {
	if _, err := s.service.Booking.ReconcileMissed(ctx, time.Now()); err != nil {
		s.logger.Error("Failed to reconcile missed bookings", zap.Error(err))
	}
}
