package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/dto/request"
	"pool-booking/internal/dto/response"
	"pool-booking/internal/notify"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Postgres unique_violation SQLSTATE
const pgUniqueViolation = "23505"

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID string, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	VerifyBooking(ctx context.Context, req *request.VerifyBookingRequest) (*response.VerifyResponse, error)

	// Background job entry points
	SendReminders(ctx context.Context, now time.Time) (int, error)
	ReconcileMissed(ctx context.Context, now time.Time) (int64, error)
}

type bookingService struct {
	repo     *repository.Repository
	config   *utils.Config
	notifier *notify.Dispatcher
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(repo *repository.Repository, config *utils.Config, notifier *notify.Dispatcher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		config:   config,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", req.SlotID, err)
	}

	// 1. Slot must exist
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("load slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s not found", req.SlotID)
	}

	// 2. Slot must be open for booking
	if slot.Status != entity.SlotStatusOpen {
		return nil, fmt.Errorf("slot is not open for booking")
	}

	// 3. Slots cannot be booked once started
	now := s.now()
	if !now.Before(slot.StartTime) {
		return nil, fmt.Errorf("cannot book a slot that has already started")
	}

	// 4. Facility closed on holidays
	holiday, err := s.repo.Holiday.ExistsOnDay(ctx, slot.StartTime)
	if err != nil {
		return nil, fmt.Errorf("check holiday: %w", err)
	}
	if holiday {
		return nil, fmt.Errorf("the facility is closed on this date")
	}

	// 5. One session per calendar day
	hasBooking, err := s.repo.Booking.ExistsActiveOnDate(ctx, userUUID, slot.StartTime)
	if err != nil {
		return nil, fmt.Errorf("check daily booking: %w", err)
	}
	if hasBooking {
		return nil, fmt.Errorf("you already have a booking for this date")
	}

	// 6. No duplicate booking for the same slot
	duplicate, err := s.repo.Booking.ExistsByUserAndSlot(ctx, userUUID, slotID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate booking: %w", err)
	}
	if duplicate {
		return nil, fmt.Errorf("you have already booked this slot")
	}

	// Load user and backfill a missing QR code (legacy accounts)
	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	if user.QRCode == "" {
		user.QRCode = utils.GenerateQRCode()
		if err := s.repo.User.UpdateQRCode(ctx, user.ID, user.QRCode); err != nil {
			s.log.Error("Failed to backfill user QR code",
				zap.Error(err),
				zap.String("user_id", userID),
			)
			return nil, fmt.Errorf("assign QR code: %w", err)
		}
		s.log.Info("Backfilled missing QR code", zap.String("user_id", userID))
	}

	// 7. Take a seat atomically. The conditional update means two
	// concurrent requests for the last seat cannot both pass.
	reserved, err := s.repo.Slot.ReserveSeat(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("reserve seat: %w", err)
	}
	if !reserved {
		return nil, fmt.Errorf("slot is fully booked")
	}

	// Create booking record
	bookingNow := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: bookingNow,
			UpdatedAt: bookingNow,
		},
		UserID:   userUUID,
		SlotID:   slotID,
		SlotDate: utils.DayStart(slot.StartTime),
		Status:   entity.BookingStatusConfirmed,
		QRCode:   user.QRCode,
		Reminded: false,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Unique indexes backstop duplicate and same-day races, give the
		// seat back when the insert loses
		if relErr := s.repo.Slot.ReleaseSeat(ctx, slotID); relErr != nil {
			s.log.Error("Failed to release seat after booking insert failure",
				zap.Error(relErr),
				zap.String("slot_id", req.SlotID),
			)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("slot_id", req.SlotID),
		)

		// Only a real unique violation is a booking conflict, anything
		// else stays a server error
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "one_per_day") {
				return nil, fmt.Errorf("you already have a booking for this date")
			}
			return nil, fmt.Errorf("you have already booked this slot")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("slot_id", req.SlotID),
		zap.Time("start_time", slot.StartTime),
	)

	// Fire-and-forget confirmation
	s.notifier.Enqueue(notify.Event{
		Kind:    notify.KindBookingConfirmed,
		UserID:  user.ID.String(),
		Email:   user.Email,
		Name:    user.Name,
		Subject: "Pool booking confirmed",
		Message: fmt.Sprintf("Your session on %s from %s to %s is confirmed.",
			slot.StartTime.Format("2006-01-02"),
			slot.StartTime.Format("15:04"),
			slot.EndTime.Format("15:04")),
	})

	resp := response.BookingToResponse(booking, slot)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID string, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	bs, err := s.repo.Booking.FindByIDWithSlot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if bs == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	// Owner only
	if bs.Booking.UserID != userUUID {
		return nil, fmt.Errorf("not authorized to cancel this booking")
	}

	switch bs.Booking.Status {
	case entity.BookingStatusCancelled:
		return nil, fmt.Errorf("booking is already cancelled")
	case entity.BookingStatusAttended:
		return nil, fmt.Errorf("cannot cancel a booking that was already attended")
	case entity.BookingStatusMissed:
		return nil, fmt.Errorf("cannot cancel a booking that was already missed")
	}

	if s.now().After(bs.Slot.EndTime) {
		return nil, fmt.Errorf("cannot cancel a booking after the slot has ended")
	}

	ok, err := s.repo.Booking.UpdateStatusIf(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !ok {
		return nil, fmt.Errorf("booking is already cancelled")
	}

	if err := s.repo.Slot.ReleaseSeat(ctx, bs.Booking.SlotID); err != nil {
		s.log.Error("Failed to release seat on cancellation",
			zap.Error(err),
			zap.String("slot_id", bs.Booking.SlotID.String()),
		)
		// Booking is already cancelled, do not fail the request
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
	)

	user, _ := s.repo.User.FindByID(ctx, userUUID)
	if user != nil {
		s.notifier.Enqueue(notify.Event{
			Kind:    notify.KindBookingCancelled,
			UserID:  user.ID.String(),
			Email:   user.Email,
			Name:    user.Name,
			Subject: "Pool booking cancelled",
			Message: fmt.Sprintf("Your session on %s at %s was cancelled.",
				bs.Slot.StartTime.Format("2006-01-02"),
				bs.Slot.StartTime.Format("15:04")),
		})
	}

	bs.Booking.Status = entity.BookingStatusCancelled
	resp := response.BookingToResponse(&bs.Booking, &bs.Slot)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserIDWithSlot(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	// Hide cancelled bookings whose slot has already passed, they are
	// noise in the history view
	now := s.now()
	bookingResponses := make([]response.BookingResponse, 0, len(bookings))
	for _, bs := range bookings {
		if bs.Booking.Status == entity.BookingStatusCancelled && bs.Slot.EndTime.Before(now) {
			continue
		}
		bookingResponses = append(bookingResponses, response.BookingToResponse(&bs.Booking, &bs.Slot))
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) VerifyBooking(ctx context.Context, req *request.VerifyBookingRequest) (*response.VerifyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.QRCodeData == "" && req.BookingID == "" {
		return nil, fmt.Errorf("validation failed: provide qrCodeData or bookingId")
	}

	var target *repository.BookingWithSlot
	var user *entity.User

	if req.QRCodeData != "" {
		code := utils.NormalizeQRCode(req.QRCodeData)

		var err error
		user, err = s.repo.User.FindByQRCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("look up QR code: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("QR code not recognized")
		}

		now := s.now()
		bookings, err := s.repo.Booking.FindCurrentWithSlotByUserID(ctx, user.ID, now)
		if err != nil {
			return nil, fmt.Errorf("load current bookings: %w", err)
		}

		// Acceptance window: slot start minus the grace period through
		// slot end. A non-confirmed booking in window still surfaces its
		// state so a double scan gets a conflict, not "nothing scheduled".
		grace := time.Duration(s.config.Booking.VerifyWindowMinutes) * time.Minute
		var inWindow *repository.BookingWithSlot
		for _, bs := range bookings {
			windowStart := bs.Slot.StartTime.Add(-grace)
			if now.Before(windowStart) || now.After(bs.Slot.EndTime) {
				continue
			}
			if bs.Booking.Status == entity.BookingStatusConfirmed {
				target = bs
				break
			}
			if inWindow == nil {
				inWindow = bs
			}
		}

		if target == nil {
			if inWindow != nil {
				switch inWindow.Booking.Status {
				case entity.BookingStatusAttended:
					return nil, fmt.Errorf("booking has already been verified")
				case entity.BookingStatusCancelled:
					return nil, fmt.Errorf("booking was cancelled and cannot be verified")
				case entity.BookingStatusMissed:
					return nil, fmt.Errorf("booking was marked as missed and cannot be verified")
				}
			}
			return nil, fmt.Errorf("no booking scheduled for the current time")
		}
	} else {
		// Administrative override path, no time window
		id, err := uuid.Parse(req.BookingID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
		}

		target, err = s.repo.Booking.FindByIDWithSlot(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load booking: %w", err)
		}
		if target == nil {
			return nil, fmt.Errorf("booking %s not found", req.BookingID)
		}

		switch target.Booking.Status {
		case entity.BookingStatusCancelled:
			return nil, fmt.Errorf("booking was cancelled and cannot be verified")
		case entity.BookingStatusAttended:
			return nil, fmt.Errorf("booking has already been verified")
		case entity.BookingStatusMissed:
			return nil, fmt.Errorf("booking was marked as missed and cannot be verified")
		}

		user, err = s.repo.User.FindByID(ctx, target.Booking.UserID)
		if err != nil || user == nil {
			return nil, fmt.Errorf("user for booking %s not found", req.BookingID)
		}
	}

	// Compare-and-set so a double scan cannot attend twice
	ok, err := s.repo.Booking.UpdateStatusIf(ctx, target.Booking.ID, entity.BookingStatusConfirmed, entity.BookingStatusAttended)
	if err != nil {
		return nil, fmt.Errorf("verify booking %s: %w", target.Booking.ID.String(), err)
	}
	if !ok {
		return nil, fmt.Errorf("booking has already been verified")
	}

	s.log.Info("Booking verified",
		zap.String("booking_id", target.Booking.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	return &response.VerifyResponse{
		Success:  true,
		Message:  "Attendance recorded",
		UserName: user.Name,
		SlotRange: fmt.Sprintf("%s - %s on %s",
			target.Slot.StartTime.Format("15:04"),
			target.Slot.EndTime.Format("15:04"),
			target.Slot.StartTime.Format("2006-01-02")),
	}, nil
}

// SendReminders fires one-time notifications for confirmed bookings whose
// slot starts roughly an hour out. The window is wider than the run
// interval so every qualifying booking is caught by at least one run; the
// reminded flag keeps delivery at-most-once.
func (s *bookingService) SendReminders(ctx context.Context, now time.Time) (int, error) {
	windowStart := now.Add(time.Duration(s.config.Reminder.WindowStartMinutes) * time.Minute)
	windowEnd := now.Add(time.Duration(s.config.Reminder.WindowEndMinutes) * time.Minute)

	due, err := s.repo.Booking.FindDueRemindersWithSlot(ctx, windowStart, windowEnd)
	if err != nil {
		return 0, fmt.Errorf("find due reminders: %w", err)
	}

	sent := 0
	for _, bs := range due {
		user, err := s.repo.User.FindByID(ctx, bs.Booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("Skipping reminder, user not found",
				zap.String("booking_id", bs.Booking.ID.String()),
			)
			continue
		}

		s.notifier.Enqueue(notify.Event{
			Kind:    notify.KindBookingReminder,
			UserID:  user.ID.String(),
			Email:   user.Email,
			Name:    user.Name,
			Subject: "Pool session reminder",
			Message: fmt.Sprintf("Your session starts at %s. Bring your QR code %s for check-in.",
				bs.Slot.StartTime.Format("15:04"), user.QRCode),
		})

		if err := s.repo.Booking.SetReminded(ctx, bs.Booking.ID); err != nil {
			s.log.Error("Failed to mark booking reminded",
				zap.Error(err),
				zap.String("booking_id", bs.Booking.ID.String()),
			)
			continue
		}
		sent++
	}

	return sent, nil
}

// ReconcileMissed transitions stale confirmed bookings to their terminal
// missed state once the slot has fully elapsed
func (s *bookingService) ReconcileMissed(ctx context.Context, now time.Time) (int64, error) {
	marked, err := s.repo.Booking.MarkMissedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		s.log.Info("Marked stale bookings as missed", zap.Int64("count", marked))
	}

	return marked, nil
}
