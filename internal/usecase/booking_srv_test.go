package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/dto/request"
	"pool-booking/internal/notify"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingServiceForTest(env *testEnv, now time.Time) *bookingService {
	s := NewBookingService(env.repo, env.config, env.notifier, zap.NewNop()).(*bookingService)
	s.now = func() time.Time { return now }
	return s
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local) // a Monday

	t.Run("books an open future slot", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(3*time.Hour), 10)

		resp, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, string(entity.BookingStatusConfirmed), string(resp.Status))

		updated, _ := env.slots.FindByID(ctx, slot.ID)
		assert.Equal(t, 1, updated.BookedCount)
	})

	t.Run("rejects unknown slot", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: uuid.NewString()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("rejects a slot that is not open", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(3*time.Hour), 10)
		slot.Status = entity.SlotStatusMaintenance
		require.NoError(t, env.slots.Update(ctx, slot))

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not open")
	})

	t.Run("rejects a slot that has already started", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(-10*time.Minute), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already started")
	})

	t.Run("rejects booking on a holiday", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(3*time.Hour), 10)

		holiday := &entity.Holiday{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Date:        utils.DayStart(slot.StartTime),
			Description: "Founders Day",
			Type:        entity.HolidayTypeHoliday,
		}
		require.NoError(t, env.holidays.Create(ctx, holiday))

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "closed on this date")
	})

	t.Run("enforces one session per day", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		first := env.addSlot(now.Add(2*time.Hour), 10)
		second := env.addSlot(now.Add(4*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: first.ID.String()})
		require.NoError(t, err)

		_, err = svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: second.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already have a booking for this date")
	})

	t.Run("allows rebooking the same day after cancelling", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		first := env.addSlot(now.Add(2*time.Hour), 10)
		second := env.addSlot(now.Add(4*time.Hour), 10)

		created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: first.ID.String()})
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, user.ID.String(), created.ID)
		require.NoError(t, err)

		_, err = svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: second.ID.String()})
		require.NoError(t, err)
	})

	t.Run("rejects the booking beyond capacity", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		slot := env.addSlot(now.Add(3*time.Hour), 30)

		for i := 0; i < 30; i++ {
			user := env.addUser(entity.RoleStudent)
			_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
			require.NoError(t, err, "booking %d should succeed", i+1)
		}

		extra := env.addUser(entity.RoleStudent)
		_, err := svc.CreateBooking(ctx, extra.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fully booked")

		updated, _ := env.slots.FindByID(ctx, slot.ID)
		assert.Equal(t, 30, updated.BookedCount)
	})

	t.Run("backfills a missing QR code", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		user.QRCode = ""
		require.NoError(t, env.users.Update(ctx, user))
		slot := env.addSlot(now.Add(3*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		updated, _ := env.users.FindByID(ctx, user.ID)
		assert.NotEmpty(t, updated.QRCode)
	})

	t.Run("surfaces a transient insert failure as a server error", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(3*time.Hour), 10)

		env.repo.Booking = &unstableBookingRepo{
			BookingRepository: env.bookings,
			createErr:         errors.New("connection reset by peer"),
		}

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "already")

		// The reserved seat must be given back
		updated, _ := env.slots.FindByID(ctx, slot.ID)
		assert.Equal(t, 0, updated.BookedCount)
	})

	t.Run("losing the one-per-day insert race reports a conflict", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		first := env.addSlot(now.Add(2*time.Hour), 10)
		second := env.addSlot(now.Add(4*time.Hour), 10)

		// Blind the precondition so the unique index is what stops the
		// second insert, as it would under concurrency
		env.repo.Booking = &unstableBookingRepo{
			BookingRepository: env.bookings,
			skipDateCheck:     true,
		}

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: first.ID.String()})
		require.NoError(t, err)

		_, err = svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: second.ID.String()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already have a booking for this date")

		updated, _ := env.slots.FindByID(ctx, second.ID)
		assert.Equal(t, 0, updated.BookedCount)
	})
}

// unstableBookingRepo wraps the fake to inject insert failures and to
// bypass the one-per-day precondition
type unstableBookingRepo struct {
	repository.BookingRepository
	createErr     error
	skipDateCheck bool
}

func (r *unstableBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.BookingRepository.Create(ctx, booking)
}

func (r *unstableBookingRepo) ExistsActiveOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	if r.skipDateCheck {
		return false, nil
	}
	return r.BookingRepository.ExistsActiveOnDate(ctx, userID, day)
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	setup := func(t *testing.T) (*testEnv, *bookingService, *entity.User, string, *entity.Slot) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, now)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(now.Add(3*time.Hour), 10)
		created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)
		return env, svc, user, created.ID, slot
	}

	t.Run("releases the seat", func(t *testing.T) {
		env, svc, user, bookingID, slot := setup(t)

		resp, err := svc.CancelBooking(ctx, user.ID.String(), bookingID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.BookingStatusCancelled), string(resp.Status))

		updated, _ := env.slots.FindByID(ctx, slot.ID)
		assert.Equal(t, 0, updated.BookedCount)
	})

	t.Run("rejects cancelling someone else's booking", func(t *testing.T) {
		env, svc, _, bookingID, _ := setup(t)
		other := env.addUser(entity.RoleStudent)

		_, err := svc.CancelBooking(ctx, other.ID.String(), bookingID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not authorized")
	})

	t.Run("rejects double cancellation", func(t *testing.T) {
		_, svc, user, bookingID, _ := setup(t)

		_, err := svc.CancelBooking(ctx, user.ID.String(), bookingID)
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, user.ID.String(), bookingID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already cancelled")
	})

	t.Run("rejects cancelling an attended booking", func(t *testing.T) {
		env, svc, user, bookingID, _ := setup(t)
		id, _ := uuid.Parse(bookingID)
		_, err := env.bookings.UpdateStatusIf(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusAttended)
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, user.ID.String(), bookingID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already attended")
	})
}

func TestVerifyBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a scan shortly before the slot", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		// 20 minutes before the slot starts, inside the grace window
		svc.now = func() time.Time { return slot.StartTime.Add(-20 * time.Minute) }

		resp, err := svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: user.QRCode})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, user.Name, resp.UserName)
	})

	t.Run("rejects a scan well before the window", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		// 90 minutes early, outside the 30 minute grace window
		svc.now = func() time.Time { return slot.StartTime.Add(-90 * time.Minute) }

		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: user.QRCode})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no booking scheduled")
	})

	t.Run("rejects an unknown QR code", func(t *testing.T) {
		env := newTestEnv()
		svc := newBookingServiceForTest(env, time.Now())

		_, err := svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: "POOL-ZZZZZZZZ"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not recognized")
	})

	t.Run("normalizes scanned codes", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		svc.now = func() time.Time { return slot.StartTime.Add(-5 * time.Minute) }

		scanned := "  " + strings.ToLower(user.QRCode) + "  "
		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: scanned})
		require.NoError(t, err)
	})

	t.Run("second scan of the same booking fails", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		_, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		svc.now = func() time.Time { return slot.StartTime.Add(-5 * time.Minute) }

		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: user.QRCode})
		require.NoError(t, err)

		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: user.QRCode})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already been verified")
	})

	t.Run("scan of a cancelled booking reports the cancellation", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)
		_, err = svc.CancelBooking(ctx, user.ID.String(), created.ID)
		require.NoError(t, err)

		svc.now = func() time.Time { return slot.StartTime.Add(-5 * time.Minute) }

		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{QRCodeData: user.QRCode})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})

	t.Run("bookingId path skips the time window", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)

		// Hours before the window opens
		svc.now = func() time.Time { return slot.StartTime.Add(-3 * time.Hour) }

		resp, err := svc.VerifyBooking(ctx, &request.VerifyBookingRequest{BookingID: created.ID})
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("bookingId path rejects a cancelled booking", func(t *testing.T) {
		env := newTestEnv()
		bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
		svc := newBookingServiceForTest(env, bookingTime)
		user := env.addUser(entity.RoleStudent)
		slot := env.addSlot(bookingTime.Add(3*time.Hour), 10)

		created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
		require.NoError(t, err)
		_, err = svc.CancelBooking(ctx, user.ID.String(), created.ID)
		require.NoError(t, err)

		_, err = svc.VerifyBooking(ctx, &request.VerifyBookingRequest{BookingID: created.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})
}

func TestSendReminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	env := newTestEnv()
	svc := newBookingServiceForTest(env, now)
	user := env.addUser(entity.RoleStudent)

	// Starts in one hour, inside the reminder window
	slot := env.addSlot(now.Add(time.Hour), 10)
	created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)

	sent, err := svc.SendReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	id, _ := uuid.Parse(created.ID)
	booking, _ := env.bookings.FindByID(ctx, id)
	assert.True(t, booking.Reminded)

	// A second sweep finds nothing new
	sent, err = svc.SendReminders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	// Drain the dispatcher and check a reminder event went out
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	env.notifier.Shutdown(shutdownCtx)

	kinds := make(map[string]int)
	for _, e := range env.sink.Events() {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[notify.KindBookingReminder])
	assert.Equal(t, 1, kinds[notify.KindBookingConfirmed])
}

func TestReconcileMissed(t *testing.T) {
	ctx := context.Background()
	bookingTime := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	env := newTestEnv()
	svc := newBookingServiceForTest(env, bookingTime)
	user := env.addUser(entity.RoleStudent)
	slot := env.addSlot(bookingTime.Add(time.Hour), 10)

	created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)

	// Before the slot ends nothing is swept
	marked, err := svc.ReconcileMissed(ctx, slot.EndTime.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked)

	// After the slot ends the unverified booking becomes missed
	marked, err = svc.ReconcileMissed(ctx, slot.EndTime.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	id, _ := uuid.Parse(created.ID)
	booking, _ := env.bookings.FindByID(ctx, id)
	assert.Equal(t, entity.BookingStatusMissed, booking.Status)
}

func TestGetUserBookingsHidesStaleCancellations(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

	env := newTestEnv()
	svc := newBookingServiceForTest(env, now)
	user := env.addUser(entity.RoleStudent)
	slot := env.addSlot(now.Add(time.Hour), 10)

	created, err := svc.CreateBooking(ctx, user.ID.String(), &request.CreateBookingRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, user.ID.String(), created.ID)
	require.NoError(t, err)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	// While the slot is still upcoming the cancelled booking shows
	resp, err := svc.GetUserBookings(ctx, user.ID.String(), page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)

	// Once the slot has passed it disappears from history
	svc.now = func() time.Time { return slot.EndTime.Add(time.Hour) }
	resp, err = svc.GetUserBookings(ctx, user.ID.String(), page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 0)
}
