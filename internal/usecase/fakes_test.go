package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pool-booking/internal/data/entity"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/notify"
	"pool-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the semantics of the SQL layer,
// including the conditional seat reserve and the partial one-per-day
// uniqueness, so service tests exercise the same contracts.

func sameCalendarDay(a, b time.Time) bool {
	return utils.DayStart(a).Equal(utils.DayStart(b))
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByQRCode(ctx context.Context, qrCode string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.QRCode == qrCode {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateQRCode(ctx context.Context, userID uuid.UUID, qrCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.QRCode = qrCode
	}
	return nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *session
	f.sessions[session.Token.String()] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[token]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*entity.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*entity.Slot)}
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeSlotRepo) CreateBatch(ctx context.Context, slots []*entity.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slot := range slots {
		cp := *slot
		f.slots[slot.ID] = &cp
	}
	return nil
}

func (f *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindByDate(ctx context.Context, day time.Time) ([]*entity.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Slot
	for _, s := range f.slots {
		if sameCalendarDay(s.StartTime, day) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeSlotRepo) ExistsOnDay(ctx context.Context, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if sameCalendarDay(s.StartTime, day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) Update(ctx context.Context, slot *entity.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.slots)), nil
}

func (f *fakeSlotRepo) ReserveSeat(ctx context.Context, slotID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.BookedCount >= s.Capacity {
		return false, nil
	}
	s.BookedCount++
	return true, nil
}

func (f *fakeSlotRepo) ReleaseSeat(ctx context.Context, slotID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[slotID]; ok && s.BookedCount > 0 {
		s.BookedCount--
	}
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	slots    *fakeSlotRepo
	users    *fakeUserRepo
}

func newFakeBookingRepo(slots *fakeSlotRepo, users *fakeUserRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		slots:    slots,
		users:    users,
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == booking.UserID && b.SlotID == booking.SlotID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "bookings_user_id_slot_id_key"}
		}
		if b.UserID == booking.UserID && b.Status != entity.BookingStatusCancelled &&
			sameCalendarDay(b.SlotDate, booking.SlotDate) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_one_per_day"}
		}
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) withSlot(b *entity.Booking) *repository.BookingWithSlot {
	slot, _ := f.slots.FindByID(context.Background(), b.SlotID)
	bs := &repository.BookingWithSlot{Booking: *b}
	if slot != nil {
		bs.Slot = *slot
	}
	return bs
}

func (f *fakeBookingRepo) FindByIDWithSlot(ctx context.Context, id uuid.UUID) (*repository.BookingWithSlot, error) {
	f.mu.Lock()
	b, ok := f.bookings[id]
	if !ok {
		f.mu.Unlock()
		return nil, nil
	}
	cp := *b
	f.mu.Unlock()
	return f.withSlot(&cp), nil
}

func (f *fakeBookingRepo) FindByUserIDWithSlot(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*repository.BookingWithSlot, error) {
	f.mu.Lock()
	var own []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			cp := *b
			own = append(own, &cp)
		}
	}
	f.mu.Unlock()

	var out []*repository.BookingWithSlot
	for _, b := range own {
		out = append(out, f.withSlot(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.StartTime.After(out[j].Slot.StartTime) })

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindAttendeesBySlotID(ctx context.Context, slotID uuid.UUID) ([]*entity.User, error) {
	f.mu.Lock()
	var userIDs []uuid.UUID
	for _, b := range f.bookings {
		if b.SlotID == slotID &&
			(b.Status == entity.BookingStatusConfirmed || b.Status == entity.BookingStatusAttended) {
			userIDs = append(userIDs, b.UserID)
		}
	}
	f.mu.Unlock()

	var out []*entity.User
	for _, id := range userIDs {
		if u, _ := f.users.FindByID(ctx, id); u != nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBookingRepo) ExistsActiveOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID && b.Status != entity.BookingStatusCancelled &&
			sameCalendarDay(b.SlotDate, day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) ExistsByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID && b.SlotID == slotID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) FindCurrentWithSlotByUserID(ctx context.Context, userID uuid.UUID, from time.Time) ([]*repository.BookingWithSlot, error) {
	f.mu.Lock()
	var own []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			cp := *b
			own = append(own, &cp)
		}
	}
	f.mu.Unlock()

	var out []*repository.BookingWithSlot
	for _, b := range own {
		bs := f.withSlot(b)
		if bs.Slot.EndTime.Before(from) {
			continue
		}
		out = append(out, bs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.StartTime.Before(out[j].Slot.StartTime) })
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[bookingID]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeBookingRepo) SetReminded(ctx context.Context, bookingID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[bookingID]; ok {
		b.Reminded = true
	}
	return nil
}

func (f *fakeBookingRepo) FindDueRemindersWithSlot(ctx context.Context, windowStart, windowEnd time.Time) ([]*repository.BookingWithSlot, error) {
	f.mu.Lock()
	var due []*entity.Booking
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusConfirmed && !b.Reminded {
			cp := *b
			due = append(due, &cp)
		}
	}
	f.mu.Unlock()

	var out []*repository.BookingWithSlot
	for _, b := range due {
		bs := f.withSlot(b)
		if !bs.Slot.StartTime.Before(windowStart) && !bs.Slot.StartTime.After(windowEnd) {
			out = append(out, bs)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	var candidates []*entity.Booking
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusConfirmed {
			candidates = append(candidates, b)
		}
	}
	f.mu.Unlock()

	var n int64
	for _, b := range candidates {
		slot, _ := f.slots.FindByID(ctx, b.SlotID)
		if slot != nil && slot.EndTime.Before(cutoff) {
			f.mu.Lock()
			b.Status = entity.BookingStatusMissed
			f.mu.Unlock()
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) TopOffenders(ctx context.Context, limit int) ([]repository.OffenderRow, error) {
	f.mu.Lock()
	missed := make(map[uuid.UUID]int64)
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusMissed {
			missed[b.UserID]++
		}
	}
	f.mu.Unlock()

	var rows []repository.OffenderRow
	for id, n := range missed {
		row := repository.OffenderRow{UserID: id, Missed: n}
		if u, _ := f.users.FindByID(ctx, id); u != nil {
			row.Name = u.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Missed > rows[j].Missed })
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeBookingRepo) OccupancyHeatmap(ctx context.Context) ([]repository.HeatmapRow, error) {
	return nil, nil
}

func (f *fakeBookingRepo) TrendingSlots(ctx context.Context, limit int) ([]repository.TrendingRow, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	mu       sync.Mutex
	holidays map[uuid.UUID]*entity.Holiday
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{holidays: make(map[uuid.UUID]*entity.Holiday)}
}

func (f *fakeHolidayRepo) Create(ctx context.Context, holiday *entity.Holiday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.holidays {
		if sameCalendarDay(h.Date, holiday.Date) {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	cp := *holiday
	f.holidays[holiday.ID] = &cp
	return nil
}

func (f *fakeHolidayRepo) FindAll(ctx context.Context) ([]*entity.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Holiday
	for _, h := range f.holidays {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeHolidayRepo) FindByDate(ctx context.Context, day time.Time) (*entity.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.holidays {
		if sameCalendarDay(h.Date, day) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) ExistsOnDay(ctx context.Context, day time.Time) (bool, error) {
	h, err := f.FindByDate(ctx, day)
	return h != nil, err
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.holidays, id)
	return nil
}

type fakePoolStatusRepo struct {
	mu       sync.Mutex
	statuses []*entity.PoolStatus
}

func newFakePoolStatusRepo() *fakePoolStatusRepo {
	return &fakePoolStatusRepo{}
}

func (f *fakePoolStatusRepo) Create(ctx context.Context, status *entity.PoolStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *status
	f.statuses = append(f.statuses, &cp)
	return nil
}

func (f *fakePoolStatusRepo) FindEffectiveOverride(ctx context.Context, now time.Time) (*entity.PoolStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *entity.PoolStatus
	for _, s := range f.statuses {
		if !s.ManualOverride {
			continue
		}
		if s.EffectiveUntil != nil && !s.EffectiveUntil.After(now) {
			continue
		}
		if best == nil || s.CreatedAt.After(best.CreatedAt) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakePoolStatusRepo) ExpireActiveOverrides(ctx context.Context, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.statuses {
		if s.ManualOverride && (s.EffectiveUntil == nil || s.EffectiveUntil.After(now)) {
			expired := now
			s.EffectiveUntil = &expired
		}
	}
	return nil
}

type fakeMaintenanceRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*entity.Maintenance
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{reports: make(map[uuid.UUID]*entity.Maintenance)}
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, report *entity.Maintenance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMaintenanceRepo) FindAll(ctx context.Context, status entity.MaintenanceStatus) ([]*entity.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Maintenance
	for _, r := range f.reports {
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMaintenanceRepo) Update(ctx context.Context, report *entity.Maintenance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MaintenanceStatus, reviewedBy *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reports[id]; ok {
		r.Status = status
		if reviewedBy != nil {
			r.ReviewedBy = reviewedBy
		}
	}
	return nil
}

type fakeNoticeRepo struct {
	mu      sync.Mutex
	notices map[uuid.UUID]*entity.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[uuid.UUID]*entity.Notice)}
}

func (f *fakeNoticeRepo) Create(ctx context.Context, notice *entity.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *notice
	f.notices[notice.ID] = &cp
	return nil
}

func (f *fakeNoticeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.notices[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeNoticeRepo) FindAll(ctx context.Context) ([]*entity.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Notice
	for _, n := range f.notices {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeNoticeRepo) Update(ctx context.Context, notice *entity.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *notice
	f.notices[notice.ID] = &cp
	return nil
}

func (f *fakeNoticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notices, id)
	return nil
}

type fakeCoachAllocationRepo struct {
	mu          sync.Mutex
	allocations map[uuid.UUID]*entity.CoachAllocation
}

func newFakeCoachAllocationRepo() *fakeCoachAllocationRepo {
	return &fakeCoachAllocationRepo{allocations: make(map[uuid.UUID]*entity.CoachAllocation)}
}

func (f *fakeCoachAllocationRepo) Create(ctx context.Context, allocation *entity.CoachAllocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.allocations {
		if sameCalendarDay(a.Date, allocation.Date) {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	cp := *allocation
	f.allocations[allocation.ID] = &cp
	return nil
}

func (f *fakeCoachAllocationRepo) FindByDate(ctx context.Context, day time.Time) (*entity.CoachAllocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.allocations {
		if sameCalendarDay(a.Date, day) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCoachAllocationRepo) FindRange(ctx context.Context, from, to time.Time) ([]*entity.CoachAllocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CoachAllocation
	for _, a := range f.allocations {
		if !a.Date.Before(from) && a.Date.Before(to) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeCoachAllocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.allocations, id)
	return nil
}

// recordingSink captures dispatched events for assertions
type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingSink) Deliver(event notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSink) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Event, len(r.events))
	copy(out, r.events)
	return out
}

type testEnv struct {
	repo     *repository.Repository
	users    *fakeUserRepo
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	holidays *fakeHolidayRepo
	config   *utils.Config
	sink     *recordingSink
	notifier *notify.Dispatcher
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	slots := newFakeSlotRepo()
	bookings := newFakeBookingRepo(slots, users)
	holidays := newFakeHolidayRepo()

	sink := &recordingSink{}
	logger := zap.NewNop()

	return &testEnv{
		repo: &repository.Repository{
			User:            users,
			Session:         newFakeSessionRepo(),
			Slot:            slots,
			Booking:         bookings,
			Holiday:         holidays,
			PoolStatus:      newFakePoolStatusRepo(),
			Maintenance:     newFakeMaintenanceRepo(),
			Notice:          newFakeNoticeRepo(),
			CoachAllocation: newFakeCoachAllocationRepo(),
		},
		users:    users,
		slots:    slots,
		bookings: bookings,
		holidays: holidays,
		config: &utils.Config{
			Session: utils.SessionConfig{ExpiryHours: 24},
			Booking: utils.BookingConfig{VerifyWindowMinutes: 30},
			Generator: utils.GeneratorConfig{
				HorizonDays:     30,
				StartHour:       8,
				EndHour:         17,
				DefaultCapacity: 30,
				IntervalHours:   24,
			},
			Reminder: utils.ReminderConfig{
				IntervalMinutes:    15,
				WindowStartMinutes: 45,
				WindowEndMinutes:   75,
			},
		},
		sink:     sink,
		notifier: notify.NewDispatcher(sink, 1, 64, logger),
	}
}

func (e *testEnv) addUser(role entity.UserRole) *entity.User {
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Test " + string(role),
		Email:        uuid.NewString() + "@example.edu",
		PasswordHash: "x",
		Role:         role,
		QRCode:       utils.GenerateQRCode(),
		IsActive:     true,
	}
	_ = e.users.Create(context.Background(), user)
	return user
}

func (e *testEnv) addSlot(start time.Time, capacity int) *entity.Slot {
	slot := &entity.Slot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Capacity:  capacity,
		Status:    entity.SlotStatusOpen,
	}
	_ = e.slots.Create(context.Background(), slot)
	return slot
}
