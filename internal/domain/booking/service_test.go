package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spinacademy/lessons-api/internal/domain/instructor"
	"github.com/spinacademy/lessons-api/internal/domain/pricing"
)

type repoStub struct {
	bookings  []*Booking
	createErr error
}

func (r *repoStub) CreateIfSlotFree(_ context.Context, b *Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *repoStub) ListForDay(_ context.Context, instructorID uuid.UUID, dayStart, dayEnd time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.InstructorID == instructorID && !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *repoStub) ListByUser(_ context.Context, userID uuid.UUID) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *repoStub) Cancel(_ context.Context, id uuid.UUID) error {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = StatusCancelled
			return nil
		}
	}
	return ErrNotCancellable
}

type windowStub struct {
	window *instructor.Window
}

func (w *windowStub) WindowFor(_ context.Context, _ uuid.UUID, _ time.Weekday) (*instructor.Window, error) {
	return w.window, nil
}

type resolverStub struct{}

func (resolverStub) Resolve(_ context.Context, hours int, code string) (*pricing.Quote, error) {
	tier, err := pricing.TierByHours(hours)
	if err != nil {
		return nil, err
	}
	quote := &pricing.Quote{Hours: hours, BaseCents: tier.PriceCents, TotalCents: tier.PriceCents}
	if code == "SAVE10" {
		quote.PromoCode = code
		quote.DiscountPercent = 10
		quote.TotalCents = tier.PriceCents * 90 / 100
	}
	return quote, nil
}

func newTestService(repo Repository, window *instructor.Window) *Service {
	svc := NewService(repo, &windowStub{window: window}, resolverStub{}, nil, time.UTC)
	svc.now = func() time.Time { return testNow }
	return svc
}

func reserveReq(start string, hours int) *ReserveRequest {
	return &ReserveRequest{
		InstructorID: uuid.New().String(),
		Category:     "dj",
		StartTime:    start,
		Hours:        hours,
	}
}

func TestReserveHappyPath(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))
	userID := uuid.New()

	resp, err := svc.Reserve(context.Background(), userID, reserveReq("2026-09-07T09:00:00Z", 2))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Status != string(StatusPending) {
		t.Fatalf("expected pending booking, got %s", resp.Status)
	}
	if resp.TotalCents != 18000 {
		t.Fatalf("expected 18000 cents, got %d", resp.TotalCents)
	}
	if len(repo.bookings) != 1 || repo.bookings[0].UserID != userID {
		t.Fatal("expected one booking stored for the caller")
	}
}

func TestReserveAppliesPromo(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	req := reserveReq("2026-09-07T09:00:00Z", 2)
	req.PromoCode = "SAVE10"

	resp, err := svc.Reserve(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.TotalCents != 16200 {
		t.Fatalf("expected 16200 cents, got %d", resp.TotalCents)
	}
	if !repo.bookings[0].PromoCode.Valid {
		t.Fatal("expected promo code recorded on booking")
	}
}

func TestReserveSlotTaken(t *testing.T) {
	repo := &repoStub{createErr: ErrSlotUnavailable}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-09-07T09:00:00Z", 1))
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestReserveInvalidTier(t *testing.T) {
	svc := newTestService(&repoStub{}, mondayWindow("09:00", "12:00"))

	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-09-07T09:00:00Z", 3))
	if !errors.Is(err, pricing.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}

func TestReserveMisalignedStart(t *testing.T) {
	svc := newTestService(&repoStub{}, mondayWindow("09:00", "12:00"))

	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-09-07T09:30:00Z", 1))
	if !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
}

func TestReserveOutsideWindow(t *testing.T) {
	svc := newTestService(&repoStub{}, mondayWindow("09:00", "12:00"))

	// aligned but the 2h block spills past the window end
	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-09-07T11:00:00Z", 2))
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestReservePastStart(t *testing.T) {
	svc := newTestService(&repoStub{}, mondayWindow("09:00", "12:00"))

	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-08-24T09:00:00Z", 1))
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestReservePromoExhaustedLeavesNoBooking(t *testing.T) {
	repo := &repoStub{createErr: pricing.ErrPromoExhausted}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	req := reserveReq("2026-09-07T09:00:00Z", 2)
	req.PromoCode = "SAVE10"

	_, err := svc.Reserve(context.Background(), uuid.New(), req)
	if !errors.Is(err, pricing.ErrPromoExhausted) {
		t.Fatalf("expected ErrPromoExhausted, got %v", err)
	}
	if len(repo.bookings) != 0 {
		t.Fatal("expected no booking stored after promo failure")
	}
}

func TestReserveStoreDown(t *testing.T) {
	repo := &repoStub{createErr: errors.New("connection refused")}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	_, err := svc.Reserve(context.Background(), uuid.New(), reserveReq("2026-09-07T09:00:00Z", 1))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCancelNotOwner(t *testing.T) {
	owner := uuid.New()
	b := &Booking{ID: uuid.New(), UserID: owner, StartTime: testNow.Add(48 * time.Hour), Status: StatusPending}
	repo := &repoStub{bookings: []*Booking{b}}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	if err := svc.Cancel(context.Background(), b.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign booking, got %v", err)
	}
}

func TestCancelPastBooking(t *testing.T) {
	owner := uuid.New()
	b := &Booking{ID: uuid.New(), UserID: owner, StartTime: testNow.Add(-time.Hour), Status: StatusPending}
	repo := &repoStub{bookings: []*Booking{b}}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	if err := svc.Cancel(context.Background(), b.ID, owner); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	owner := uuid.New()
	instructorID := uuid.New()
	b := &Booking{
		ID:              uuid.New(),
		UserID:          owner,
		InstructorID:    instructorID,
		StartTime:       testMonday.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          StatusPending,
	}
	repo := &repoStub{bookings: []*Booking{b}}
	svc := newTestService(repo, mondayWindow("09:00", "12:00"))

	if err := svc.Cancel(context.Background(), b.ID, owner); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	resp, err := svc.OpenSlots(context.Background(), instructorID, testMonday, 1)
	if err != nil {
		t.Fatalf("open slots: %v", err)
	}
	if len(resp.Slots) != 3 {
		t.Fatalf("expected all 3 slots free after cancel, got %v", resp.Slots)
	}
}
