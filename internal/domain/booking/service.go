package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spinacademy/lessons-api/internal/domain/instructor"
	"github.com/spinacademy/lessons-api/internal/domain/pricing"
)

// WindowSource resolves the weekly window for an instructor and
// weekday. Satisfied by instructor.Repository.
type WindowSource interface {
	WindowFor(ctx context.Context, instructorID uuid.UUID, dayOfWeek time.Weekday) (*instructor.Window, error)
}

// PriceResolver turns (tier hours, promo code) into a final price.
// Satisfied by *pricing.Resolver.
type PriceResolver interface {
	Resolve(ctx context.Context, hours int, code string) (*pricing.Quote, error)
}

// Service handles booking business logic
type Service struct {
	repo     Repository
	windows  WindowSource
	resolver PriceResolver
	hub      *Hub
	loc      *time.Location
	now      func() time.Time
}

// NewService creates booking service
func NewService(repo Repository, windows WindowSource, resolver PriceResolver, hub *Hub, loc *time.Location) *Service {
	return &Service{
		repo:     repo,
		windows:  windows,
		resolver: resolver,
		hub:      hub,
		loc:      loc,
		now:      time.Now,
	}
}

// OpenSlots returns the bookable start times for an instructor on a
// date, sized for a lesson of the given tier hours.
func (s *Service) OpenSlots(ctx context.Context, instructorID uuid.UUID, date time.Time, hours int) (*SlotsResponse, error) {
	if _, err := pricing.TierByHours(hours); err != nil {
		return nil, err
	}

	day := s.localDate(date)

	window, err := s.windows.WindowFor(ctx, instructorID, day.Weekday())
	if err != nil {
		return nil, s.storeErr(err)
	}

	bookings, err := s.repo.ListForDay(ctx, instructorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, s.storeErr(err)
	}

	slots := ComputeOpenSlots(window, bookings, day, hours*60, s.loc, s.now())

	return &SlotsResponse{
		InstructorID: instructorID.String(),
		Date:         day.Format("2006-01-02"),
		Hours:        hours,
		Slots:        slots,
	}, nil
}

// CountOpenSlots reports how many one-hour slots are open on a date.
// Backs the instructor catalog's date filter.
func (s *Service) CountOpenSlots(ctx context.Context, instructorID uuid.UUID, date time.Time) (int, error) {
	resp, err := s.OpenSlots(ctx, instructorID, date, 1)
	if err != nil {
		return 0, err
	}
	return len(resp.Slots), nil
}

// Reserve atomically books a slot. The price is locked in from the
// current catalog and promo state; the repository's transaction is
// the single authority on whether the slot was still free.
func (s *Service) Reserve(ctx context.Context, userID uuid.UUID, req *ReserveRequest) (*Response, error) {
	instructorID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return nil, ErrNotFound
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	start = start.In(s.loc)

	now := s.now()
	if !start.After(now) {
		return nil, ErrSlotUnavailable
	}
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return nil, ErrInvalidStartTime
	}

	window, err := s.windows.WindowFor(ctx, instructorID, start.Weekday())
	if err != nil {
		return nil, s.storeErr(err)
	}
	if window == nil || !window.IsAvailable {
		return nil, ErrSlotUnavailable
	}

	startMinutes := start.Hour()*60 + start.Minute()
	if !OnGrid(window, startMinutes) {
		return nil, ErrInvalidStartTime
	}
	duration := req.Hours * 60
	if !fitsWindow(window, startMinutes, duration) {
		return nil, ErrSlotUnavailable
	}

	quote, err := s.resolver.Resolve(ctx, req.Hours, req.PromoCode)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:              uuid.New(),
		UserID:          userID,
		InstructorID:    instructorID,
		Category:        LessonCategory(req.Category),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          StatusPending,
		TotalPrice:      quote.TotalCents,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if quote.PromoCode != "" {
		b.PromoCode = sql.NullString{String: quote.PromoCode, Valid: true}
	}

	if err := s.repo.CreateIfSlotFree(ctx, b); err != nil {
		return nil, s.storeErr(err)
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("instructor_id", instructorID.String()).
		Int64("total_price", b.TotalPrice).
		Msg("booking reserved")

	if s.hub != nil {
		s.hub.Publish(ctx, instructorID, start)
	}

	return toResponse(b), nil
}

// ListByUser returns the caller's bookings, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Response, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.storeErr(err)
	}

	out := make([]*Response, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toResponse(b))
	}
	return out, nil
}

// Get returns one booking, visible to its owner or an admin
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeErr(err)
	}
	if b == nil || (b.UserID != userID && !isAdmin) {
		return nil, ErrNotFound
	}
	return toResponse(b), nil
}

// Cancel cancels a future booking owned by the caller and frees its
// slot.
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.storeErr(err)
	}
	if b == nil || b.UserID != userID {
		return ErrNotFound
	}
	if !b.Cancellable(s.now()) {
		return ErrNotCancellable
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return s.storeErr(err)
	}

	log.Info().Str("booking_id", id.String()).Msg("booking cancelled")

	if s.hub != nil {
		s.hub.Publish(ctx, b.InstructorID, b.StartTime.In(s.loc))
	}
	return nil
}

// localDate normalizes an incoming date to midnight in the school's
// canonical zone.
func (s *Service) localDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// storeErr keeps domain sentinels intact and folds everything else
// into ErrStoreUnavailable so the handler can answer 503.
func (s *Service) storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrNotCancellable),
		errors.Is(err, ErrNotFound),
		errors.Is(err, pricing.ErrPromoExhausted):
		return err
	default:
		log.Error().Err(err).Msg("booking store error")
		return ErrStoreUnavailable
	}
}
