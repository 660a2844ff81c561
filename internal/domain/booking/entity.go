package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LessonCategory is the kind of lesson being booked
type LessonCategory string

const (
	CategoryDJ         LessonCategory = "dj"
	CategoryProduction LessonCategory = "production"
)

// Status is the booking lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is one reserved lesson block. TotalPrice is integer cents,
// locked in at reservation time.
type Booking struct {
	ID              uuid.UUID      `db:"id"`
	UserID          uuid.UUID      `db:"user_id"`
	InstructorID    uuid.UUID      `db:"instructor_id"`
	Category        LessonCategory `db:"category"`
	StartTime       time.Time      `db:"start_time"`
	DurationMinutes int            `db:"duration_minutes"`
	Status          Status         `db:"status"`
	TotalPrice      int64          `db:"total_price"`
	PromoCode       sql.NullString `db:"promo_code"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// EndTime returns the exclusive end of the booked block.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Blocks reports whether the booking still occupies its slot.
func (b *Booking) Blocks() bool {
	return b.Status != StatusCancelled
}

// Cancellable reports whether the booking can still be cancelled.
func (b *Booking) Cancellable(now time.Time) bool {
	return (b.Status == StatusPending || b.Status == StatusConfirmed) && b.StartTime.After(now)
}
