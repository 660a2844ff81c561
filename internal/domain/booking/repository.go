package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/spinacademy/lessons-api/internal/domain/pricing"
)

// Repository defines booking data access
type Repository interface {
	CreateIfSlotFree(ctx context.Context, b *Booking) error
	ListForDay(ctx context.Context, instructorID uuid.UUID, dayStart, dayEnd time.Time) ([]*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db     *sqlx.DB
	promos pricing.PromoRepository
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB, promos pricing.PromoRepository) Repository {
	return &repository{db: db, promos: promos}
}

const bookingColumns = `id, user_id, instructor_id, category, start_time,
	duration_minutes, status, total_price, promo_code, created_at, updated_at`

// CreateIfSlotFree inserts the booking only if its block is still
// free, in one transaction:
//
//  1. take a per-instructor advisory lock so concurrent reservations
//     for the same instructor serialize,
//  2. re-check the block against the instructor's current windows,
//  3. re-check for overlapping blocking bookings,
//  4. insert (the exclusion constraint backstops steps 2-3),
//  5. claim a promo use if the booking carries a code.
//
// Any failed step rolls the whole transaction back, so a promo use is
// never consumed without its booking.
func (r *repository) CreateIfSlotFree(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		b.InstructorID); err != nil {
		return err
	}

	ok, err := r.blockInsideWindow(ctx, tx, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotUnavailable
	}

	taken, err := r.blockOverlaps(ctx, tx, b)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotUnavailable
	}

	insert := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.ExecContext(ctx, insert,
		b.ID, b.UserID, b.InstructorID, b.Category, b.StartTime,
		b.DurationMinutes, b.Status, b.TotalPrice, b.PromoCode,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return ErrSlotUnavailable
		}
		return err
	}

	if b.PromoCode.Valid {
		if err := r.promos.IncrementUsage(ctx, tx, b.PromoCode.String); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// blockInsideWindow checks the booked block against the instructor's
// windows inside the transaction, so a concurrent admin edit cannot
// slip a booking outside a just-shrunk window. A suppressing row for
// the weekday closes the day.
func (r *repository) blockInsideWindow(ctx context.Context, tx *sqlx.Tx, b *Booking) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_windows
			WHERE instructor_id = $1
			  AND day_of_week = $2
			  AND is_available = true
			  AND start_time <= $3::time
			  AND end_time >= $4::time
		) AND NOT EXISTS (
			SELECT 1 FROM availability_windows
			WHERE instructor_id = $1
			  AND day_of_week = $2
			  AND is_available = false
		)`

	start := b.StartTime
	end := b.EndTime()
	var ok bool
	err := tx.GetContext(ctx, &ok, query,
		b.InstructorID,
		int(start.Weekday()),
		start.Format("15:04"),
		end.Format("15:04"))
	return ok, err
}

func (r *repository) blockOverlaps(ctx context.Context, tx *sqlx.Tx, b *Booking) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE instructor_id = $1
			  AND status <> 'cancelled'
			  AND start_time < $3
			  AND start_time + make_interval(mins => duration_minutes) > $2
		)`

	var taken bool
	err := tx.GetContext(ctx, &taken, query, b.InstructorID, b.StartTime, b.EndTime())
	return taken, err
}

func (r *repository) ListForDay(ctx context.Context, instructorID uuid.UUID, dayStart, dayEnd time.Time) ([]*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE instructor_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		  AND status <> 'cancelled'
		ORDER BY start_time`

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, instructorID, dayStart, dayEnd); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_time DESC`

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Cancel flips a still-cancellable booking to cancelled. Zero rows
// affected means it was already cancelled, completed, or started.
func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_time > now()`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotCancellable
	}
	return nil
}
