package instructor

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines instructor data access
type Repository interface {
	Create(ctx context.Context, ins *Instructor) error
	List(ctx context.Context) ([]*Instructor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Instructor, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, url string) error

	ListWindows(ctx context.Context, instructorID uuid.UUID) ([]*Window, error)
	WindowFor(ctx context.Context, instructorID uuid.UUID, dayOfWeek time.Weekday) (*Window, error)
	CreateWindow(ctx context.Context, w *Window) error
	UpdateWindow(ctx context.Context, w *Window) error
	DeleteWindow(ctx context.Context, instructorID, windowID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates instructor repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const windowColumns = `id, instructor_id, day_of_week,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	is_available`

func (r *repository) Create(ctx context.Context, ins *Instructor) error {
	query := `
		INSERT INTO instructors (id, name, email, bio, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		ins.ID, ins.Name, ins.Email, ins.Bio, ins.PhotoURL, ins.CreatedAt)
	return err
}

func (r *repository) List(ctx context.Context) ([]*Instructor, error) {
	query := `
		SELECT id, name, email, bio, photo_url, created_at
		FROM instructors
		ORDER BY name`

	var instructors []*Instructor
	if err := r.db.SelectContext(ctx, &instructors, query); err != nil {
		return nil, err
	}
	return instructors, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Instructor, error) {
	query := `
		SELECT id, name, email, bio, photo_url, created_at
		FROM instructors
		WHERE id = $1`

	var ins Instructor
	err := r.db.GetContext(ctx, &ins, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *repository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE instructors SET photo_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListWindows(ctx context.Context, instructorID uuid.UUID) ([]*Window, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM availability_windows
		WHERE instructor_id = $1
		ORDER BY day_of_week, start_time`

	var windows []*Window
	if err := r.db.SelectContext(ctx, &windows, query, instructorID); err != nil {
		return nil, err
	}
	return windows, nil
}

// WindowFor returns the authoritative window for the given weekday, or
// nil when none exists. A suppressing row (is_available=false) wins
// over an active one so the day reads as closed.
func (r *repository) WindowFor(ctx context.Context, instructorID uuid.UUID, dayOfWeek time.Weekday) (*Window, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM availability_windows
		WHERE instructor_id = $1 AND day_of_week = $2
		ORDER BY is_available, start_time
		LIMIT 1`

	var w Window
	err := r.db.GetContext(ctx, &w, query, instructorID, int(dayOfWeek))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) CreateWindow(ctx context.Context, w *Window) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if w.IsAvailable {
		overlaps, err := activeOverlapExists(ctx, tx, w, uuid.Nil)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrWindowOverlap
		}
	}

	query := `
		INSERT INTO availability_windows (id, instructor_id, day_of_week, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4::time, $5::time, $6)`

	if _, err := tx.ExecContext(ctx, query,
		w.ID, w.InstructorID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsAvailable); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) UpdateWindow(ctx context.Context, w *Window) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if w.IsAvailable {
		overlaps, err := activeOverlapExists(ctx, tx, w, w.ID)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrWindowOverlap
		}
	}

	query := `
		UPDATE availability_windows
		SET day_of_week = $3, start_time = $4::time, end_time = $5::time, is_available = $6
		WHERE id = $1 AND instructor_id = $2`

	result, err := tx.ExecContext(ctx, query,
		w.ID, w.InstructorID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsAvailable)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrWindowNotFound
	}

	return tx.Commit()
}

func (r *repository) DeleteWindow(ctx context.Context, instructorID, windowID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM availability_windows WHERE id = $1 AND instructor_id = $2`,
		windowID, instructorID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func activeOverlapExists(ctx context.Context, tx *sqlx.Tx, w *Window, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_windows
			WHERE instructor_id = $1
			  AND day_of_week = $2
			  AND is_available = true
			  AND id <> $3
			  AND start_time < $5::time
			  AND end_time > $4::time
		)`

	var exists bool
	err := tx.GetContext(ctx, &exists, query,
		w.InstructorID, w.DayOfWeek, excludeID, w.StartTime, w.EndTime)
	return exists, err
}
