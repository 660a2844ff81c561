package instructor

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Instructor represents a teacher offering lessons
type Instructor struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Bio       sql.NullString `db:"bio"`
	PhotoURL  sql.NullString `db:"photo_url"`
	CreatedAt time.Time      `db:"created_at"`
}

// Window represents one recurring weekly opening for an instructor.
// Times are time-of-day without a date, rendered as HH:MM in the
// school's canonical zone. A row with IsAvailable=false suppresses
// the whole day.
type Window struct {
	ID           uuid.UUID `db:"id"`
	InstructorID uuid.UUID `db:"instructor_id"`
	DayOfWeek    int       `db:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime    string    `db:"start_time"`  // HH:MM
	EndTime      string    `db:"end_time"`    // HH:MM
	IsAvailable  bool      `db:"is_available"`
}

// StartMinutes returns the window start as minutes since midnight.
func (w *Window) StartMinutes() int {
	m, _ := ParseClock(w.StartTime)
	return m
}

// EndMinutes returns the window end as minutes since midnight.
func (w *Window) EndMinutes() int {
	m, _ := ParseClock(w.EndTime)
	return m
}

// ParseClock parses an HH:MM time of day into minutes since midnight.
func ParseClock(s string) (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return hh*60 + mm, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
