package instructor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type repoStub struct {
	instructors map[uuid.UUID]*Instructor
	windows     []*Window
}

func (r *repoStub) Create(_ context.Context, ins *Instructor) error {
	if r.instructors == nil {
		r.instructors = map[uuid.UUID]*Instructor{}
	}
	r.instructors[ins.ID] = ins
	return nil
}

func (r *repoStub) List(_ context.Context) ([]*Instructor, error) {
	out := make([]*Instructor, 0, len(r.instructors))
	for _, ins := range r.instructors {
		out = append(out, ins)
	}
	return out, nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Instructor, error) {
	return r.instructors[id], nil
}

func (r *repoStub) UpdatePhotoURL(_ context.Context, id uuid.UUID, url string) error {
	return nil
}

func (r *repoStub) ListWindows(_ context.Context, instructorID uuid.UUID) ([]*Window, error) {
	var out []*Window
	for _, w := range r.windows {
		if w.InstructorID == instructorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *repoStub) WindowFor(_ context.Context, instructorID uuid.UUID, day time.Weekday) (*Window, error) {
	for _, w := range r.windows {
		if w.InstructorID == instructorID && w.DayOfWeek == int(day) {
			return w, nil
		}
	}
	return nil, nil
}

func (r *repoStub) CreateWindow(_ context.Context, w *Window) error {
	for _, existing := range r.windows {
		if existing.InstructorID == w.InstructorID &&
			existing.DayOfWeek == w.DayOfWeek &&
			existing.IsAvailable && w.IsAvailable &&
			existing.StartMinutes() < w.EndMinutes() &&
			existing.EndMinutes() > w.StartMinutes() {
			return ErrWindowOverlap
		}
	}
	r.windows = append(r.windows, w)
	return nil
}

func (r *repoStub) UpdateWindow(_ context.Context, w *Window) error { return nil }

func (r *repoStub) DeleteWindow(_ context.Context, instructorID, windowID uuid.UUID) error {
	return nil
}

func seededRepo(t *testing.T) (*repoStub, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	return &repoStub{instructors: map[uuid.UUID]*Instructor{
		id: {ID: id, Name: "Dana", Email: "dana@example.com"},
	}}, id
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreateWindowRejectsInvertedTimes(t *testing.T) {
	repo, id := seededRepo(t)
	svc := NewService(repo, nil)

	_, err := svc.CreateWindow(context.Background(), id, &WindowRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "12:00",
		EndTime:     "09:00",
		IsAvailable: boolPtr(true),
	})
	if err != ErrInvalidWindow {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestCreateWindowRejectsOverlap(t *testing.T) {
	repo, id := seededRepo(t)
	svc := NewService(repo, nil)

	first := &WindowRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: boolPtr(true),
	}
	if _, err := svc.CreateWindow(context.Background(), id, first); err != nil {
		t.Fatalf("first window: %v", err)
	}

	overlapping := &WindowRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "11:00",
		EndTime:     "14:00",
		IsAvailable: boolPtr(true),
	}
	if _, err := svc.CreateWindow(context.Background(), id, overlapping); err != ErrWindowOverlap {
		t.Fatalf("expected ErrWindowOverlap, got %v", err)
	}
}

func TestCreateWindowAllowsAdjacentDays(t *testing.T) {
	repo, id := seededRepo(t)
	svc := NewService(repo, nil)

	monday := &WindowRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: boolPtr(true),
	}
	tuesday := &WindowRequest{
		DayOfWeek:   intPtr(2),
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: boolPtr(true),
	}
	if _, err := svc.CreateWindow(context.Background(), id, monday); err != nil {
		t.Fatalf("monday: %v", err)
	}
	if _, err := svc.CreateWindow(context.Background(), id, tuesday); err != nil {
		t.Fatalf("tuesday: %v", err)
	}
}

func TestCreateWindowUnknownInstructor(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	_, err := svc.CreateWindow(context.Background(), uuid.New(), &WindowRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: boolPtr(true),
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.minutes {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.minutes)
		}
	}
}
