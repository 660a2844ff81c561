package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spinacademy/lessons-api/internal/domain/instructor"
)

var (
	testLoc = time.UTC
	// a Monday well in the future relative to testNow
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
)

func mondayWindow(start, end string) *instructor.Window {
	return &instructor.Window{
		ID:           uuid.New(),
		InstructorID: uuid.New(),
		DayOfWeek:    1,
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  true,
	}
}

func bookingAt(hour, durationMinutes int) *Booking {
	return &Booking{
		ID:              uuid.New(),
		StartTime:       testMonday.Add(time.Duration(hour) * time.Hour),
		DurationMinutes: durationMinutes,
		Status:          StatusPending,
	}
}

func TestComputeOpenSlotsSkipsBookedHour(t *testing.T) {
	window := mondayWindow("09:00", "12:00")
	booked := []*Booking{bookingAt(10, 60)}

	got := ComputeOpenSlots(window, booked, testMonday, 60, testLoc, testNow)
	want := []string{"09:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComputeOpenSlotsFullDurationMustFit(t *testing.T) {
	window := mondayWindow("09:00", "12:00")

	got := ComputeOpenSlots(window, nil, testMonday, 120, testLoc, testNow)
	want := []string{"09:00", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComputeOpenSlotsTwoHourBlockedByMidBooking(t *testing.T) {
	window := mondayWindow("09:00", "12:00")
	booked := []*Booking{bookingAt(10, 60)}

	got := ComputeOpenSlots(window, booked, testMonday, 120, testLoc, testNow)
	if len(got) != 0 {
		t.Fatalf("expected no 2h slots around a 10:00 booking, got %v", got)
	}
}

func TestComputeOpenSlotsLastCandidateEndsAtWindowEnd(t *testing.T) {
	window := mondayWindow("09:00", "18:00")

	got := ComputeOpenSlots(window, nil, testMonday, 60, testLoc, testNow)
	if len(got) != 9 {
		t.Fatalf("expected 9 slots, got %d: %v", len(got), got)
	}
	if got[len(got)-1] != "17:00" {
		t.Fatalf("expected last slot 17:00, got %s", got[len(got)-1])
	}
}

func TestComputeOpenSlotsCancelledBookingDoesNotBlock(t *testing.T) {
	window := mondayWindow("09:00", "12:00")
	cancelled := bookingAt(10, 60)
	cancelled.Status = StatusCancelled

	got := ComputeOpenSlots(window, []*Booking{cancelled}, testMonday, 60, testLoc, testNow)
	want := []string{"09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComputeOpenSlotsPastDateEmpty(t *testing.T) {
	window := mondayWindow("09:00", "12:00")
	yesterday := testNow.AddDate(0, 0, -1)

	got := ComputeOpenSlots(window, nil, yesterday, 60, testLoc, testNow)
	if len(got) != 0 {
		t.Fatalf("expected no slots for past date, got %v", got)
	}
}

func TestComputeOpenSlotsNoWindow(t *testing.T) {
	if got := ComputeOpenSlots(nil, nil, testMonday, 60, testLoc, testNow); len(got) != 0 {
		t.Fatalf("expected no slots without a window, got %v", got)
	}

	suppressed := mondayWindow("09:00", "12:00")
	suppressed.IsAvailable = false
	if got := ComputeOpenSlots(suppressed, nil, testMonday, 60, testLoc, testNow); len(got) != 0 {
		t.Fatalf("expected no slots for suppressed day, got %v", got)
	}
}

func TestComputeOpenSlotsDeterministic(t *testing.T) {
	window := mondayWindow("09:00", "12:00")
	booked := []*Booking{bookingAt(10, 60)}

	first := ComputeOpenSlots(window, booked, testMonday, 60, testLoc, testNow)
	second := ComputeOpenSlots(window, booked, testMonday, 60, testLoc, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v then %v", first, second)
	}
}
