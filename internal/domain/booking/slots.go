package booking

import (
	"time"

	"github.com/spinacademy/lessons-api/internal/domain/instructor"
)

// SlotMinutes is the grid granularity: lessons start on the hour.
const SlotMinutes = 60

type interval struct {
	start int // minutes since midnight, inclusive
	end   int // exclusive
}

func (i interval) overlaps(other interval) bool {
	return i.start < other.end && i.end > other.start
}

// ComputeOpenSlots returns the bookable start times (HH:MM, ascending)
// for one instructor on one calendar date.
//
// Candidates step through the window on the hour grid. A candidate is
// listed only when the full requested duration fits inside the window
// and does not touch any blocking booking. Dates before today in loc
// yield no slots.
func ComputeOpenSlots(window *instructor.Window, bookings []*Booking, date time.Time, durationMinutes int, loc *time.Location, now time.Time) []string {
	slots := []string{}

	if window == nil || !window.IsAvailable {
		return slots
	}
	if pastDate(date, now, loc) {
		return slots
	}

	winStart := window.StartMinutes()
	winEnd := window.EndMinutes()

	busy := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		local := b.StartTime.In(loc)
		start := local.Hour()*60 + local.Minute()
		busy = append(busy, interval{start: start, end: start + b.DurationMinutes})
	}

	for cand := winStart; cand+SlotMinutes <= winEnd; cand += SlotMinutes {
		block := interval{start: cand, end: cand + durationMinutes}
		if block.end > winEnd {
			continue
		}
		free := true
		for _, iv := range busy {
			if block.overlaps(iv) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, instructor.FormatClock(cand))
		}
	}

	return slots
}

// OnGrid reports whether the start time lands on an hour boundary
// relative to the window start.
func OnGrid(window *instructor.Window, startMinutes int) bool {
	offset := startMinutes - window.StartMinutes()
	return offset >= 0 && offset%SlotMinutes == 0
}

// fitsWindow reports whether [start, start+duration) sits inside the
// window.
func fitsWindow(window *instructor.Window, startMinutes, durationMinutes int) bool {
	return startMinutes >= window.StartMinutes() &&
		startMinutes+durationMinutes <= window.EndMinutes()
}

func pastDate(date, now time.Time, loc *time.Location) bool {
	d := date.In(loc)
	n := now.In(loc)
	dy, dm, dd := d.Date()
	ny, nm, nd := n.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, loc).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, loc))
}
