package booking

import (
	"github.com/spinacademy/lessons-api/internal/pkg/money"
)

// ReserveRequest is the payload for POST /bookings
type ReserveRequest struct {
	InstructorID string `json:"instructor_id" validate:"required,uuid"`
	Category     string `json:"category" validate:"required,lesson_category"`
	StartTime    string `json:"start_time" validate:"required"` // RFC 3339
	Hours        int    `json:"hours" validate:"required,tier_hours"`
	PromoCode    string `json:"promo_code" validate:"omitempty,min=2,max=32"`
}

// SlotsResponse lists the open start times for one day
type SlotsResponse struct {
	InstructorID string   `json:"instructor_id"`
	Date         string   `json:"date"`
	Hours        int      `json:"hours"`
	Slots        []string `json:"slots"`
}

// Response is the booking view returned to clients
type Response struct {
	ID              string `json:"id"`
	InstructorID    string `json:"instructor_id"`
	Category        string `json:"category"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	TotalCents      int64  `json:"total_cents"`
	Total           string `json:"total"`
	PromoCode       string `json:"promo_code,omitempty"`
}

func toResponse(b *Booking) *Response {
	return &Response{
		ID:              b.ID.String(),
		InstructorID:    b.InstructorID.String(),
		Category:        string(b.Category),
		StartTime:       b.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalCents:      b.TotalPrice,
		Total:           money.FormatCents(b.TotalPrice),
		PromoCode:       b.PromoCode.String,
	}
}
