package pricing

import "github.com/spinacademy/lessons-api/internal/pkg/money"

// QuoteRequest is the payload for POST /pricing/quote
type QuoteRequest struct {
	Hours     int    `json:"hours" validate:"required,tier_hours"`
	PromoCode string `json:"promo_code" validate:"omitempty,min=2,max=32"`
}

// QuoteResponse is the resolved price view
type QuoteResponse struct {
	Hours           int    `json:"hours"`
	BaseCents       int64  `json:"base_cents"`
	PromoCode       string `json:"promo_code,omitempty"`
	DiscountPercent int64  `json:"discount_percent,omitempty"`
	TotalCents      int64  `json:"total_cents"`
	Total           string `json:"total"`
}

func toQuoteResponse(q *Quote) *QuoteResponse {
	return &QuoteResponse{
		Hours:           q.Hours,
		BaseCents:       q.BaseCents,
		PromoCode:       q.PromoCode,
		DiscountPercent: q.DiscountPercent,
		TotalCents:      q.TotalCents,
		Total:           money.FormatCents(q.TotalCents),
	}
}
