package pricing

import (
	"context"
	"time"

	"github.com/spinacademy/lessons-api/internal/pkg/money"
)

// Quote is a fully resolved price for one tier plus optional promo.
type Quote struct {
	Hours           int
	BaseCents       int64
	PromoCode       string
	DiscountPercent int64
	TotalCents      int64
}

// Resolver turns (tier, promo code) into a final price in cents.
type Resolver struct {
	promos PromoRepository
	now    func() time.Time
}

// NewResolver creates pricing resolver
func NewResolver(promos PromoRepository) *Resolver {
	return &Resolver{promos: promos, now: time.Now}
}

// Resolve validates the tier and optional promo code and computes the
// final price. Promo usage is NOT consumed here; the booking
// transaction claims a use atomically with the reservation.
func (r *Resolver) Resolve(ctx context.Context, hours int, code string) (*Quote, error) {
	tier, err := TierByHours(hours)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Hours:      tier.Hours,
		BaseCents:  tier.PriceCents,
		TotalCents: tier.PriceCents,
	}

	if code == "" {
		return quote, nil
	}

	promo, err := r.promos.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	if !promo.ValidAt(r.now()) {
		return nil, ErrPromoExpired
	}
	if promo.Exhausted() {
		return nil, ErrPromoExhausted
	}

	total, err := money.ApplyPercentDiscount(tier.PriceCents, promo.DiscountPercentage)
	if err != nil {
		return nil, err
	}

	quote.PromoCode = promo.Code
	quote.DiscountPercent = promo.DiscountPercentage
	quote.TotalCents = total
	return quote, nil
}
