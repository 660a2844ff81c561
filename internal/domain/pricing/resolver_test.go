package pricing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

type promoRepoStub struct {
	byCode map[string]*PromoCode
}

func (r *promoRepoStub) GetByCode(_ context.Context, code string) (*PromoCode, error) {
	return r.byCode[normalizeCode(code)], nil
}

func (r *promoRepoStub) IncrementUsage(_ context.Context, _ sqlx.ExtContext, code string) error {
	promo := r.byCode[normalizeCode(code)]
	if promo == nil || promo.Exhausted() {
		return ErrPromoExhausted
	}
	promo.TimesUsed++
	return nil
}

func fixedResolver(repo PromoRepository, now time.Time) *Resolver {
	r := NewResolver(repo)
	r.now = func() time.Time { return now }
	return r
}

func activePromo(code string, pct int64, now time.Time) *PromoCode {
	return &PromoCode{
		Code:               code,
		DiscountPercentage: pct,
		ValidFrom:          now.Add(-24 * time.Hour),
		ValidUntil:         now.Add(24 * time.Hour),
	}
}

func TestResolveWithoutPromo(t *testing.T) {
	r := fixedResolver(&promoRepoStub{}, time.Now())

	quote, err := r.Resolve(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if quote.TotalCents != 18000 {
		t.Fatalf("expected 18000 cents for 2h, got %d", quote.TotalCents)
	}
}

func TestResolveAppliesPromoDiscount(t *testing.T) {
	now := time.Now()
	repo := &promoRepoStub{byCode: map[string]*PromoCode{
		"SAVE10": activePromo("SAVE10", 10, now),
	}}
	r := fixedResolver(repo, now)

	quote, err := r.Resolve(context.Background(), 2, "save10")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if quote.TotalCents != 16200 {
		t.Fatalf("expected 16200 cents, got %d", quote.TotalCents)
	}
	if quote.BaseCents != 18000 {
		t.Fatalf("expected base 18000 cents, got %d", quote.BaseCents)
	}
	if quote.PromoCode != "SAVE10" {
		t.Fatalf("expected canonical code SAVE10, got %q", quote.PromoCode)
	}
}

func TestResolveUnknownTier(t *testing.T) {
	r := fixedResolver(&promoRepoStub{}, time.Now())

	if _, err := r.Resolve(context.Background(), 3, ""); err != ErrInvalidTier {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}

func TestResolveUnknownPromo(t *testing.T) {
	r := fixedResolver(&promoRepoStub{}, time.Now())

	if _, err := r.Resolve(context.Background(), 1, "NOPE"); err != ErrPromoNotFound {
		t.Fatalf("expected ErrPromoNotFound, got %v", err)
	}
}

func TestResolveExpiredPromo(t *testing.T) {
	now := time.Now()
	expired := activePromo("OLD", 10, now.Add(-72*time.Hour))
	repo := &promoRepoStub{byCode: map[string]*PromoCode{"OLD": expired}}
	r := fixedResolver(repo, now)

	if _, err := r.Resolve(context.Background(), 1, "OLD"); err != ErrPromoExpired {
		t.Fatalf("expected ErrPromoExpired, got %v", err)
	}
}

func TestResolveExhaustedPromo(t *testing.T) {
	now := time.Now()
	promo := activePromo("CAPPED", 10, now)
	promo.MaxUses = sql.NullInt64{Int64: 5, Valid: true}
	promo.TimesUsed = 5
	repo := &promoRepoStub{byCode: map[string]*PromoCode{"CAPPED": promo}}
	r := fixedResolver(repo, now)

	if _, err := r.Resolve(context.Background(), 1, "CAPPED"); err != ErrPromoExhausted {
		t.Fatalf("expected ErrPromoExhausted, got %v", err)
	}
}
