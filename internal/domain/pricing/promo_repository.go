package pricing

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// PromoRepository defines promo code data access. IncrementUsage takes
// any sqlx executor so the booking transaction can run it atomically
// with the reservation insert.
type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	IncrementUsage(ctx context.Context, ext sqlx.ExtContext, code string) error
}

type promoRepository struct {
	db *sqlx.DB
}

// NewPromoRepository creates promo repository
func NewPromoRepository(db *sqlx.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	query := `
		SELECT id, code, discount_percentage, valid_from, valid_until, max_uses, times_used, created_at
		FROM promo_codes
		WHERE code = $1`

	var promo PromoCode
	err := r.db.GetContext(ctx, &promo, query, normalizeCode(code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// IncrementUsage bumps times_used only while the code is still valid
// and under its cap. Zero rows affected means the code was used up
// (or expired) between quote and commit.
func (r *promoRepository) IncrementUsage(ctx context.Context, ext sqlx.ExtContext, code string) error {
	query := `
		UPDATE promo_codes
		SET times_used = times_used + 1
		WHERE code = $1
		  AND now() BETWEEN valid_from AND valid_until
		  AND (max_uses IS NULL OR times_used < max_uses)`

	result, err := ext.ExecContext(ctx, query, normalizeCode(code))
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrPromoExhausted
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
