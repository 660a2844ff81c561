package pricing

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PromoCode is a percentage discount with a validity period and an
// optional global usage cap.
type PromoCode struct {
	ID                 uuid.UUID     `db:"id"`
	Code               string        `db:"code"`
	DiscountPercentage int64         `db:"discount_percentage"`
	ValidFrom          time.Time     `db:"valid_from"`
	ValidUntil         time.Time     `db:"valid_until"`
	MaxUses            sql.NullInt64 `db:"max_uses"`
	TimesUsed          int64         `db:"times_used"`
	CreatedAt          time.Time     `db:"created_at"`
}

// ValidAt reports whether the code's validity period covers now.
func (p *PromoCode) ValidAt(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidUntil)
}

// Exhausted reports whether the usage cap has been reached.
func (p *PromoCode) Exhausted() bool {
	return p.MaxUses.Valid && p.TimesUsed >= p.MaxUses.Int64
}
