package pricing

import "errors"

var (
	ErrInvalidTier    = errors.New("unknown pricing tier")
	ErrPromoNotFound  = errors.New("promo code not found")
	ErrPromoExpired   = errors.New("promo code is not currently valid")
	ErrPromoExhausted = errors.New("promo code usage limit reached")
)
