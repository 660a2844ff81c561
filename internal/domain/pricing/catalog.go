package pricing

// Tier is one purchasable lesson package. Prices are integer cents.
type Tier struct {
	Hours           int   `json:"hours"`
	PriceCents      int64 `json:"price_cents"`
	DiscountPercent int   `json:"discount_percent"`
}

// catalog is the fixed lesson package list. Larger packages carry a
// built-in discount already folded into PriceCents.
var catalog = []Tier{
	{Hours: 1, PriceCents: 10000, DiscountPercent: 0},
	{Hours: 2, PriceCents: 18000, DiscountPercent: 10},
	{Hours: 5, PriceCents: 42500, DiscountPercent: 15},
	{Hours: 10, PriceCents: 80000, DiscountPercent: 20},
}

// Tiers returns the full catalog in ascending hour order.
func Tiers() []Tier {
	out := make([]Tier, len(catalog))
	copy(out, catalog)
	return out
}

// TierByHours looks up a tier by its hour count.
func TierByHours(hours int) (Tier, error) {
	for _, t := range catalog {
		if t.Hours == hours {
			return t, nil
		}
	}
	return Tier{}, ErrInvalidTier
}
