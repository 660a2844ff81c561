package money

import (
	"fmt"
	"math/big"
)

// Amounts are carried as integer cents end to end; fractions only appear
// transiently inside a discount multiplication, as exact big.Rat values.

// ApplyPercentDiscount returns cents reduced by pct percent, rounded
// half-to-even at the final step. Intermediate values are exact rationals,
// never rounded. pct must be within [0, 100].
func ApplyPercentDiscount(cents int64, pct int64) (int64, error) {
	if pct < 0 || pct > 100 {
		return 0, fmt.Errorf("discount percentage out of range: %d", pct)
	}
	if pct == 0 {
		return cents, nil
	}

	// cents * (100 - pct) / 100
	result := new(big.Rat).SetInt64(cents)
	result.Mul(result, big.NewRat(100-pct, 100))

	return RoundHalfEven(result), nil
}

// RoundHalfEven rounds an exact rational amount of cents to the nearest
// integer cent, ties to even (banker's rounding).
func RoundHalfEven(r *big.Rat) int64 {
	quo, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))

	// quo truncates toward zero; shift negative values down to a floor.
	floor := quo.Int64()
	if rem.Sign() < 0 {
		floor--
		rem.Add(rem, r.Denom())
	}

	// Compare the fractional part against 1/2: 2*rem vs denom.
	twice := new(big.Int).Lsh(rem, 1)
	switch twice.Cmp(r.Denom()) {
	case -1:
		return floor
	case 1:
		return floor + 1
	default:
		// Exactly halfway: round to the even neighbour.
		if floor%2 == 0 {
			return floor
		}
		return floor + 1
	}
}

// FormatCents renders cents as a decimal dollar string, e.g. 16200 -> "162.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
