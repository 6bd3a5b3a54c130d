package decimal_math

import (
	"math"

	"github.com/shopspring/decimal"
)

// lnSeed produces the Newton starting point for Ln. The float64 logarithm is
// close enough everywhere the fixed-point range allows; values outside float64
// range fall back to a digit-count estimate.
func lnSeed(x decimal.Decimal) decimal.Decimal {
	f, _ := x.Float64()
	if f > 0 && !math.IsInf(f, 0) {
		return decimal.NewFromFloat(math.Log(f))
	}
	// ln(10) * decimal digits
	digits := int64(len(x.BigInt().String()))
	return decimal.NewFromFloat(2.302585092994046).Mul(decimal.NewFromInt(digits))
}
