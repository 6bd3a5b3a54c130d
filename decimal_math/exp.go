package decimal_math

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrLogDomain = errors.New("decimal_math: ln undefined for <= 0")

const maxIter = 200

// Exp computes e^x by Taylor series, rounded to scale decimal places.
// Negative exponents go through 1/e^|x|.
func Exp(x decimal.Decimal, scale int32) decimal.Decimal {
	if x.IsNegative() {
		inv := Exp(x.Neg(), scale+2)
		if inv.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(1).DivRound(inv, scale)
	}

	term := decimal.NewFromInt(1)
	sum := decimal.NewFromInt(1)
	epsilon := decimal.New(1, -scale-2)
	for i := 1; i < maxIter; i++ {
		term = term.Mul(x).DivRound(decimal.NewFromInt(int64(i)), scale+10)
		if term.Abs().LessThan(epsilon) {
			break
		}
		sum = sum.Add(term)
	}
	return sum.Round(scale)
}

// Ln computes the natural logarithm by Newton iteration on f(y) = e^y - x,
// seeded from the float64 logarithm.
func Ln(x decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Zero, ErrLogDomain
	}
	if x.Equal(decimal.NewFromInt(1)) {
		return decimal.Zero, nil
	}

	y := lnSeed(x)
	epsilon := decimal.New(1, -scale)

	for i := 0; i < maxIter; i++ {
		expY := Exp(y, scale+4)
		if expY.IsZero() {
			return decimal.Zero, ErrLogDomain
		}
		next := y.Sub(expY.Sub(x).DivRound(expY, scale+4))
		if next.Sub(y).Abs().LessThan(epsilon) {
			return next.Round(scale), nil
		}
		y = next
	}
	return y.Round(scale), nil
}
