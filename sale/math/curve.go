package math

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/etherfun/launchpad-go/decimal_math"
	"github.com/etherfun/launchpad-go/sale/shared"
)

// ErrCurveDomain covers every arithmetic rejection of the pricing functions:
// negative amounts, selling more than circulates, non-positive curve
// parameters, and logarithm arguments outside (0, inf).
var ErrCurveDomain = errors.New("curve domain error")

func QuoteToDecimal(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -shared.QuoteDecimals)
}

func TokenToDecimal(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -shared.TokenDecimals)
}

func quoteToBase(d decimal.Decimal) *big.Int {
	return d.Shift(shared.QuoteDecimals).BigInt()
}

func tokenToBase(d decimal.Decimal) *big.Int {
	return d.Shift(shared.TokenDecimals).BigInt()
}

func checkParams(k, alpha decimal.Decimal) error {
	if k.Sign() <= 0 {
		return fmt.Errorf("%w: k must be positive", ErrCurveDomain)
	}
	if alpha.Sign() <= 0 {
		return fmt.Errorf("%w: alpha must be positive", ErrCurveDomain)
	}
	return nil
}

// TokensForQuoteIn prices a buy: the token amount issued for adding quoteIn
// to a sale that has already raised totalRaised, as
// (ln((totalRaised+quoteIn)/k + 1) - ln(totalRaised/k + 1)) / alpha.
func TokensForQuoteIn(totalRaised, quoteIn *big.Int, k, alpha decimal.Decimal) (*big.Int, error) {
	if err := checkParams(k, alpha); err != nil {
		return nil, err
	}
	if totalRaised.Sign() < 0 {
		return nil, fmt.Errorf("%w: totalRaised is negative", ErrCurveDomain)
	}
	if quoteIn.Sign() <= 0 {
		return nil, fmt.Errorf("%w: quote amount must be positive", ErrCurveDomain)
	}

	one := decimal.NewFromInt(1)
	raised := QuoteToDecimal(totalRaised)
	after := raised.Add(QuoteToDecimal(quoteIn))

	upper, err := decimal_math.Ln(after.DivRound(k, shared.CurveScale+8).Add(one), shared.CurveScale+8)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCurveDomain, err)
	}
	lower, err := decimal_math.Ln(raised.DivRound(k, shared.CurveScale+8).Add(one), shared.CurveScale+8)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCurveDomain, err)
	}

	tokens := upper.Sub(lower).DivRound(alpha, shared.CurveScale)
	if tokens.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative token output", ErrCurveDomain)
	}
	return tokenToBase(tokens), nil
}

// QuoteForTokensOut prices a sell: the quote amount returned for removing
// tokenAmount from circulation at a supply of tokensSold, as
// k*(e^(alpha*tokensSold) - e^(alpha*(tokensSold-tokenAmount))).
func QuoteForTokensOut(tokensSold, tokenAmount *big.Int, k, alpha decimal.Decimal) (*big.Int, error) {
	if err := checkParams(k, alpha); err != nil {
		return nil, err
	}
	if tokenAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: token amount must be positive", ErrCurveDomain)
	}
	if tokenAmount.Cmp(tokensSold) > 0 {
		return nil, fmt.Errorf("%w: token amount exceeds tokens sold", ErrCurveDomain)
	}

	sold := TokenToDecimal(tokensSold)
	remaining := sold.Sub(TokenToDecimal(tokenAmount))

	upper := decimal_math.Exp(alpha.Mul(sold), shared.CurveScale+8)
	lower := decimal_math.Exp(alpha.Mul(remaining), shared.CurveScale+8)

	quote := k.Mul(upper.Sub(lower)).Round(shared.CurveScale)
	if quote.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative quote output", ErrCurveDomain)
	}
	return quoteToBase(quote), nil
}
