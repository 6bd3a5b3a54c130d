package math

import (
	"errors"
	"math/big"

	"github.com/etherfun/launchpad-go/sale/shared"
)

var ErrInvalidPercent = errors.New("percent out of range")

// FeeOnAmount charges the integer-percent protocol fee on amount and splits it
// between the primary and secondary recipients. Truncation dust stays with the
// secondary share.
func FeeOnAmount(amount *big.Int, feePercent, primaryShare int64) (*big.Int, shared.FeeAmounts, error) {
	if feePercent < 0 || feePercent > shared.PercentDenominator {
		return nil, shared.FeeAmounts{}, ErrInvalidPercent
	}
	if primaryShare < 0 || primaryShare > shared.PercentDenominator {
		return nil, shared.FeeAmounts{}, ErrInvalidPercent
	}

	total := PercentOf(amount, feePercent)
	net, err := Sub(amount, total)
	if err != nil {
		return nil, shared.FeeAmounts{}, err
	}
	primary := PercentOf(total, primaryShare)
	secondary, err := Sub(total, primary)
	if err != nil {
		return nil, shared.FeeAmounts{}, err
	}
	return net, shared.FeeAmounts{Total: total, Primary: primary, Secondary: secondary}, nil
}

// BuyQuote prices a buy before any state change: fee off the top, the
// remainder converted along the curve.
func BuyQuote(totalRaised, quoteIn *big.Int, params shared.SaleParams) (shared.BuyQuoteResult, error) {
	net, fee, err := FeeOnAmount(quoteIn, params.FeePercent, params.PrimaryFeeShare)
	if err != nil {
		return shared.BuyQuoteResult{}, err
	}
	tokens, err := TokensForQuoteIn(totalRaised, net, params.K, params.Alpha)
	if err != nil {
		return shared.BuyQuoteResult{}, err
	}
	return shared.BuyQuoteResult{NetQuoteIn: net, TokensOut: tokens, Fee: fee}, nil
}

// SellQuote prices a sell before any state change: gross payout along the
// curve, fee deducted from the gross.
func SellQuote(tokensSold, tokenAmount *big.Int, params shared.SaleParams) (shared.SellQuoteResult, error) {
	gross, err := QuoteForTokensOut(tokensSold, tokenAmount, params.K, params.Alpha)
	if err != nil {
		return shared.SellQuoteResult{}, err
	}
	net, fee, err := FeeOnAmount(gross, params.FeePercent, params.PrimaryFeeShare)
	if err != nil {
		return shared.SellQuoteResult{}, err
	}
	return shared.SellQuoteResult{GrossQuoteOut: gross, NetQuoteOut: net, Fee: fee}, nil
}
