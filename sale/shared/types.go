package shared

import (
	"math/big"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

type SaleStatus uint8

const (
	StatusSelling SaleStatus = iota
	StatusGoalReached
	StatusLaunched
)

func (s SaleStatus) String() string {
	switch s {
	case StatusSelling:
		return "selling"
	case StatusGoalReached:
		return "goal_reached"
	case StatusLaunched:
		return "launched"
	}
	return "unknown"
}

// SaleParams is the per-sale snapshot of the factory's configuration at
// creation time. Later configuration updates never touch an existing sale.
type SaleParams struct {
	SaleGoal       *big.Int
	OvershootSlack *big.Int
	TotalSupply    *big.Int

	K     decimal.Decimal
	Alpha decimal.Decimal

	FeePercent          int64
	PrimaryFeeShare     int64
	CreatorSharePercent int64

	PrimaryFeeRecipient   solanago.PublicKey
	SecondaryFeeRecipient solanago.PublicKey
}

// FeeAmounts is the split of a single protocol fee charge.
type FeeAmounts struct {
	Total     *big.Int
	Primary   *big.Int
	Secondary *big.Int
}

// BuyQuoteResult is the outcome of pricing a buy before any state changes.
type BuyQuoteResult struct {
	NetQuoteIn *big.Int
	TokensOut  *big.Int
	Fee        FeeAmounts
}

// SellQuoteResult is the outcome of pricing a sell before any state changes.
type SellQuoteResult struct {
	GrossQuoteOut *big.Int
	NetQuoteOut   *big.Int
	Fee           FeeAmounts
}

// HistoricalSample is one point of the per-sale raise series, appended on
// every buy and sell in call order.
type HistoricalSample struct {
	Time        time.Time
	TotalRaised *big.Int
}
