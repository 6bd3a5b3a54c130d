package shared

const (
	QuoteDecimals = 18
	TokenDecimals = 18

	// CurveScale is the decimal precision curve intermediates are rounded to.
	CurveScale = 18

	PercentDenominator = 100

	// FeePercent is the protocol fee charged on the buy input and the sell
	// gross payout, integer percent with truncating division.
	FeePercent = 1

	// PrimaryFeeShare is the primary recipient's percent of every fee charge;
	// the secondary recipient gets the remainder.
	PrimaryFeeShare = 50

	// CreatorSharePercent of the final raise stays with the creator at launch,
	// the rest is forwarded to the liquidity launcher.
	CreatorSharePercent = 5
)

// Factory-level defaults, snapshotted into SaleParams at sale creation.
// Human-readable decimal strings, parsed at QuoteDecimals/TokenDecimals.
const (
	DefaultSaleGoal       = "1.5"
	DefaultOvershootSlack = "0.1"
	DefaultMaxInitialBuy  = "0.2"
	DefaultTotalSupply    = "1000000000"

	DefaultK     = "0.0000003"
	DefaultAlpha = "0.0000000193"
)
