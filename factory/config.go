package factory

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/etherfun/launchpad-go/sale/shared"
	"github.com/etherfun/launchpad-go/u128"
)

// CurveConfig is the factory's versioned set of sale defaults. Every sale
// snapshots the config active at its creation; later updates bump Version and
// only affect future sales.
type CurveConfig struct {
	Version uint64

	SaleGoal       *big.Int
	OvershootSlack *big.Int
	MaxInitialBuy  *big.Int
	TotalSupply    *big.Int

	K     decimal.Decimal
	Alpha decimal.Decimal

	FeePercent          int64
	PrimaryFeeShare     int64
	CreatorSharePercent int64
	LaunchSwapFeePct    int64

	PrimaryFeeRecipient   solanago.PublicKey
	SecondaryFeeRecipient solanago.PublicKey
}

// DefaultConfig builds version 1 from the shared policy constants.
func DefaultConfig(primary, secondary solanago.PublicKey) (CurveConfig, error) {
	cfg := CurveConfig{
		Version:               1,
		FeePercent:            shared.FeePercent,
		PrimaryFeeShare:       shared.PrimaryFeeShare,
		CreatorSharePercent:   shared.CreatorSharePercent,
		LaunchSwapFeePct:      1,
		PrimaryFeeRecipient:   primary,
		SecondaryFeeRecipient: secondary,
	}
	var err error
	if cfg.SaleGoal, err = u128.BigFromDecimalString(shared.DefaultSaleGoal, shared.QuoteDecimals); err != nil {
		return CurveConfig{}, err
	}
	if cfg.OvershootSlack, err = u128.BigFromDecimalString(shared.DefaultOvershootSlack, shared.QuoteDecimals); err != nil {
		return CurveConfig{}, err
	}
	if cfg.MaxInitialBuy, err = u128.BigFromDecimalString(shared.DefaultMaxInitialBuy, shared.QuoteDecimals); err != nil {
		return CurveConfig{}, err
	}
	if cfg.TotalSupply, err = u128.BigFromDecimalString(shared.DefaultTotalSupply, shared.TokenDecimals); err != nil {
		return CurveConfig{}, err
	}
	if cfg.K, err = decimal.NewFromString(shared.DefaultK); err != nil {
		return CurveConfig{}, err
	}
	if cfg.Alpha, err = decimal.NewFromString(shared.DefaultAlpha); err != nil {
		return CurveConfig{}, err
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads overrides from a config file. Amounts are human-readable
// decimal strings ("1.5"), parsed at 18 decimals.
func LoadConfig(path string, primary, secondary solanago.PublicKey) (CurveConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"sale_goal":             shared.DefaultSaleGoal,
		"overshoot_slack":       shared.DefaultOvershootSlack,
		"max_initial_buy":       shared.DefaultMaxInitialBuy,
		"total_supply":          shared.DefaultTotalSupply,
		"curve_k":               shared.DefaultK,
		"curve_alpha":           shared.DefaultAlpha,
		"fee_percent":           shared.FeePercent,
		"primary_fee_share":     shared.PrimaryFeeShare,
		"creator_share_percent": shared.CreatorSharePercent,
		"launch_swap_fee_pct":   1,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		return CurveConfig{}, err
	}

	cfg := CurveConfig{
		Version:               1,
		FeePercent:            v.GetInt64("fee_percent"),
		PrimaryFeeShare:       v.GetInt64("primary_fee_share"),
		CreatorSharePercent:   v.GetInt64("creator_share_percent"),
		LaunchSwapFeePct:      v.GetInt64("launch_swap_fee_pct"),
		PrimaryFeeRecipient:   primary,
		SecondaryFeeRecipient: secondary,
	}
	var err error
	if cfg.SaleGoal, err = u128.BigFromDecimalString(v.GetString("sale_goal"), shared.QuoteDecimals); err != nil {
		return CurveConfig{}, fmt.Errorf("sale_goal: %w", err)
	}
	if cfg.OvershootSlack, err = u128.BigFromDecimalString(v.GetString("overshoot_slack"), shared.QuoteDecimals); err != nil {
		return CurveConfig{}, fmt.Errorf("overshoot_slack: %w", err)
	}
	if cfg.MaxInitialBuy, err = u128.BigFromDecimalString(v.GetString("max_initial_buy"), shared.QuoteDecimals); err != nil {
		return CurveConfig{}, fmt.Errorf("max_initial_buy: %w", err)
	}
	if cfg.TotalSupply, err = u128.BigFromDecimalString(v.GetString("total_supply"), shared.TokenDecimals); err != nil {
		return CurveConfig{}, fmt.Errorf("total_supply: %w", err)
	}
	if cfg.K, err = decimal.NewFromString(v.GetString("curve_k")); err != nil {
		return CurveConfig{}, fmt.Errorf("curve_k: %w", err)
	}
	if cfg.Alpha, err = decimal.NewFromString(v.GetString("curve_alpha")); err != nil {
		return CurveConfig{}, fmt.Errorf("curve_alpha: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c CurveConfig) Validate() error {
	for _, pct := range []int64{c.FeePercent, c.PrimaryFeeShare, c.CreatorSharePercent, c.LaunchSwapFeePct} {
		if pct < 0 || pct > shared.PercentDenominator {
			return ErrInvalidConfig
		}
	}
	if c.SaleGoal == nil || c.SaleGoal.Sign() <= 0 {
		return ErrInvalidConfig
	}
	if c.OvershootSlack == nil || c.OvershootSlack.Sign() < 0 {
		return ErrInvalidConfig
	}
	if c.TotalSupply == nil || c.TotalSupply.Sign() <= 0 {
		return ErrInvalidConfig
	}
	if c.K.Sign() <= 0 || c.Alpha.Sign() <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// SaleParams is the snapshot handed to a new sale instance.
func (c CurveConfig) SaleParams() shared.SaleParams {
	return shared.SaleParams{
		SaleGoal:              new(big.Int).Set(c.SaleGoal),
		OvershootSlack:        new(big.Int).Set(c.OvershootSlack),
		TotalSupply:           new(big.Int).Set(c.TotalSupply),
		K:                     c.K,
		Alpha:                 c.Alpha,
		FeePercent:            c.FeePercent,
		PrimaryFeeShare:       c.PrimaryFeeShare,
		CreatorSharePercent:   c.CreatorSharePercent,
		PrimaryFeeRecipient:   c.PrimaryFeeRecipient,
		SecondaryFeeRecipient: c.SecondaryFeeRecipient,
	}
}

// digest commits the address derivation to the full parameterization, the
// in-process analog of hashing constructor-parameterized bytecode.
func (c CurveConfig) digest() [32]byte {
	material := fmt.Sprintf("goal=%s|slack=%s|supply=%s|k=%s|alpha=%s|fee=%d|split=%d|creator=%d|p=%s|s=%s",
		c.SaleGoal, c.OvershootSlack, c.TotalSupply,
		c.K, c.Alpha,
		c.FeePercent, c.PrimaryFeeShare, c.CreatorSharePercent,
		c.PrimaryFeeRecipient, c.SecondaryFeeRecipient)
	return sha256.Sum256([]byte(material))
}
