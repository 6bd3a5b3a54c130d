package math

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/etherfun/launchpad-go/u128"
)

var (
	testK     = decimal.RequireFromString("0.0000003")
	testAlpha = decimal.RequireFromString("0.0000000193")
)

func quoteAmount(t *testing.T, s string) *big.Int {
	t.Helper()
	v, err := u128.BigFromDecimalString(s, 18)
	if err != nil {
		t.Fatal("bad amount", s, err)
	}
	return v
}

func TestTokensForQuoteIn(t *testing.T) {
	tokens, err := TokensForQuoteIn(new(big.Int), quoteAmount(t, "0.594"), testK, testAlpha)
	if err != nil {
		t.Fatal("TokensForQuoteIn fail", err)
	}
	if tokens.Sign() <= 0 {
		t.Fatal("expected positive token output, got", tokens)
	}
	// With these parameters the first 0.594 quote buys roughly 751M tokens.
	low := quoteAmount(t, "700000000")
	high := quoteAmount(t, "800000000")
	if tokens.Cmp(low) < 0 || tokens.Cmp(high) > 0 {
		t.Fatal("token output outside expected band, got", tokens)
	}
}

func TestPriceIncreasesAlongCurve(t *testing.T) {
	in := quoteAmount(t, "0.1")
	early, err := TokensForQuoteIn(new(big.Int), in, testK, testAlpha)
	if err != nil {
		t.Fatal("early buy fail", err)
	}
	late, err := TokensForQuoteIn(quoteAmount(t, "1.0"), in, testK, testAlpha)
	if err != nil {
		t.Fatal("late buy fail", err)
	}
	if late.Cmp(early) >= 0 {
		t.Fatalf("same spend must buy fewer tokens later: early %s late %s", early, late)
	}
}

func TestBuySellRoundTrip(t *testing.T) {
	in := quoteAmount(t, "0.5")
	tokens, err := TokensForQuoteIn(new(big.Int), in, testK, testAlpha)
	if err != nil {
		t.Fatal("buy leg fail", err)
	}
	back, err := QuoteForTokensOut(tokens, tokens, testK, testAlpha)
	if err != nil {
		t.Fatal("sell leg fail", err)
	}
	diff := new(big.Int).Abs(new(big.Int).Sub(back, in))
	// Selling all tokens back must recover the quote up to rounding dust.
	if diff.Cmp(big.NewInt(1_000_000)) > 0 {
		t.Fatalf("round trip off by %s: in %s back %s", diff, in, back)
	}
}

func TestCurveDomain(t *testing.T) {
	one := big.NewInt(1)
	cases := []struct {
		name string
		run  func() error
	}{
		{"zero quote in", func() error {
			_, err := TokensForQuoteIn(new(big.Int), new(big.Int), testK, testAlpha)
			return err
		}},
		{"negative raised", func() error {
			_, err := TokensForQuoteIn(big.NewInt(-1), one, testK, testAlpha)
			return err
		}},
		{"zero k", func() error {
			_, err := TokensForQuoteIn(new(big.Int), one, decimal.Zero, testAlpha)
			return err
		}},
		{"zero alpha", func() error {
			_, err := QuoteForTokensOut(one, one, testK, decimal.Zero)
			return err
		}},
		{"sell more than sold", func() error {
			_, err := QuoteForTokensOut(one, big.NewInt(2), testK, testAlpha)
			return err
		}},
	}
	for _, tc := range cases {
		if err := tc.run(); !errors.Is(err, ErrCurveDomain) {
			t.Fatalf("%s: want ErrCurveDomain, got %v", tc.name, err)
		}
	}
}
