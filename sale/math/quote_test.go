package math

import (
	"math/big"
	"testing"

	"github.com/etherfun/launchpad-go/sale/shared"
)

func testParams(t *testing.T) shared.SaleParams {
	t.Helper()
	return shared.SaleParams{
		SaleGoal:        quoteAmount(t, "1.5"),
		OvershootSlack:  quoteAmount(t, "0.1"),
		TotalSupply:     quoteAmount(t, "1000000000"),
		K:               testK,
		Alpha:           testAlpha,
		FeePercent:      shared.FeePercent,
		PrimaryFeeShare: shared.PrimaryFeeShare,
	}
}

func TestFeeOnAmount(t *testing.T) {
	amount := quoteAmount(t, "0.6")
	net, fee, err := FeeOnAmount(amount, 1, 50)
	if err != nil {
		t.Fatal("FeeOnAmount fail", err)
	}
	if net.String() != "594000000000000000" {
		t.Fatal("net off, got", net)
	}
	if fee.Total.String() != "6000000000000000" {
		t.Fatal("total fee off, got", fee.Total)
	}
	if fee.Primary.String() != "3000000000000000" || fee.Secondary.String() != "3000000000000000" {
		t.Fatal("fee split off, got", fee.Primary, fee.Secondary)
	}
	if new(big.Int).Add(fee.Primary, fee.Secondary).Cmp(fee.Total) != 0 {
		t.Fatal("fee shares do not sum to total")
	}
}

func TestFeeOnAmountDustToSecondary(t *testing.T) {
	// An odd fee total cannot split evenly; the extra unit stays secondary.
	_, fee, err := FeeOnAmount(big.NewInt(101), 1, 50)
	if err != nil {
		t.Fatal("FeeOnAmount fail", err)
	}
	if fee.Total.Int64() != 1 || fee.Primary.Int64() != 0 || fee.Secondary.Int64() != 1 {
		t.Fatal("dust handling off, got", fee)
	}
}

func TestFeeOnAmountInvalidPercent(t *testing.T) {
	if _, _, err := FeeOnAmount(big.NewInt(100), 101, 50); err != ErrInvalidPercent {
		t.Fatal("want ErrInvalidPercent, got", err)
	}
	if _, _, err := FeeOnAmount(big.NewInt(100), 1, -1); err != ErrInvalidPercent {
		t.Fatal("want ErrInvalidPercent, got", err)
	}
}

func TestBuyQuote(t *testing.T) {
	params := testParams(t)
	q, err := BuyQuote(new(big.Int), quoteAmount(t, "0.6"), params)
	if err != nil {
		t.Fatal("BuyQuote fail", err)
	}
	if q.NetQuoteIn.String() != "594000000000000000" {
		t.Fatal("net quote off, got", q.NetQuoteIn)
	}
	if q.TokensOut.Sign() <= 0 {
		t.Fatal("expected token output")
	}
}

func TestSellQuote(t *testing.T) {
	params := testParams(t)
	buy, err := BuyQuote(new(big.Int), quoteAmount(t, "0.6"), params)
	if err != nil {
		t.Fatal("BuyQuote fail", err)
	}
	half := new(big.Int).Div(buy.TokensOut, big.NewInt(2))
	sell, err := SellQuote(buy.TokensOut, half, params)
	if err != nil {
		t.Fatal("SellQuote fail", err)
	}
	if sell.GrossQuoteOut.Cmp(buy.NetQuoteIn) >= 0 {
		t.Fatal("partial sell cannot exceed the raise")
	}
	net := new(big.Int).Add(sell.NetQuoteOut, sell.Fee.Total)
	if net.Cmp(sell.GrossQuoteOut) != 0 {
		t.Fatal("net plus fee != gross")
	}
}
