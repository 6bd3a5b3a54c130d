package decimal_math

import (
	"testing"

	"github.com/shopspring/decimal"
)

func closeTo(got decimal.Decimal, want string, tolExp int32) bool {
	w := decimal.RequireFromString(want)
	tol := decimal.New(1, tolExp)
	return got.Sub(w).Abs().LessThanOrEqual(tol)
}

func TestExp(t *testing.T) {
	if got := Exp(decimal.Zero, 18); !got.Equal(decimal.NewFromInt(1)) {
		t.Fatal("Exp(0) != 1, got", got)
	}
	if got := Exp(decimal.NewFromInt(1), 18); !closeTo(got, "2.718281828459045235", -15) {
		t.Fatal("Exp(1) off, got", got)
	}
	if got := Exp(decimal.NewFromInt(10), 18); !closeTo(got, "22026.465794806716516957", -10) {
		t.Fatal("Exp(10) off, got", got)
	}
	if got := Exp(decimal.NewFromInt(-1), 18); !closeTo(got, "0.367879441171442321", -15) {
		t.Fatal("Exp(-1) off, got", got)
	}
}

func TestLn(t *testing.T) {
	if got, err := Ln(decimal.NewFromInt(1), 18); err != nil || !got.IsZero() {
		t.Fatal("Ln(1) != 0, got", got, err)
	}
	got, err := Ln(decimal.RequireFromString("2.718281828459045235"), 18)
	if err != nil {
		t.Fatal("Ln(e) fail", err)
	}
	if !closeTo(got, "1", -15) {
		t.Fatal("Ln(e) off, got", got)
	}
	got, err = Ln(decimal.NewFromInt(1000000), 18)
	if err != nil {
		t.Fatal("Ln(1e6) fail", err)
	}
	if !closeTo(got, "13.815510557964274104", -12) {
		t.Fatal("Ln(1e6) off, got", got)
	}
}

func TestLnDomain(t *testing.T) {
	if _, err := Ln(decimal.Zero, 18); err == nil {
		t.Fatal("Ln(0) should fail")
	}
	if _, err := Ln(decimal.NewFromInt(-3), 18); err == nil {
		t.Fatal("Ln(-3) should fail")
	}
}

func TestExpLnRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0001", "0.5", "1.5", "42", "1980001"} {
		x := decimal.RequireFromString(s)
		y, err := Ln(x, 24)
		if err != nil {
			t.Fatal("Ln fail", s, err)
		}
		back := Exp(y, 24)
		if !back.Sub(x).Abs().DivRound(x, 24).LessThan(decimal.New(1, -15)) {
			t.Fatalf("round trip off for %s: got %s", s, back)
		}
	}
}
