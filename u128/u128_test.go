package u128

import (
	"fmt"
	"testing"
)

func TestFromDecimalString(t *testing.T) {
	v, err := FromDecimalString("1.5", 18)
	if err != nil {
		t.Fatal("FromDecimalString fail", err)
	}
	if v.BigInt().String() != "1500000000000000000" {
		t.Fatal("1.5 at 18 decimals off, got", v.BigInt())
	}

	v, err = FromDecimalString("1000000000", 18)
	if err != nil {
		t.Fatal("FromDecimalString fail", err)
	}
	if v.BigInt().String() != "1000000000000000000000000000" {
		t.Fatal("1e9 at 18 decimals off, got", v.BigInt())
	}

	v, err = FromDecimalString("0", 18)
	if err != nil || v.BigInt().Sign() != 0 {
		t.Fatal("zero parse off", v.BigInt(), err)
	}
}

func TestFromDecimalStringRejects(t *testing.T) {
	if _, err := FromDecimalString("-1", 18); err == nil {
		t.Fatal("negative amount should fail")
	}
	if _, err := FromDecimalString("0.1234567890123456789", 18); err == nil {
		t.Fatal("19 decimal places at 18 decimals should fail")
	}
	if _, err := FromDecimalString("abc", 18); err == nil {
		t.Fatal("garbage should fail")
	}
}

func TestBigFromDecimalString(t *testing.T) {
	v, err := BigFromDecimalString("0.2", 18)
	if err != nil {
		t.Fatal("BigFromDecimalString fail", err)
	}
	if v.String() != "200000000000000000" {
		t.Fatal("0.2 at 18 decimals off, got", v)
	}
}

func TestScan(t *testing.T) {
	var u Uint128
	if _, err := fmt.Sscan("340282366920938463463374607431768211455", &u); err != nil {
		t.Fatal("Scan fail", err)
	}
	if u.Lo != ^uint64(0) || u.Hi != ^uint64(0) {
		t.Fatal("max u128 scan off", u)
	}
	if _, err := fmt.Sscan("-1", &u); err == nil {
		t.Fatal("negative scan should fail")
	}
}
