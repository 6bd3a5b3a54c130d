package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// FromDecimalString parses a human-readable amount like "1.5" into base units
// at the given number of decimals ("1.5", 18 -> 1500000000000000000).
func FromDecimalString(amount string, decimals int32) (binary.Uint128, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return binary.Uint128{}, err
	}
	if d.Sign() < 0 {
		return binary.Uint128{}, errors.New("amount cannot be negative")
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return binary.Uint128{}, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}
	i := scaled.BigInt()
	if i.BitLen() > 128 {
		return binary.Uint128{}, errors.New("amount overflows Uint128")
	}
	u128 := binary.NewUint128LittleEndian()
	u128.Lo = i.Uint64()
	u128.Hi = new(big.Int).Rsh(i, 64).Uint64()
	return *u128, nil
}

// BigFromDecimalString is FromDecimalString returning a big.Int.
func BigFromDecimalString(amount string, decimals int32) (*big.Int, error) {
	v, err := FromDecimalString(amount, decimals)
	if err != nil {
		return nil, err
	}
	return v.BigInt(), nil
}
