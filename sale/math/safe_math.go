package math

import (
	"errors"
	"math/big"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, errors.New("SafeMath: subtraction overflow")
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.New("SafeMath: division by zero")
	}
	return new(big.Int).Div(a, b), nil
}

// PercentOf returns amount*percent/100 with truncating division.
func PercentOf(amount *big.Int, percent int64) *big.Int {
	prod := new(big.Int).Mul(amount, big.NewInt(percent))
	return prod.Div(prod, big.NewInt(100))
}
