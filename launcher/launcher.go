package launcher

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
)

// LaunchParams carries everything a sale hands over at its launch: the token
// side, the quote side, slippage floors and the fee beneficiary for later
// protocol-share claims.
type LaunchParams struct {
	Token       solanago.PublicKey
	TokenAmount *big.Int
	QuoteAmount *big.Int
	MinTokenOut *big.Int
	MinQuoteOut *big.Int
	SwapFeePct  int64
	Beneficiary solanago.PublicKey
}

// Launcher receives a launched sale's balances and seeds a tradeable pool.
// Called exactly once per sale. Address is the launcher's custody account the
// sale approves before calling Launch.
type Launcher interface {
	Address() solanago.PublicKey
	Launch(from solanago.PublicKey, params LaunchParams) (pair solanago.PublicKey, err error)
}

// PoolShareHolder exposes the accumulated protocol share of a pool.
type PoolShareHolder interface {
	ViewShare(pair solanago.PublicKey) *big.Int
	ClaimShare(pair solanago.PublicKey, to solanago.PublicKey) (*big.Int, error)
}

// PairLookup resolves the pool address for a token/quote pair.
type PairLookup interface {
	GetPair(tokenA, tokenB solanago.PublicKey) (solanago.PublicKey, bool)
}
