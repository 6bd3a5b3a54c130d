package launcher

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/etherfun/launchpad-go/ledger"
	"github.com/etherfun/launchpad-go/sale/math"
)

var (
	ErrPairExists       = errors.New("dex: pair already exists")
	ErrPairNotFound     = errors.New("dex: pair not found")
	ErrUnknownToken     = errors.New("dex: unknown token mint")
	ErrZeroLiquidity    = errors.New("dex: liquidity amounts must be positive")
	ErrBelowMinimum     = errors.New("dex: seeded amount below minimum")
	ErrInsufficientFund = errors.New("dex: insufficient balance or allowance")
)

// DexProgramID namespaces pair address derivation.
var DexProgramID = keyFromSeed("launchpad/dex/v1")

func keyFromSeed(seed string) solanago.PublicKey {
	sum := sha256.Sum256([]byte(seed))
	return solanago.PublicKeyFromBytes(sum[:])
}

// LedgerResolver maps a token mint to its ledger.
type LedgerResolver func(mint solanago.PublicKey) (*ledger.Ledger, bool)

// Pair is one constant-product pool seeded by a sale launch.
type Pair struct {
	Address       solanago.PublicKey
	Token         solanago.PublicKey
	TokenReserve  *big.Int
	QuoteReserve  *big.Int
	ProtocolShare *big.Int
	Beneficiary   solanago.PublicKey
	SwapFeePct    int64
}

// Dex is an in-memory liquidity launcher: it takes custody of a launched
// sale's token and quote balances, opens a constant-product pair and accrues a
// protocol share from swap fees. It implements Launcher, PoolShareHolder and
// PairLookup.
type Dex struct {
	mu      sync.Mutex
	logger  *zap.Logger
	address solanago.PublicKey
	quote   *ledger.Ledger
	resolve LedgerResolver
	pairs   map[solanago.PublicKey]*Pair
	byToken map[solanago.PublicKey]solanago.PublicKey
}

func NewDex(quote *ledger.Ledger, resolve LedgerResolver, logger *zap.Logger) *Dex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dex{
		logger:  logger.Named("dex"),
		address: keyFromSeed("launchpad/dex/v1/vault"),
		quote:   quote,
		resolve: resolve,
		pairs:   make(map[solanago.PublicKey]*Pair),
		byToken: make(map[solanago.PublicKey]solanago.PublicKey),
	}
}

// Address is the dex's custody account on both ledgers.
func (d *Dex) Address() solanago.PublicKey { return d.address }

// DerivePairAddress is a pure function of the two mints; the same inputs give
// the same pair address whether or not the pair exists.
func DerivePairAddress(tokenA, tokenB solanago.PublicKey) solanago.PublicKey {
	first, second := getFirstKey(tokenA, tokenB), getSecondKey(tokenA, tokenB)
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("pair"), first, second}, DexProgramID)
	return pub
}

func getFirstKey(a, b solanago.PublicKey) []byte {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		return a.Bytes()
	}
	return b.Bytes()
}

func getSecondKey(a, b solanago.PublicKey) []byte {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		return b.Bytes()
	}
	return a.Bytes()
}

// Launch pulls the approved token and quote amounts from the caller and opens
// the pair. Everything is validated before any balance moves.
func (d *Dex) Launch(from solanago.PublicKey, params LaunchParams) (solanago.PublicKey, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if params.TokenAmount == nil || params.TokenAmount.Sign() <= 0 ||
		params.QuoteAmount == nil || params.QuoteAmount.Sign() <= 0 {
		return solanago.PublicKey{}, ErrZeroLiquidity
	}
	if params.MinTokenOut != nil && params.TokenAmount.Cmp(params.MinTokenOut) < 0 {
		return solanago.PublicKey{}, fmt.Errorf("%w: token side", ErrBelowMinimum)
	}
	if params.MinQuoteOut != nil && params.QuoteAmount.Cmp(params.MinQuoteOut) < 0 {
		return solanago.PublicKey{}, fmt.Errorf("%w: quote side", ErrBelowMinimum)
	}
	if _, ok := d.byToken[params.Token]; ok {
		return solanago.PublicKey{}, ErrPairExists
	}
	tokenLedger, ok := d.resolve(params.Token)
	if !ok {
		return solanago.PublicKey{}, ErrUnknownToken
	}

	// Validate both sides before pulling either, so a failed launch moves
	// nothing.
	if tokenLedger.Allowance(from, d.address).Cmp(params.TokenAmount) < 0 ||
		tokenLedger.BalanceOf(from).Cmp(params.TokenAmount) < 0 {
		return solanago.PublicKey{}, fmt.Errorf("%w: token side", ErrInsufficientFund)
	}
	if d.quote.Allowance(from, d.address).Cmp(params.QuoteAmount) < 0 ||
		d.quote.BalanceOf(from).Cmp(params.QuoteAmount) < 0 {
		return solanago.PublicKey{}, fmt.Errorf("%w: quote side", ErrInsufficientFund)
	}
	if err := tokenLedger.TransferFrom(d.address, from, d.address, params.TokenAmount); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := d.quote.TransferFrom(d.address, from, d.address, params.QuoteAmount); err != nil {
		return solanago.PublicKey{}, err
	}

	pairAddr := DerivePairAddress(params.Token, d.quote.MintAddress())
	pair := &Pair{
		Address:       pairAddr,
		Token:         params.Token,
		TokenReserve:  new(big.Int).Set(params.TokenAmount),
		QuoteReserve:  new(big.Int).Set(params.QuoteAmount),
		ProtocolShare: new(big.Int),
		Beneficiary:   params.Beneficiary,
		SwapFeePct:    params.SwapFeePct,
	}
	d.pairs[pairAddr] = pair
	d.byToken[params.Token] = pairAddr

	d.logger.Debug("pair opened",
		zap.String("pair", pairAddr.String()),
		zap.String("token", params.Token.String()),
		zap.String("token_reserve", pair.TokenReserve.String()),
		zap.String("quote_reserve", pair.QuoteReserve.String()))
	return pairAddr, nil
}

// SwapQuoteForToken swaps quoteIn against the pair, constant product with the
// fee taken on the quote input. The fee accrues to the pair's protocol share.
func (d *Dex) SwapQuoteForToken(user, pairAddr solanago.PublicKey, quoteIn *big.Int) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pair, ok := d.pairs[pairAddr]
	if !ok {
		return nil, ErrPairNotFound
	}
	if quoteIn == nil || quoteIn.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	tokenLedger, ok := d.resolve(pair.Token)
	if !ok {
		return nil, ErrUnknownToken
	}

	fee := math.PercentOf(quoteIn, pair.SwapFeePct)
	netIn := new(big.Int).Sub(quoteIn, fee)

	// out = tokenReserve * netIn / (quoteReserve + netIn)
	newQuote := new(big.Int).Add(pair.QuoteReserve, netIn)
	out, err := math.Div(math.Mul(pair.TokenReserve, netIn), newQuote)
	if err != nil {
		return nil, err
	}
	if out.Cmp(pair.TokenReserve) >= 0 {
		return nil, ErrInsufficientFund
	}

	if err := d.quote.Transfer(user, d.address, quoteIn); err != nil {
		return nil, err
	}
	if err := tokenLedger.Transfer(d.address, user, out); err != nil {
		// put the quote back, the swap did not happen
		_ = d.quote.Transfer(d.address, user, quoteIn)
		return nil, err
	}

	pair.QuoteReserve = newQuote
	pair.TokenReserve.Sub(pair.TokenReserve, out)
	pair.ProtocolShare.Add(pair.ProtocolShare, fee)
	return out, nil
}

// ViewShare returns the protocol share accumulated by the pair's swap fees.
func (d *Dex) ViewShare(pairAddr solanago.PublicKey) *big.Int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pair, ok := d.pairs[pairAddr]; ok {
		return new(big.Int).Set(pair.ProtocolShare)
	}
	return new(big.Int)
}

// ClaimShare pays the accumulated protocol share out to the given account and
// resets the accumulator.
func (d *Dex) ClaimShare(pairAddr solanago.PublicKey, to solanago.PublicKey) (*big.Int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pair, ok := d.pairs[pairAddr]
	if !ok {
		return nil, ErrPairNotFound
	}
	amount := new(big.Int).Set(pair.ProtocolShare)
	if amount.Sign() == 0 {
		return new(big.Int), nil
	}
	if err := d.quote.Transfer(d.address, to, amount); err != nil {
		return nil, err
	}
	pair.ProtocolShare.SetInt64(0)
	return amount, nil
}

// GetPair resolves the pair address for a token/quote combination.
func (d *Dex) GetPair(tokenA, tokenB solanago.PublicKey) (solanago.PublicKey, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, mint := range []solanago.PublicKey{tokenA, tokenB} {
		if addr, ok := d.byToken[mint]; ok {
			return addr, true
		}
	}
	return solanago.PublicKey{}, false
}

// PairState returns a copy of the pair for inspection.
func (d *Dex) PairState(pairAddr solanago.PublicKey) (Pair, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pair, ok := d.pairs[pairAddr]
	if !ok {
		return Pair{}, false
	}
	return Pair{
		Address:       pair.Address,
		Token:         pair.Token,
		TokenReserve:  new(big.Int).Set(pair.TokenReserve),
		QuoteReserve:  new(big.Int).Set(pair.QuoteReserve),
		ProtocolShare: new(big.Int).Set(pair.ProtocolShare),
		Beneficiary:   pair.Beneficiary,
		SwapFeePct:    pair.SwapFeePct,
	}, true
}
