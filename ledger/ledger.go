package ledger

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrInsufficientBalance   = errors.New("ledger: insufficient balance")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")
	ErrZeroAddress           = errors.New("ledger: zero address")
	ErrNegativeAmount        = errors.New("ledger: negative amount")
)

// Ledger is an in-memory fungible token ledger with standard
// mint/transfer/approve semantics. Balances never go negative and
// sum(balances) == totalSupply holds after every operation.
type Ledger struct {
	mu          sync.RWMutex
	name        string
	symbol      string
	mint        solanago.PublicKey
	totalSupply *big.Int
	balances    map[solanago.PublicKey]*big.Int
	allowances  map[solanago.PublicKey]map[solanago.PublicKey]*big.Int
}

func New(name, symbol string, mint solanago.PublicKey) *Ledger {
	return &Ledger{
		name:        name,
		symbol:      symbol,
		mint:        mint,
		totalSupply: new(big.Int),
		balances:    make(map[solanago.PublicKey]*big.Int),
		allowances:  make(map[solanago.PublicKey]map[solanago.PublicKey]*big.Int),
	}
}

func (l *Ledger) Name() string                    { return l.name }
func (l *Ledger) Symbol() string                  { return l.symbol }
func (l *Ledger) MintAddress() solanago.PublicKey { return l.mint }

func (l *Ledger) TotalSupply() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.totalSupply)
}

func (l *Ledger) BalanceOf(owner solanago.PublicKey) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.balances[owner]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (l *Ledger) Allowance(owner, spender solanago.PublicKey) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.allowances[owner]; ok {
		if a, ok := m[spender]; ok {
			return new(big.Int).Set(a)
		}
	}
	return new(big.Int)
}

func (l *Ledger) Mint(to solanago.PublicKey, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(to, amount)
	l.totalSupply.Add(l.totalSupply, amount)
	return nil
}

func (l *Ledger) Transfer(from, to solanago.PublicKey, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

func (l *Ledger) Approve(owner, spender solanago.PublicKey, amount *big.Int) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[solanago.PublicKey]*big.Int)
	}
	l.allowances[owner][spender] = new(big.Int).Set(amount)
	return nil
}

func (l *Ledger) TransferFrom(spender, from, to solanago.PublicKey, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	allowed := l.allowances[from][spender]
	if allowed == nil || allowed.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s spending for %s", ErrInsufficientAllowance, spender, from)
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	allowed.Sub(allowed, amount)
	l.credit(to, amount)
	return nil
}

func (l *Ledger) credit(to solanago.PublicKey, amount *big.Int) {
	if b, ok := l.balances[to]; ok {
		b.Add(b, amount)
		return
	}
	l.balances[to] = new(big.Int).Set(amount)
}

func (l *Ledger) debit(from solanago.PublicKey, amount *big.Int) error {
	b := l.balances[from]
	if b == nil || b.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, from)
	}
	b.Sub(b, amount)
	return nil
}
