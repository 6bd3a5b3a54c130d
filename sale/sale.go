package sale

import (
	"fmt"
	"math/big"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/etherfun/launchpad-go/events"
	"github.com/etherfun/launchpad-go/ledger"
	smath "github.com/etherfun/launchpad-go/sale/math"
	"github.com/etherfun/launchpad-go/sale/shared"
)

// Sale is one project's bonding-curve sale: the token ledger minted to
// itself, the curve accounting, the holder ledger of virtual balances and the
// Selling -> GoalReached -> Launched state machine.
type Sale struct {
	guard  guard
	logger *zap.Logger
	bus    *events.Bus

	address    solanago.PublicKey
	creator    solanago.PublicKey
	firstBuyer solanago.PublicKey
	params     shared.SaleParams

	token *ledger.Ledger
	quote *ledger.Ledger

	tokensSold  *big.Int
	totalRaised *big.Int
	status      bool // goal reached, irreversible
	launched    bool // terminal, irreversible
	pair        solanago.PublicKey

	balances map[solanago.PublicKey]*big.Int
	holders  []solanago.PublicKey
	isHolder map[solanago.PublicKey]bool
	history  []shared.HistoricalSample
}

// New creates the sale instance and mints the full token supply to the sale's
// own address. Claims and the launch handover draw from that self-held supply.
func New(
	address solanago.PublicKey,
	creator solanago.PublicKey,
	firstBuyer solanago.PublicKey,
	name string,
	symbol string,
	params shared.SaleParams,
	quote *ledger.Ledger,
	bus *events.Bus,
	logger *zap.Logger,
) (*Sale, error) {
	if address.IsZero() || creator.IsZero() {
		return nil, ErrInvalidAddress
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	token := ledger.New(name, symbol, address)
	if err := token.Mint(address, params.TotalSupply); err != nil {
		return nil, err
	}
	return &Sale{
		logger:      logger.Named("sale").With(zap.String("token", address.String())),
		bus:         bus,
		address:     address,
		creator:     creator,
		firstBuyer:  firstBuyer,
		params:      params,
		token:       token,
		quote:       quote,
		tokensSold:  new(big.Int),
		totalRaised: new(big.Int),
		balances:    make(map[solanago.PublicKey]*big.Int),
		isHolder:    make(map[solanago.PublicKey]bool),
	}, nil
}

func (s *Sale) Address() solanago.PublicKey    { return s.address }
func (s *Sale) Creator() solanago.PublicKey    { return s.creator }
func (s *Sale) FirstBuyer() solanago.PublicKey { return s.firstBuyer }
func (s *Sale) Token() *ledger.Ledger          { return s.token }
func (s *Sale) Params() shared.SaleParams      { return s.params }
func (s *Sale) Launched() bool                 { return s.launched }
func (s *Sale) GoalReached() bool              { return s.status }
func (s *Sale) Pair() solanago.PublicKey       { return s.pair }

// Status reports the lifecycle phase.
func (s *Sale) Status() shared.SaleStatus {
	switch {
	case s.launched:
		return shared.StatusLaunched
	case s.status:
		return shared.StatusGoalReached
	}
	return shared.StatusSelling
}

func (s *Sale) TotalRaised() *big.Int { return new(big.Int).Set(s.totalRaised) }
func (s *Sale) TokensSold() *big.Int  { return new(big.Int).Set(s.tokensSold) }

func (s *Sale) BalanceOf(user solanago.PublicKey) *big.Int {
	if b, ok := s.balances[user]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Holders returns the append-only holder list in first-buy order.
func (s *Sale) Holders() []solanago.PublicKey {
	out := make([]solanago.PublicKey, len(s.holders))
	copy(out, s.holders)
	return out
}

// History returns the (time, totalRaised) series, one sample per buy or sell.
func (s *Sale) History() []shared.HistoricalSample {
	out := make([]shared.HistoricalSample, len(s.history))
	copy(out, s.history)
	return out
}

// Buy exchanges quoteIn for tokens along the curve. The protocol fee comes
// off the top and goes to the two fee recipients; the remainder moves the
// curve. Returns the new total raised and the buyer's virtual balance.
func (s *Sale) Buy(buyer solanago.PublicKey, quoteIn, minTokensOut *big.Int) (*big.Int, *big.Int, error) {
	if err := s.guard.enter(); err != nil {
		return nil, nil, err
	}
	defer s.guard.leave()

	if s.launched {
		return nil, nil, ErrSaleLaunched
	}
	if quoteIn == nil || quoteIn.Sign() <= 0 {
		return nil, nil, ErrZeroAmount
	}
	ceiling := smath.Add(s.params.SaleGoal, s.params.OvershootSlack)
	if smath.Add(s.totalRaised, quoteIn).Cmp(ceiling) > 0 {
		return nil, nil, ErrGoalExceeded
	}

	q, err := smath.BuyQuote(s.totalRaised, quoteIn, s.params)
	if err != nil {
		return nil, nil, err
	}
	if minTokensOut != nil && q.TokensOut.Cmp(minTokensOut) < 0 {
		return nil, nil, fmt.Errorf("%w: got %s, want at least %s", ErrSlippageExceeded, q.TokensOut, minTokensOut)
	}

	// Pull the full amount first, then forward the fee shares. The incoming
	// transfer is the only one that can fail; nothing local has mutated yet.
	if err := s.quote.Transfer(buyer, s.address, quoteIn); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
	}
	if err := s.payFees(q.Fee); err != nil {
		_ = s.quote.Transfer(s.address, buyer, quoteIn)
		return nil, nil, err
	}

	s.tokensSold.Add(s.tokensSold, q.TokensOut)
	s.totalRaised.Add(s.totalRaised, q.NetQuoteIn)
	s.creditHolder(buyer, q.TokensOut)
	s.appendSample()
	if !s.status && s.totalRaised.Cmp(s.params.SaleGoal) >= 0 {
		s.status = true
		s.logger.Debug("sale goal reached", zap.String("total_raised", s.totalRaised.String()))
	}

	balance := s.BalanceOf(buyer)
	s.logger.Debug("buy",
		zap.String("buyer", buyer.String()),
		zap.String("quote_in", quoteIn.String()),
		zap.String("tokens_out", q.TokensOut.String()),
		zap.String("total_raised", s.totalRaised.String()))
	s.publish(events.TokensBoughtEvent{
		BaseEvent:    events.BaseEvent{EventType: events.TokensBought, EventTime: time.Now()},
		Token:        s.address,
		Buyer:        buyer,
		QuoteIn:      new(big.Int).Set(quoteIn),
		TokensOut:    q.TokensOut,
		TotalRaised:  s.TotalRaised(),
		BuyerBalance: balance,
	})
	return s.TotalRaised(), balance, nil
}

// Sell burns tokenAmount of the seller's virtual balance back into quote. The
// gross payout comes off the curve, the fee off the gross. Returns the new
// total raised and the seller's remaining balance.
func (s *Sale) Sell(seller solanago.PublicKey, tokenAmount, minQuoteOut *big.Int) (*big.Int, *big.Int, error) {
	if err := s.guard.enter(); err != nil {
		return nil, nil, err
	}
	defer s.guard.leave()

	if s.launched {
		return nil, nil, ErrSaleLaunched
	}
	if tokenAmount == nil || tokenAmount.Sign() <= 0 {
		return nil, nil, ErrZeroAmount
	}
	held := s.balances[seller]
	if held == nil || held.Cmp(tokenAmount) < 0 {
		return nil, nil, ErrInsufficientTokens
	}

	q, err := smath.SellQuote(s.tokensSold, tokenAmount, s.params)
	if err != nil {
		return nil, nil, err
	}
	if minQuoteOut != nil && q.NetQuoteOut.Cmp(minQuoteOut) < 0 {
		return nil, nil, fmt.Errorf("%w: got %s, want at least %s", ErrSlippageExceeded, q.NetQuoteOut, minQuoteOut)
	}
	if s.quote.BalanceOf(s.address).Cmp(q.GrossQuoteOut) < 0 {
		return nil, nil, ErrInsufficientReserve
	}
	newRaised, err := smath.Sub(s.totalRaised, q.GrossQuoteOut)
	if err != nil {
		return nil, nil, ErrInsufficientReserve
	}

	if err := s.quote.Transfer(s.address, seller, q.NetQuoteOut); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
	}
	if err := s.payFees(q.Fee); err != nil {
		_ = s.quote.Transfer(seller, s.address, q.NetQuoteOut)
		return nil, nil, err
	}

	s.tokensSold.Sub(s.tokensSold, tokenAmount)
	s.totalRaised.Set(newRaised)
	held.Sub(held, tokenAmount)
	s.appendSample()

	balance := s.BalanceOf(seller)
	s.logger.Debug("sell",
		zap.String("seller", seller.String()),
		zap.String("tokens_in", tokenAmount.String()),
		zap.String("quote_out", q.NetQuoteOut.String()),
		zap.String("total_raised", s.totalRaised.String()))
	s.publish(events.TokensSoldEvent{
		BaseEvent:     events.BaseEvent{EventType: events.TokensSold, EventTime: time.Now()},
		Token:         s.address,
		Seller:        seller,
		TokensIn:      new(big.Int).Set(tokenAmount),
		QuoteOut:      q.NetQuoteOut,
		TotalRaised:   s.TotalRaised(),
		SellerBalance: balance,
	})
	return s.TotalRaised(), balance, nil
}

func (s *Sale) payFees(fee shared.FeeAmounts) error {
	if fee.Primary.Sign() > 0 {
		if err := s.quote.Transfer(s.address, s.params.PrimaryFeeRecipient, fee.Primary); err != nil {
			return fmt.Errorf("%w: %v", ErrExternalCall, err)
		}
	}
	if fee.Secondary.Sign() > 0 {
		if err := s.quote.Transfer(s.address, s.params.SecondaryFeeRecipient, fee.Secondary); err != nil {
			_ = s.quote.Transfer(s.params.PrimaryFeeRecipient, s.address, fee.Primary)
			return fmt.Errorf("%w: %v", ErrExternalCall, err)
		}
	}
	return nil
}

func (s *Sale) creditHolder(buyer solanago.PublicKey, amount *big.Int) {
	if b, ok := s.balances[buyer]; ok {
		b.Add(b, amount)
	} else {
		s.balances[buyer] = new(big.Int).Set(amount)
	}
	if !s.isHolder[buyer] {
		s.isHolder[buyer] = true
		s.holders = append(s.holders, buyer)
	}
}

func (s *Sale) appendSample() {
	s.history = append(s.history, shared.HistoricalSample{
		Time:        time.Now(),
		TotalRaised: s.TotalRaised(),
	})
}

func (s *Sale) publish(event events.Event) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
