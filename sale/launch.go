package sale

import (
	"fmt"
	"math/big"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/etherfun/launchpad-go/events"
	"github.com/etherfun/launchpad-go/launcher"
	smath "github.com/etherfun/launchpad-go/sale/math"
	"github.com/etherfun/launchpad-go/sale/shared"
)

// LaunchConfig carries the fee parameters forwarded to the liquidity launcher.
type LaunchConfig struct {
	MinTokenOut *big.Int
	MinQuoteOut *big.Int
	SwapFeePct  int64
}

// LaunchSale performs the one-time transition to Launched: the unsold token
// remainder plus the non-creator share of the raise move to the liquidity
// launcher, the creator takes their cut, and whatever quote is left splits
// equally between the first buyer and the initiator. A launcher failure
// aborts the whole launch with nothing moved and nothing mutated.
func (s *Sale) LaunchSale(target launcher.Launcher, cfg LaunchConfig, firstBuyer, initiator solanago.PublicKey) error {
	if err := s.guard.enter(); err != nil {
		return err
	}
	defer s.guard.leave()

	if s.launched {
		return ErrSaleLaunched
	}
	if !s.status {
		return ErrGoalNotReached
	}
	if target == nil {
		return fmt.Errorf("%w: nil launch target", ErrInvalidAddress)
	}

	forwarded := smath.PercentOf(s.totalRaised, shared.PercentDenominator-s.params.CreatorSharePercent)
	creatorShare, err := smath.Sub(s.totalRaised, forwarded)
	if err != nil {
		return err
	}
	// Everything self-held beyond the claim reserve seeds the pool.
	unsold, err := smath.Sub(s.token.BalanceOf(s.address), s.tokensSold)
	if err != nil {
		return ErrInsufficientReserve
	}

	custody := target.Address()
	if err := s.token.Approve(s.address, custody, unsold); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalCall, err)
	}
	if err := s.quote.Approve(s.address, custody, forwarded); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalCall, err)
	}

	pair, err := target.Launch(s.address, launcher.LaunchParams{
		Token:       s.address,
		TokenAmount: unsold,
		QuoteAmount: forwarded,
		MinTokenOut: cfg.MinTokenOut,
		MinQuoteOut: cfg.MinQuoteOut,
		SwapFeePct:  cfg.SwapFeePct,
		Beneficiary: s.creator,
	})
	if err != nil {
		_ = s.token.Approve(s.address, custody, new(big.Int))
		_ = s.quote.Approve(s.address, custody, new(big.Int))
		return fmt.Errorf("%w: %v", ErrExternalCall, err)
	}

	// Commit point: the pool exists, the transition is irreversible.
	s.launched = true
	s.pair = pair

	if creatorShare.Sign() > 0 {
		if err := s.quote.Transfer(s.address, s.creator, creatorShare); err != nil {
			return fmt.Errorf("%w: %v", ErrExternalCall, err)
		}
	}
	remaining := s.quote.BalanceOf(s.address)
	if remaining.Sign() > 0 {
		half, _ := smath.Div(remaining, big.NewInt(2))
		rest, _ := smath.Sub(remaining, half)
		if !firstBuyer.IsZero() && half.Sign() > 0 {
			if err := s.quote.Transfer(s.address, firstBuyer, half); err != nil {
				return fmt.Errorf("%w: %v", ErrExternalCall, err)
			}
		}
		if !initiator.IsZero() && rest.Sign() > 0 {
			if err := s.quote.Transfer(s.address, initiator, rest); err != nil {
				return fmt.Errorf("%w: %v", ErrExternalCall, err)
			}
		}
	}

	s.logger.Info("sale launched",
		zap.String("pair", pair.String()),
		zap.String("forwarded_quote", forwarded.String()),
		zap.String("pool_tokens", unsold.String()),
		zap.String("creator_share", creatorShare.String()))
	s.publish(events.SaleLaunchedEvent{
		BaseEvent:   events.BaseEvent{EventType: events.SaleLaunched, EventTime: time.Now()},
		Token:       s.address,
		TotalRaised: s.TotalRaised(),
		Pair:        pair,
	})
	return nil
}

// ClaimTokens settles a holder's virtual balance into a real token transfer.
// The balance is zeroed before the transfer so a reentering ledger cannot
// double-spend it.
func (s *Sale) ClaimTokens(user solanago.PublicKey) (*big.Int, error) {
	if err := s.guard.enter(); err != nil {
		return nil, err
	}
	defer s.guard.leave()

	if !s.launched {
		return nil, ErrNotLaunched
	}
	held := s.balances[user]
	if held == nil || held.Sign() == 0 {
		return nil, ErrNothingToClaim
	}

	amount := new(big.Int).Set(held)
	held.SetInt64(0)
	if err := s.token.Transfer(s.address, user, amount); err != nil {
		held.Set(amount)
		return nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
	}

	s.logger.Debug("claim",
		zap.String("user", user.String()),
		zap.String("amount", amount.String()))
	s.publish(events.TokensClaimedEvent{
		BaseEvent: events.BaseEvent{EventType: events.TokensClaimed, EventTime: time.Now()},
		Token:     s.address,
		User:      user,
		Amount:    amount,
	})
	return amount, nil
}

// TakeFee claims the pool's accumulated protocol share and splits it between
// the beneficiary and the secondary fee recipient.
func (s *Sale) TakeFee(pairs launcher.PairLookup, shares launcher.PoolShareHolder, beneficiary solanago.PublicKey) (*big.Int, error) {
	if err := s.guard.enter(); err != nil {
		return nil, err
	}
	defer s.guard.leave()

	if !s.launched {
		return nil, ErrNotLaunched
	}
	if beneficiary.IsZero() {
		return nil, ErrInvalidAddress
	}
	pair, ok := pairs.GetPair(s.address, s.quote.MintAddress())
	if !ok {
		return nil, fmt.Errorf("%w: pair not found", ErrExternalCall)
	}
	if shares.ViewShare(pair).Sign() == 0 {
		return new(big.Int), nil
	}
	claimed, err := shares.ClaimShare(pair, s.address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
	}

	primary := smath.PercentOf(claimed, s.params.PrimaryFeeShare)
	secondary, err := smath.Sub(claimed, primary)
	if err != nil {
		return nil, err
	}
	if primary.Sign() > 0 {
		if err := s.quote.Transfer(s.address, beneficiary, primary); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
		}
	}
	if secondary.Sign() > 0 {
		if err := s.quote.Transfer(s.address, s.params.SecondaryFeeRecipient, secondary); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExternalCall, err)
		}
	}

	s.logger.Debug("fee taken",
		zap.String("pair", pair.String()),
		zap.String("claimed", claimed.String()))
	return claimed, nil
}
