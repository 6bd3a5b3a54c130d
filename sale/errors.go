package sale

import "errors"

var (
	// Validation
	ErrZeroAmount     = errors.New("sale: amount must be positive")
	ErrInvalidAddress = errors.New("sale: invalid address")

	// Wrong phase
	ErrSaleLaunched   = errors.New("sale: already launched")
	ErrNotLaunched    = errors.New("sale: not launched")
	ErrGoalNotReached = errors.New("sale: goal not reached")
	ErrNothingToClaim = errors.New("sale: nothing to claim")

	// Amount guards
	ErrGoalExceeded        = errors.New("sale: purchase would exceed goal plus slack")
	ErrSlippageExceeded    = errors.New("sale: output below caller minimum")
	ErrInsufficientTokens  = errors.New("sale: token amount exceeds balance")
	ErrInsufficientReserve = errors.New("sale: reserve cannot cover payout")

	// Concurrency / collaborators
	ErrReentrantCall = errors.New("sale: reentrant call")
	ErrExternalCall  = errors.New("sale: external call failed")
)
