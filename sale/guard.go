package sale

import "sync/atomic"

// guard is the per-instance busy marker. Every state-mutating entry point
// holds it across all of its external interactions, so a collaborator that
// calls back into the same sale fails with ErrReentrantCall instead of
// observing half-applied state.
type guard struct {
	busy atomic.Bool
}

func (g *guard) enter() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	return nil
}

func (g *guard) leave() {
	g.busy.Store(false)
}
