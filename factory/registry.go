package factory

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
)

// SaleRecord is the registry entry for one sale, created at registration.
// The record may reference a not-yet-materialized sale: the address is
// derived before deployment and TotalRaised stays zero until the first buy.
type SaleRecord struct {
	Address       solanago.PublicKey
	Creator       solanago.PublicKey
	Name          string
	Symbol        string
	TotalRaised   *big.Int
	SaleGoal      *big.Int
	Launched      bool
	CreationNonce uint64
	FirstBuyer    solanago.PublicKey

	// Config is the snapshot of the factory defaults active at creation.
	Config CurveConfig
}

func (r *SaleRecord) clone() SaleRecord {
	out := *r
	out.TotalRaised = new(big.Int).Set(r.TotalRaised)
	out.SaleGoal = new(big.Int).Set(r.SaleGoal)
	return out
}
