package launchpad

import (
	"crypto/sha256"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/etherfun/launchpad-go/events"
	"github.com/etherfun/launchpad-go/factory"
	"github.com/etherfun/launchpad-go/launcher"
	"github.com/etherfun/launchpad-go/ledger"
)

// QuoteMint is the quote asset's mint address.
var QuoteMint = func() solanago.PublicKey {
	sum := sha256.Sum256([]byte("launchpad/quote/v1"))
	return solanago.PublicKeyFromBytes(sum[:])
}()

// Launchpad bundles the factory, the quote ledger, the in-memory dex and the
// event bus into one engine.
//
// Example:
//
// pad, _ := New(owner, logger)
//
// token, _ := pad.Factory.CreateSale(creator, name, symbol, metadata, nil, nil)
//
// pad.Factory.BuyToken(buyer, token, amountIn, minOut)
type Launchpad struct {
	Factory *factory.Factory
	Quote   *ledger.Ledger
	Dex     *launcher.Dex
	Bus     *events.Bus
}

// New wires a launchpad with the default configuration and fee recipients.
func New(owner solanago.PublicKey, logger *zap.Logger) (*Launchpad, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus := events.NewBus(logger)
	quote := ledger.New("Quote Token", "QUOTE", QuoteMint)

	pad := &Launchpad{Quote: quote, Bus: bus}
	dex := launcher.NewDex(quote, func(mint solanago.PublicKey) (*ledger.Ledger, bool) {
		if pad.Factory == nil {
			return nil, false
		}
		if s := pad.Factory.Sale(mint); s != nil {
			return s.Token(), true
		}
		return nil, false
	}, logger)
	pad.Dex = dex

	cfg, err := factory.DefaultConfig(factory.DefaultPrimaryFeeRecipient, factory.DefaultSecondaryFeeRecipient)
	if err != nil {
		return nil, err
	}
	f, err := factory.New(owner, quote, dex, dex, dex, cfg, bus, logger)
	if err != nil {
		return nil, err
	}
	pad.Factory = f
	return pad, nil
}
