package factory

import (
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/etherfun/launchpad-go/events"
	"github.com/etherfun/launchpad-go/launcher"
	"github.com/etherfun/launchpad-go/ledger"
	"github.com/etherfun/launchpad-go/sale"
)

// Factory is the launchpad registry and orchestrator: it assigns
// deterministic sale addresses, materializes sale instances on the first
// contribution, forwards buy/sell/claim traffic and triggers the launch
// transition when a buy crosses the goal.
type Factory struct {
	busy   atomic.Bool
	logger *zap.Logger
	bus    *events.Bus

	programID solanago.PublicKey
	owner     solanago.PublicKey
	quote     *ledger.Ledger

	target launcher.Launcher
	pairs  launcher.PairLookup
	shares launcher.PoolShareHolder

	config CurveConfig

	records  map[solanago.PublicKey]*SaleRecord
	sales    map[solanago.PublicKey]*sale.Sale
	nonces   map[solanago.PublicKey]uint64
	claimed  map[solanago.PublicKey]map[solanago.PublicKey]bool
	metadata map[solanago.PublicKey]Metadata
}

func New(
	owner solanago.PublicKey,
	quote *ledger.Ledger,
	target launcher.Launcher,
	pairs launcher.PairLookup,
	shares launcher.PoolShareHolder,
	cfg CurveConfig,
	bus *events.Bus,
	logger *zap.Logger,
) (*Factory, error) {
	if owner.IsZero() {
		return nil, ErrInvalidSaleParams
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		logger:    logger.Named("factory"),
		bus:       bus,
		programID: FactoryProgramID,
		owner:     owner,
		quote:     quote,
		target:    target,
		pairs:     pairs,
		shares:    shares,
		config:    cfg,
		records:   make(map[solanago.PublicKey]*SaleRecord),
		sales:     make(map[solanago.PublicKey]*sale.Sale),
		nonces:    make(map[solanago.PublicKey]uint64),
		claimed:   make(map[solanago.PublicKey]map[solanago.PublicKey]bool),
		metadata:  make(map[solanago.PublicKey]Metadata),
	}, nil
}

func (f *Factory) enter() error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	return nil
}

func (f *Factory) leave() { f.busy.Store(false) }

// Config returns the current defaults for future sales.
func (f *Factory) Config() CurveConfig { return f.config }

// Record returns a copy of the registry entry.
func (f *Factory) Record(token solanago.PublicKey) (SaleRecord, bool) {
	r, ok := f.records[token]
	if !ok {
		return SaleRecord{}, false
	}
	return r.clone(), true
}

// Sale returns the materialized instance, nil if only the registry entry
// exists so far.
func (f *Factory) Sale(token solanago.PublicKey) *sale.Sale {
	return f.sales[token]
}

// Metadata returns the stored metadata for a sale.
func (f *Factory) Metadata(token solanago.PublicKey) (Metadata, bool) {
	m, ok := f.metadata[token]
	return m, ok
}

// PredictSaleAddress derives the address a sale by this creator/name/symbol/
// nonce would get under the current defaults, deployed or not.
func (f *Factory) PredictSaleAddress(creator solanago.PublicKey, name, symbol string, nonce uint64) (solanago.PublicKey, error) {
	return PredictAddress(f.programID, creator, name, symbol, nonce, f.config)
}

// CreateSale registers a sale under a fresh per-creator nonce. With a
// positive initialBuy (capped by MaxInitialBuy) the sale is materialized
// immediately and the creator's first buy is performed inline; otherwise
// materialization waits for the first BuyToken call.
func (f *Factory) CreateSale(creator solanago.PublicKey, name, symbol, metadataJSON string, initialBuy, minTokensOut *big.Int) (solanago.PublicKey, error) {
	if err := f.enter(); err != nil {
		return solanago.PublicKey{}, err
	}
	defer f.leave()

	if creator.IsZero() {
		return solanago.PublicKey{}, ErrInvalidSaleParams
	}
	if name == "" || symbol == "" {
		return solanago.PublicKey{}, ErrInvalidSaleParams
	}
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if initialBuy != nil && initialBuy.Cmp(f.config.MaxInitialBuy) > 0 {
		return solanago.PublicKey{}, ErrInitialBuyTooBig
	}

	nonce := f.nonces[creator] + 1
	addr, err := PredictAddress(f.programID, creator, name, symbol, nonce, f.config)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	f.nonces[creator] = nonce

	record := &SaleRecord{
		Address:       addr,
		Creator:       creator,
		Name:          name,
		Symbol:        symbol,
		TotalRaised:   new(big.Int),
		SaleGoal:      new(big.Int).Set(f.config.SaleGoal),
		CreationNonce: nonce,
		Config:        f.config,
	}
	f.records[addr] = record
	f.metadata[addr] = meta

	// The inline buy is the only fallible step left; a failure must leave no
	// trace of the registration behind. The one exception is a launcher
	// failure after the buy itself committed: the registration stands and the
	// error is surfaced alongside the address.
	var launchErr error
	if initialBuy != nil && initialBuy.Sign() > 0 {
		err := func() error {
			if _, err := f.materialize(record, creator); err != nil {
				return err
			}
			return f.buyAndMaybeLaunch(record, creator, initialBuy, minTokensOut)
		}()
		if err != nil && !errors.Is(err, ErrLaunchFailed) {
			delete(f.records, addr)
			delete(f.metadata, addr)
			delete(f.sales, addr)
			f.nonces[creator] = nonce - 1
			return solanago.PublicKey{}, err
		}
		launchErr = err
	}

	f.logger.Info("sale registered",
		zap.String("token", addr.String()),
		zap.String("creator", creator.String()),
		zap.String("symbol", symbol),
		zap.Uint64("nonce", nonce),
		zap.Uint64("config_version", f.config.Version))
	f.publish(events.SaleCreatedEvent{
		BaseEvent: events.BaseEvent{EventType: events.SaleCreated, EventTime: time.Now()},
		Token:     addr,
		Creator:   creator,
		Name:      name,
		Symbol:    symbol,
	})
	return addr, launchErr
}

// BuyToken forwards a buy to the sale, deploying it lazily on the first
// contribution (the caller becomes firstBuyer). A buy that lifts the raise to
// the goal triggers the launch transition before returning. When the buy
// commits but the launcher fails, the error wraps ErrLaunchFailed and the
// record stays unlaunched; the next goal-level buy retriggers the launch.
func (f *Factory) BuyToken(buyer, token solanago.PublicKey, quoteIn, minTokensOut *big.Int) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	record, ok := f.records[token]
	if !ok {
		return ErrSaleNotFound
	}
	if record.Launched {
		return ErrSaleLaunched
	}
	if _, ok := f.sales[token]; !ok {
		if _, err := f.materialize(record, buyer); err != nil {
			return err
		}
	}
	return f.buyAndMaybeLaunch(record, buyer, quoteIn, minTokensOut)
}

func (f *Factory) materialize(record *SaleRecord, firstBuyer solanago.PublicKey) (*sale.Sale, error) {
	s, err := sale.New(record.Address, record.Creator, firstBuyer, record.Name, record.Symbol,
		record.Config.SaleParams(), f.quote, f.bus, f.logger)
	if err != nil {
		return nil, err
	}
	record.FirstBuyer = firstBuyer
	f.sales[record.Address] = s
	f.logger.Debug("sale deployed",
		zap.String("token", record.Address.String()),
		zap.String("first_buyer", firstBuyer.String()))
	return s, nil
}

func (f *Factory) buyAndMaybeLaunch(record *SaleRecord, buyer solanago.PublicKey, quoteIn, minTokensOut *big.Int) error {
	s := f.sales[record.Address]
	raised, _, err := s.Buy(buyer, quoteIn, minTokensOut)
	if err != nil {
		return err
	}
	record.TotalRaised.Set(raised)

	if raised.Cmp(record.SaleGoal) < 0 {
		return nil
	}
	// The single launch trigger point. The buy is already committed at this
	// point; a launcher failure surfaces as ErrLaunchFailed and leaves the
	// record unlaunched so a later buy can trigger the transition again.
	record.Launched = true
	cfg := sale.LaunchConfig{SwapFeePct: record.Config.LaunchSwapFeePct}
	if err := s.LaunchSale(f.target, cfg, record.FirstBuyer, buyer); err != nil {
		record.Launched = false
		return fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}
	return nil
}

// SellToken forwards a sell, gated on the registry's launch flag.
func (f *Factory) SellToken(seller, token solanago.PublicKey, tokenAmount, minQuoteOut *big.Int) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	record, ok := f.records[token]
	if !ok {
		return ErrSaleNotFound
	}
	if record.Launched {
		return ErrSaleLaunched
	}
	s, ok := f.sales[token]
	if !ok {
		return ErrNotDeployed
	}
	raised, _, err := s.Sell(seller, tokenAmount, minQuoteOut)
	if err != nil {
		return err
	}
	record.TotalRaised.Set(raised)
	return nil
}

// Claim settles a holder's balance post-launch, at most once per
// (token, user).
func (f *Factory) Claim(user, token solanago.PublicKey) (*big.Int, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	defer f.leave()

	record, ok := f.records[token]
	if !ok {
		return nil, ErrSaleNotFound
	}
	if !record.Launched {
		return nil, sale.ErrNotLaunched
	}
	if f.claimed[token][user] {
		return nil, ErrAlreadyClaimed
	}
	s, ok := f.sales[token]
	if !ok {
		return nil, ErrNotDeployed
	}
	amount, err := s.ClaimTokens(user)
	if err != nil {
		return nil, err
	}
	if f.claimed[token] == nil {
		f.claimed[token] = make(map[solanago.PublicKey]bool)
	}
	f.claimed[token][user] = true
	return amount, nil
}

// TakeFee claims the launched pool's protocol share for a sale.
func (f *Factory) TakeFee(token, beneficiary solanago.PublicKey) (*big.Int, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	defer f.leave()

	s, ok := f.sales[token]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return s.TakeFee(f.pairs, f.shares, beneficiary)
}

// UpdateMetadata replaces a sale's metadata document, creator only.
func (f *Factory) UpdateMetadata(caller, token solanago.PublicKey, metadataJSON string) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	record, ok := f.records[token]
	if !ok {
		return ErrSaleNotFound
	}
	if record.Creator != caller {
		return ErrNotCreator
	}
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return err
	}
	f.metadata[token] = meta
	f.publish(events.MetadataUpdatedEvent{
		BaseEvent: events.BaseEvent{EventType: events.MetadataUpdated, EventTime: time.Now()},
		Token:     token,
		Creator:   caller,
	})
	return nil
}

// SetDefaults replaces the factory defaults for future sales, owner only.
// Existing records keep their creation-time snapshot.
func (f *Factory) SetDefaults(caller solanago.PublicKey, cfg CurveConfig) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	if caller != f.owner {
		return ErrNotOwner
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Version = f.config.Version + 1
	f.config = cfg
	f.logger.Info("defaults updated", zap.Uint64("config_version", cfg.Version))
	return nil
}

// SetLaunchTarget points future launches at a different liquidity launcher,
// owner only. Sales already launched are unaffected.
func (f *Factory) SetLaunchTarget(caller solanago.PublicKey, target launcher.Launcher, pairs launcher.PairLookup, shares launcher.PoolShareHolder) error {
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	if caller != f.owner {
		return ErrNotOwner
	}
	if target == nil {
		return fmt.Errorf("%w: nil launch target", ErrInvalidConfig)
	}
	f.target = target
	f.pairs = pairs
	f.shares = shares
	return nil
}

func (f *Factory) publish(event events.Event) {
	if f.bus != nil {
		f.bus.Publish(event)
	}
}
