package events

import (
	"math/big"
	"time"

	solanago "github.com/gagliardetto/solana-go"
)

// EventType represents the type of event.
type EventType string

const (
	SaleCreated     EventType = "sale.created"
	SaleLaunched    EventType = "sale.launched"
	TokensBought    EventType = "sale.tokens_bought"
	TokensSold      EventType = "sale.tokens_sold"
	TokensClaimed   EventType = "sale.tokens_claimed"
	MetadataUpdated EventType = "sale.metadata_updated"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.EventTime }

// SaleCreatedEvent is emitted when the factory registers a new sale.
type SaleCreatedEvent struct {
	BaseEvent
	Token   solanago.PublicKey
	Creator solanago.PublicKey
	Name    string
	Symbol  string
}

// TokensBoughtEvent is emitted after a successful buy.
type TokensBoughtEvent struct {
	BaseEvent
	Token        solanago.PublicKey
	Buyer        solanago.PublicKey
	QuoteIn      *big.Int
	TokensOut    *big.Int
	TotalRaised  *big.Int
	BuyerBalance *big.Int
}

// TokensSoldEvent is emitted after a successful sell.
type TokensSoldEvent struct {
	BaseEvent
	Token         solanago.PublicKey
	Seller        solanago.PublicKey
	TokensIn      *big.Int
	QuoteOut      *big.Int
	TotalRaised   *big.Int
	SellerBalance *big.Int
}

// SaleLaunchedEvent is emitted once, on the irreversible launch transition.
type SaleLaunchedEvent struct {
	BaseEvent
	Token       solanago.PublicKey
	TotalRaised *big.Int
	Pair        solanago.PublicKey
}

// TokensClaimedEvent is emitted when a holder converts a virtual balance into
// a real token transfer.
type TokensClaimedEvent struct {
	BaseEvent
	Token  solanago.PublicKey
	User   solanago.PublicKey
	Amount *big.Int
}

// MetadataUpdatedEvent is emitted on a creator metadata update.
type MetadataUpdatedEvent struct {
	BaseEvent
	Token   solanago.PublicKey
	Creator solanago.PublicKey
}

// Handler processes a single event.
type Handler interface {
	Handle(event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(event Event) error

func (f HandlerFunc) Handle(event Event) error { return f(event) }

// Subscription represents an active handler registration.
type Subscription interface {
	Unsubscribe()
}
