package events

import (
	"errors"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	token := solanago.NewWallet().PublicKey()

	var got []Event
	bus.SubscribeFunc(SaleCreated, func(e Event) error {
		got = append(got, e)
		return nil
	})

	bus.Publish(SaleCreatedEvent{
		BaseEvent: BaseEvent{EventType: SaleCreated, EventTime: time.Now()},
		Token:     token,
		Name:      "Test",
		Symbol:    "TST",
	})
	if len(got) != 1 {
		t.Fatal("expected 1 event, got", len(got))
	}
	ev, ok := got[0].(SaleCreatedEvent)
	if !ok || ev.Token != token || ev.Symbol != "TST" {
		t.Fatal("event payload off", got[0])
	}

	// Other event types do not reach the handler.
	bus.Publish(SaleLaunchedEvent{BaseEvent: BaseEvent{EventType: SaleLaunched, EventTime: time.Now()}})
	if len(got) != 1 {
		t.Fatal("handler received wrong event type")
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(nil)

	count := 0
	sub := bus.SubscribeFunc(TokensBought, func(Event) error {
		count++
		return nil
	})
	bus.Publish(TokensBoughtEvent{BaseEvent: BaseEvent{EventType: TokensBought, EventTime: time.Now()}})
	sub.Unsubscribe()
	bus.Publish(TokensBoughtEvent{BaseEvent: BaseEvent{EventType: TokensBought, EventTime: time.Now()}})
	if count != 1 {
		t.Fatal("expected exactly 1 delivery, got", count)
	}
}

func TestHandlerErrorDoesNotPropagate(t *testing.T) {
	bus := NewBus(nil)

	reached := false
	bus.SubscribeFunc(TokensSold, func(Event) error {
		return errors.New("indexer down")
	})
	bus.SubscribeFunc(TokensSold, func(Event) error {
		reached = true
		return nil
	})
	bus.Publish(TokensSoldEvent{BaseEvent: BaseEvent{EventType: TokensSold, EventTime: time.Now()}})
	if !reached {
		t.Fatal("failing handler blocked the rest")
	}
}
