package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var got []Event
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "t-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketClassified}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(got))
	}
	if got[0].TicketID != "t-1" {
		t.Errorf("ticket id = %q, want t-1", got[0].TicketID)
	}
}

func TestDispatcher_HandlerErrorLoggedAndDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	secondCalled := false
	dispatcher.Subscribe(EventTicketStatusChanged, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketStatusChanged, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !secondCalled {
		t.Error("second handler not invoked after first failed")
	}
	if logs.FilterMessage("event handler failed").Len() != 1 {
		t.Errorf("expected 1 warning for the failing handler, got %d", logs.Len())
	}
}
