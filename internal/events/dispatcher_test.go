package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestDispatcher_PublishToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var created, all []Event
	dispatcher.Subscribe(EventToyCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	dispatcher.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e)
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{ID: "1", Type: EventToyCreated}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := dispatcher.Publish(context.Background(), Event{ID: "2", Type: EventToyPurchased}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(created) != 1 || created[0].ID != "1" {
		t.Errorf("typed subscriber saw %v, want only event 1", created)
	}
	if len(all) != 2 {
		t.Errorf("catch-all subscriber saw %d events, want 2", len(all))
	}
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var delivered int
	dispatcher.Subscribe(EventToyDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventToyDeleted, func(context.Context, Event) error {
		delivered++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventToyDeleted}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if delivered != 1 {
		t.Errorf("second handler delivered %d times, want 1", delivered)
	}
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	if err := dispatcher.Publish(context.Background(), Event{Type: EventToyUpdated}); err != nil {
		t.Fatalf("Publish() with no subscribers error = %v", err)
	}
}
