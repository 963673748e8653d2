package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/ticket-triage/internal/events"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(events.EventPipelineFailed, func(ctx context.Context, e events.Event) error {
		got = append(got, "first:"+e.TicketID)
		return nil
	})
	dispatcher.Subscribe(events.EventPipelineFailed, func(ctx context.Context, e events.Event) error {
		got = append(got, "second:"+e.TicketID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventPipelineFailed,
		TicketID: "t-1",
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(got) != 2 || got[0] != "first:t-1" || got[1] != "second:t-1" {
		t.Errorf("unexpected delivery order: %v", got)
	}
}

func TestDispatcher_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	reached := false
	dispatcher.Subscribe(events.EventEscalationRaised, func(ctx context.Context, e events.Event) error {
		return errors.New("delivery failed")
	})
	dispatcher.Subscribe(events.EventEscalationRaised, func(ctx context.Context, e events.Event) error {
		reached = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventEscalationRaised}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !reached {
		t.Error("expected remaining handlers to run after an error")
	}
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(events.EventEscalationRaised, func(ctx context.Context, e events.Event) error {
		called = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventPipelineFailed}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if called {
		t.Error("handler for a different event type must not fire")
	}
}
