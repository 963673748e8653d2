package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/notify"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/testutil"
)

func escalationEvent(severity domain.Severity) events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      events.EventEscalationRaised,
		TicketID:  "t-1",
		Timestamp: time.Now().UTC(),
		Payload: events.EscalationRaisedPayload{
			Escalation: domain.EscalationEvent{
				Severity: severity,
				TicketID: "t-1",
				Summary:  "needs follow-up",
				Reply:    "we are on it",
				Contact:  "customer@example.com",
			},
			Ticket: domain.Ticket{ID: "t-1", Subject: "Custom request", Body: "please help"},
		},
	}
}

func TestNotificationService_StandardEscalationGoesToSupportChannel(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	notifier := &testutil.MockNotifier{}
	svc := service.NewNotificationService(dispatcher, notifier, zap.NewNop())
	svc.RegisterHandlers()

	if err := dispatcher.Publish(context.Background(), escalationEvent(domain.SeverityStandard)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(notifier.Published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.Published))
	}
	msg := notifier.Published[0]
	if msg.Channel != notify.ChannelSupport {
		t.Errorf("expected support channel, got %q", msg.Channel)
	}
	if msg.Subject != "Re: Custom request" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "we are on it") {
		t.Error("expected reply text inside the letter body")
	}
	if !strings.Contains(msg.Body, "Dear Customer") {
		t.Error("expected customer letter framing")
	}
	if msg.Recipient != "customer@example.com" {
		t.Errorf("expected customer contact as recipient hint, got %q", msg.Recipient)
	}
}

func TestNotificationService_UrgentEscalationGoesToUrgentChannel(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	notifier := &testutil.MockNotifier{}
	svc := service.NewNotificationService(dispatcher, notifier, zap.NewNop())
	svc.RegisterHandlers()

	if err := dispatcher.Publish(context.Background(), escalationEvent(domain.SeverityUrgent)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(notifier.Published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.Published))
	}
	msg := notifier.Published[0]
	if msg.Channel != notify.ChannelUrgent {
		t.Errorf("expected urgent channel, got %q", msg.Channel)
	}
	if !strings.HasPrefix(msg.Subject, "[URGENT]") {
		t.Errorf("expected urgent subject prefix, got %q", msg.Subject)
	}
}

func TestNotificationService_DeliveryFailureIsAbsorbed(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	notifier := &testutil.MockNotifier{
		PublishFunc: func(ctx context.Context, channel, subject, body, recipientHint string) error {
			return errors.New("webhook down")
		},
	}
	svc := service.NewNotificationService(dispatcher, notifier, zap.NewNop())
	svc.RegisterHandlers()

	if err := dispatcher.Publish(context.Background(), escalationEvent(domain.SeverityStandard)); err != nil {
		t.Fatalf("delivery failure must not surface, got: %v", err)
	}
}
