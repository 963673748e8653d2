package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/notify"
)

const customerLetterTemplate = `Dear Customer,

Thank you for reaching out to our Support Team.

%s

If you have any further questions or need additional assistance, feel free to reply to this email.

Best regards,
Support Team`

// NotificationService delivers escalation events to the notification egress.
// Delivery is best-effort; failures are logged and never propagated.
type NotificationService struct {
	dispatcher events.Dispatcher
	notifier   notify.Notifier
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifier notify.Notifier, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to escalation events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEscalationRaised, n.handleEscalationRaised)
}

func (n *NotificationService) handleEscalationRaised(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EscalationRaisedPayload)
	if !ok {
		n.logger.Warn("unexpected escalation payload", zap.String("event_id", event.ID))
		return nil
	}

	channel := notify.ChannelSupport
	subject := "Re: " + payload.Ticket.Subject
	body := fmt.Sprintf(customerLetterTemplate, payload.Escalation.Reply)
	if payload.Escalation.Severity == domain.SeverityUrgent {
		channel = notify.ChannelUrgent
		subject = "[URGENT] " + payload.Ticket.Subject
		body = payload.Escalation.Summary + "\n\n" + payload.Escalation.Reply
	}

	n.logger.Info("delivering escalation",
		zap.String("ticket_id", event.TicketID),
		zap.String("channel", channel))

	if err := n.notifier.Publish(ctx, channel, subject, body, payload.Escalation.Contact); err != nil {
		n.logger.Error("escalation delivery failed",
			zap.String("ticket_id", event.TicketID),
			zap.String("channel", channel),
			zap.Error(err))
	}
	return nil
}
