package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

// EscalationDispatcher decides whether a replied ticket needs team attention
// and publishes the corresponding events. Publication is fire-and-forget;
// delivery failures never alter the pipeline result.
type EscalationDispatcher struct {
	dispatcher     events.Dispatcher
	notifyTopics   map[domain.Topic]bool
	urgencyPhrases []string
	logger         *zap.Logger
}

// NewEscalationDispatcher constructs the dispatcher. notifyTopics lists the
// topics whose replies always go to the support team; urgencyPhrases are the
// critical-condition markers scanned in ticket and reply text.
func NewEscalationDispatcher(dispatcher events.Dispatcher, notifyTopics []domain.Topic, urgencyPhrases []string, logger *zap.Logger) *EscalationDispatcher {
	flagged := make(map[domain.Topic]bool, len(notifyTopics))
	for _, topic := range notifyTopics {
		flagged[topic] = true
	}
	phrases := make([]string, 0, len(urgencyPhrases))
	for _, phrase := range urgencyPhrases {
		phrases = append(phrases, strings.ToLower(phrase))
	}
	return &EscalationDispatcher{
		dispatcher:     dispatcher,
		notifyTopics:   flagged,
		urgencyPhrases: phrases,
		logger:         logger,
	}
}

// MaybeEscalate emits zero, one, or two escalation events for a replied
// ticket. A notify-team topic produces a standard event; a critical-condition
// signal in the ticket or reply text produces an urgent one. The two are
// independent and may both fire.
func (d *EscalationDispatcher) MaybeEscalate(ctx context.Context, topic domain.Topic, replyText string, ticket domain.Ticket) []domain.EscalationEvent {
	var emitted []domain.EscalationEvent

	if d.notifyTopics[topic] {
		event := domain.EscalationEvent{
			Severity: domain.SeverityStandard,
			TicketID: ticket.ID,
			Summary:  fmt.Sprintf("ticket requires team follow-up (topic: %s)", topic),
			Reply:    replyText,
			Contact:  ticket.CustomerContact,
		}
		d.publish(ctx, event, ticket)
		emitted = append(emitted, event)
	}

	if phrase, ok := d.urgencySignal(ticket.Description(), replyText); ok {
		event := domain.EscalationEvent{
			Severity: domain.SeverityUrgent,
			TicketID: ticket.ID,
			Summary:  fmt.Sprintf("critical condition detected: %q", phrase),
			Reply:    replyText,
			Contact:  ticket.CustomerContact,
		}
		d.publish(ctx, event, ticket)
		emitted = append(emitted, event)
	}

	return emitted
}

func (d *EscalationDispatcher) publish(ctx context.Context, escalation domain.EscalationEvent, ticket domain.Ticket) {
	d.logger.Info("escalating ticket",
		zap.String("ticket_id", ticket.ID),
		zap.String("severity", string(escalation.Severity)))

	err := d.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEscalationRaised,
		TicketID:  ticket.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.EscalationRaisedPayload{
			Escalation: escalation,
			Ticket:     ticket,
		},
	})
	if err != nil {
		d.logger.Warn("escalation publish failed",
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	}
}

func (d *EscalationDispatcher) urgencySignal(ticketText, replyText string) (string, bool) {
	ticketText = strings.ToLower(ticketText)
	replyText = strings.ToLower(replyText)
	for _, phrase := range d.urgencyPhrases {
		if strings.Contains(ticketText, phrase) || strings.Contains(replyText, phrase) {
			return phrase, true
		}
	}
	return "", false
}
