package events

import (
	"time"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEscalationRaised EventType = "escalation_raised"
	EventPipelineFailed   EventType = "pipeline_failed"
)

// Event represents a side-channel event emitted by the pipeline.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EscalationRaisedPayload payload.
type EscalationRaisedPayload struct {
	Escalation domain.EscalationEvent `json:"escalation"`
	Ticket     domain.Ticket          `json:"ticket"`
}

// PipelineFailedPayload payload.
type PipelineFailedPayload struct {
	Error  string        `json:"error"`
	Ticket domain.Ticket `json:"ticket"`
}
