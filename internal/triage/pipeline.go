package triage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/observability"
)

// State tracks pipeline progress for a single ticket.
type State string

const (
	StateReceived   State = "received"
	StateNormalized State = "normalized"
	StateClassified State = "classified"
	StateFallback   State = "fallback"
	StateRouted     State = "routed"
	StateReplied    State = "replied"
	StateEscalated  State = "escalated"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// fallbackMessage is the manual-review explanation on the fallback path.
const fallbackMessage = "Low confidence score. Manual review needed."

// Pipeline sequences normalization, classification, routing, reply extraction
// and escalation for one ticket at a time. It holds no per-ticket state, so
// instances are safe for concurrent use.
type Pipeline struct {
	normalizer *Normalizer
	classifier *Classifier
	router     *Router
	escalation *EscalationDispatcher
	dispatcher events.Dispatcher
	threshold  float64
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// Dependencies bundles the pipeline collaborators.
type Dependencies struct {
	Normalizer *Normalizer
	Classifier *Classifier
	Router     *Router
	Escalation *EscalationDispatcher
	Events     events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewPipeline constructs the orchestrator with the given confidence gate.
func NewPipeline(threshold float64, deps Dependencies) *Pipeline {
	return &Pipeline{
		normalizer: deps.Normalizer,
		classifier: deps.Classifier,
		router:     deps.Router,
		escalation: deps.Escalation,
		dispatcher: deps.Events,
		threshold:  threshold,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Process runs one ticket through the pipeline. The caller always receives
// exactly one result record; failures surface as an error-status record plus
// a best-effort dead-letter event, never as a raw error.
func (p *Pipeline) Process(ctx context.Context, ticket domain.Ticket) domain.ResultRecord {
	state := StateReceived

	record, err := p.run(ctx, &state, ticket)
	if err != nil {
		p.logger.Error("pipeline failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("state", string(state)),
			zap.Error(err))
		state = StateFailed
		p.reportFailure(ctx, ticket, err)
		record = domain.ResultRecord{
			Status:       domain.ResultError,
			TicketID:     ticket.ID,
			ErrorMessage: err.Error(),
		}
	}

	p.metrics.RecordOutcome(string(record.Status))
	return record
}

func (p *Pipeline) run(ctx context.Context, state *State, ticket domain.Ticket) (domain.ResultRecord, error) {
	normalized, err := p.normalizer.Normalize(ctx, ticket)
	if err != nil {
		return domain.ResultRecord{}, err
	}
	*state = StateNormalized

	classification, err := p.classifier.Classify(ctx, normalized.WorkingText, ticket.ID)
	if err != nil {
		return domain.ResultRecord{}, err
	}
	*state = StateClassified

	// Confidence gate: an unreliable or unrecognized classification goes to
	// manual review without touching any specialized responder. Empty topic
	// and low confidence deliberately collapse into the same shape.
	if classification.Confidence < p.threshold || !classification.Topic.Known() {
		*state = StateFallback
		p.logger.Warn("low confidence classification, returning fallback",
			zap.String("ticket_id", ticket.ID),
			zap.String("topic", string(classification.Topic)),
			zap.Float64("confidence", classification.Confidence))
		return domain.ResultRecord{
			Status:     domain.ResultFallback,
			TicketID:   ticket.ID,
			Topic:      classification.Topic,
			Confidence: classification.Confidence,
			Message:    fallbackMessage,
		}, nil
	}

	topic := classification.Topic
	if classification.Ambiguous() {
		topic = ResolvePriority(classification.CandidateTopics)
		p.logger.Info("ambiguous classification resolved by precedence",
			zap.String("ticket_id", ticket.ID),
			zap.String("topic", string(topic)))
	}

	decision, err := p.router.Route(topic)
	if err != nil {
		return domain.ResultRecord{}, err
	}
	*state = StateRouted

	output, err := p.router.Dispatch(ctx, decision, normalized.WorkingText, ticket.ID)
	if err != nil {
		return domain.ResultRecord{}, err
	}
	reply := ExtractReply(output)
	*state = StateReplied

	record := domain.ResultRecord{
		Status:        domain.ResultSuccess,
		TicketID:      ticket.ID,
		CustomerEmail: ticket.CustomerContact,
		Topic:         decision.ChosenTopic,
		Confidence:    classification.Confidence,
		Language:      normalized.SourceLanguage,
		AgentUsed:     decision.ResponderKey,
		Reply:         reply,
	}

	if emitted := p.escalation.MaybeEscalate(ctx, decision.ChosenTopic, reply, ticket); len(emitted) > 0 {
		record.Escalated = true
		*state = StateEscalated
	}

	*state = StateCompleted
	return record, nil
}

// reportFailure hands the failed invocation to the dead-letter collaborator.
// Best-effort: a failure here is logged and must not mask the primary error
// record already being returned to the caller.
func (p *Pipeline) reportFailure(ctx context.Context, ticket domain.Ticket, cause error) {
	err := p.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPipelineFailed,
		TicketID:  ticket.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.PipelineFailedPayload{
			Error:  cause.Error(),
			Ticket: ticket,
		},
	})
	if err != nil {
		p.logger.Error("dead-letter publish failed",
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	}
}
