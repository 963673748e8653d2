package triage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/capability"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// Router maps resolved topics to specialized responders. The routing table is
// injected at construction so the mapping is testable without globals.
type Router struct {
	routes    map[domain.Topic]string
	responder capability.Responder
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewRouter constructs the router from a topic-to-responder-key table.
func NewRouter(routes map[domain.Topic]string, responder capability.Responder, metrics *observability.Metrics, logger *zap.Logger) *Router {
	return &Router{
		routes:    routes,
		responder: responder,
		metrics:   metrics,
		logger:    logger,
	}
}

// Route resolves the responder key for a topic. An unmapped topic is an error
// condition; the classification boundary is expected to keep topics inside
// the closed set.
func (r *Router) Route(topic domain.Topic) (domain.RoutingDecision, error) {
	key, ok := r.routes[topic]
	if !ok {
		return domain.RoutingDecision{}, fmt.Errorf("no responder mapped for topic %q", topic)
	}
	return domain.RoutingDecision{ChosenTopic: topic, ResponderKey: key}, nil
}

// Dispatch invokes the responder behind a routing decision with the full
// working text, keyed by ticket id so repeated calls for the same ticket can
// share agent-side session context.
func (r *Router) Dispatch(ctx context.Context, decision domain.RoutingDecision, workingText, ticketID string) (domain.ResponderOutput, error) {
	r.logger.Info("routing ticket to responder",
		zap.String("ticket_id", ticketID),
		zap.String("topic", string(decision.ChosenTopic)),
		zap.String("responder", decision.ResponderKey))
	r.metrics.RecordAgentInvocation(decision.ResponderKey)

	output, err := r.responder.Invoke(ctx, decision.ResponderKey, ticketID, workingText)
	if err != nil {
		return domain.ResponderOutput{}, apperrors.NewCapabilityError("responder "+decision.ResponderKey, err)
	}
	return output, nil
}
