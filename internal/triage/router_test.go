package triage_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/testutil"
	"github.com/spec-kit/ticket-triage/internal/triage"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

func testRoutes() map[domain.Topic]string {
	return map[domain.Topic]string{
		domain.TopicCostOptimization: "cost_optimization",
		domain.TopicSecurity:         "security",
		domain.TopicAlarm:            "alarm",
		domain.TopicCustom:           "custom",
	}
}

func TestRouter_RouteMapsEveryKnownTopic(t *testing.T) {
	router := triage.NewRouter(testRoutes(), &testutil.MockResponder{}, observability.NewMetrics(), zap.NewNop())

	for _, topic := range domain.AllTopics() {
		decision, err := router.Route(topic)
		if err != nil {
			t.Fatalf("Route(%s) failed: %v", topic, err)
		}
		if decision.ChosenTopic != topic {
			t.Errorf("expected chosen topic %q, got %q", topic, decision.ChosenTopic)
		}
		if decision.ResponderKey != string(topic) {
			t.Errorf("expected responder key %q, got %q", topic, decision.ResponderKey)
		}
	}
}

func TestRouter_UnmappedTopicIsAnError(t *testing.T) {
	router := triage.NewRouter(map[domain.Topic]string{}, &testutil.MockResponder{}, observability.NewMetrics(), zap.NewNop())

	if _, err := router.Route(domain.TopicSecurity); err == nil {
		t.Fatal("expected error for unmapped topic")
	}
}

func TestRouter_DispatchPassesWorkingTextAndSession(t *testing.T) {
	responder := &testutil.MockResponder{
		Outputs: map[string]domain.ResponderOutput{
			"alarm": domain.ParseResponderOutput(`{"reply":"silencing the alert"}`),
		},
	}
	metrics := observability.NewMetrics()
	router := triage.NewRouter(testRoutes(), responder, metrics, zap.NewNop())

	decision, err := router.Route(domain.TopicAlarm)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	output, err := router.Dispatch(context.Background(), decision, "cpu alarm keeps firing", "ticket-9")
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if reply := triage.ExtractReply(output); reply != "silencing the alert" {
		t.Errorf("unexpected reply %q", reply)
	}
	if responder.LastInput != "cpu alarm keeps firing" {
		t.Errorf("expected full working text, got %q", responder.LastInput)
	}
	if responder.LastSession != "ticket-9" {
		t.Errorf("expected ticket id session, got %q", responder.LastSession)
	}
	if got := metrics.AgentInvocations("alarm"); got != 1 {
		t.Errorf("expected one recorded invocation, got %d", got)
	}
}

func TestRouter_DispatchFailureIsACapabilityError(t *testing.T) {
	responder := &testutil.MockResponder{
		InvokeFunc: func(ctx context.Context, agentKey, sessionID, inputText string) (domain.ResponderOutput, error) {
			return domain.ResponderOutput{}, errors.New("agent unavailable")
		},
	}
	router := triage.NewRouter(testRoutes(), responder, observability.NewMetrics(), zap.NewNop())

	decision, err := router.Route(domain.TopicSecurity)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	_, err = router.Dispatch(context.Background(), decision, "text", "ticket-10")
	if err == nil {
		t.Fatal("expected dispatch error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CAPABILITY_FAILED" {
		t.Errorf("expected CAPABILITY_FAILED, got %v", err)
	}
}
