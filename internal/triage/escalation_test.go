package triage_test

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/triage"
)

type escalationRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *escalationRecorder) handle(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *escalationRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newEscalationDispatcher(recorder *escalationRecorder) *triage.EscalationDispatcher {
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventEscalationRaised, recorder.handle)
	return triage.NewEscalationDispatcher(
		dispatcher,
		[]domain.Topic{domain.TopicCustom},
		[]string{"full outage", "data exposure"},
		zap.NewNop(),
	)
}

func TestEscalation_CustomTopicEmitsStandardEvent(t *testing.T) {
	recorder := &escalationRecorder{}
	dispatcher := newEscalationDispatcher(recorder)

	ticket := domain.Ticket{ID: "t-1", Subject: "Special request", Body: "Need a custom report", CustomerContact: "a@b.example"}
	emitted := dispatcher.MaybeEscalate(context.Background(), domain.TopicCustom, "on it", ticket)

	if len(emitted) != 1 {
		t.Fatalf("expected exactly one escalation, got %d", len(emitted))
	}
	if emitted[0].Severity != domain.SeverityStandard {
		t.Errorf("expected standard severity, got %q", emitted[0].Severity)
	}
	if emitted[0].Contact != "a@b.example" {
		t.Errorf("expected customer contact on event, got %q", emitted[0].Contact)
	}
	if recorder.count() != 1 {
		t.Errorf("expected one published event, got %d", recorder.count())
	}
}

func TestEscalation_NonCustomTopicWithoutUrgencyEmitsNothing(t *testing.T) {
	recorder := &escalationRecorder{}
	dispatcher := newEscalationDispatcher(recorder)

	ticket := domain.Ticket{ID: "t-2", Subject: "Cost question", Body: "Bill went up a little"}
	emitted := dispatcher.MaybeEscalate(context.Background(), domain.TopicCostOptimization, "here is why", ticket)

	if len(emitted) != 0 {
		t.Fatalf("expected no escalations, got %d", len(emitted))
	}
	if recorder.count() != 0 {
		t.Errorf("expected no published events, got %d", recorder.count())
	}
}

func TestEscalation_UrgencySignalEmitsUrgentEvent(t *testing.T) {
	recorder := &escalationRecorder{}
	dispatcher := newEscalationDispatcher(recorder)

	ticket := domain.Ticket{ID: "t-3", Subject: "Everything broken", Body: "We have a FULL OUTAGE in production"}
	emitted := dispatcher.MaybeEscalate(context.Background(), domain.TopicAlarm, "investigating", ticket)

	if len(emitted) != 1 {
		t.Fatalf("expected exactly one escalation, got %d", len(emitted))
	}
	if emitted[0].Severity != domain.SeverityUrgent {
		t.Errorf("expected urgent severity, got %q", emitted[0].Severity)
	}
}

func TestEscalation_UrgencyInReplyTextCounts(t *testing.T) {
	recorder := &escalationRecorder{}
	dispatcher := newEscalationDispatcher(recorder)

	ticket := domain.Ticket{ID: "t-4", Subject: "Strange logs", Body: "Seeing odd access patterns"}
	emitted := dispatcher.MaybeEscalate(context.Background(), domain.TopicSecurity,
		"This looks like a data exposure incident.", ticket)

	if len(emitted) != 1 || emitted[0].Severity != domain.SeverityUrgent {
		t.Fatalf("expected urgent escalation from reply text, got %+v", emitted)
	}
}

func TestEscalation_StandardAndUrgentBothFire(t *testing.T) {
	recorder := &escalationRecorder{}
	dispatcher := newEscalationDispatcher(recorder)

	ticket := domain.Ticket{ID: "t-5", Subject: "Custom and critical", Body: "full outage, need bespoke handling"}
	emitted := dispatcher.MaybeEscalate(context.Background(), domain.TopicCustom, "escalating", ticket)

	if len(emitted) != 2 {
		t.Fatalf("expected both severities, got %d events", len(emitted))
	}
	if emitted[0].Severity != domain.SeverityStandard || emitted[1].Severity != domain.SeverityUrgent {
		t.Errorf("expected standard then urgent, got %q then %q", emitted[0].Severity, emitted[1].Severity)
	}
	if recorder.count() != 2 {
		t.Errorf("expected two published events, got %d", recorder.count())
	}
}
