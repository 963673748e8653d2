// Package testutil provides mock implementations of the capability and
// egress seams for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// MockResponder is a mock implementation of capability.Responder.
type MockResponder struct {
	InvokeFunc func(ctx context.Context, agentKey, sessionID, inputText string) (domain.ResponderOutput, error)
	// Outputs returns a canned output per agent key when InvokeFunc is unset.
	Outputs map[string]domain.ResponderOutput

	mu          sync.Mutex
	CallCount   int
	Calls       []string
	LastSession string
	LastInput   string
}

func (m *MockResponder) Invoke(ctx context.Context, agentKey, sessionID, inputText string) (domain.ResponderOutput, error) {
	m.mu.Lock()
	m.CallCount++
	m.Calls = append(m.Calls, agentKey)
	m.LastSession = sessionID
	m.LastInput = inputText
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, agentKey, sessionID, inputText)
	}
	if out, ok := m.Outputs[agentKey]; ok {
		return out, nil
	}
	return domain.ParseResponderOutput(`{"reply":"ok"}`), nil
}

// CallsFor counts invocations recorded for one agent key.
func (m *MockResponder) CallsFor(agentKey string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, key := range m.Calls {
		if key == agentKey {
			count++
		}
	}
	return count
}

// MockLanguageService is a mock implementation of capability.LanguageService.
// Defaults: every text detects as "en" and translation echoes the input.
type MockLanguageService struct {
	DetectFunc    func(ctx context.Context, text string) (string, error)
	TranslateFunc func(ctx context.Context, text, from, to string) (string, error)

	mu             sync.Mutex
	DetectCalls    int
	TranslateCalls int
}

func (m *MockLanguageService) DetectLanguage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.DetectCalls++
	m.mu.Unlock()

	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, text)
	}
	return "en", nil
}

func (m *MockLanguageService) Translate(ctx context.Context, text, from, to string) (string, error) {
	m.mu.Lock()
	m.TranslateCalls++
	m.mu.Unlock()

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, from, to)
	}
	return text, nil
}

// PublishedMessage captures one Notifier.Publish call.
type PublishedMessage struct {
	Channel   string
	Subject   string
	Body      string
	Recipient string
}

// MockNotifier records published notifications.
type MockNotifier struct {
	PublishFunc func(ctx context.Context, channel, subject, body, recipientHint string) error

	mu        sync.Mutex
	Published []PublishedMessage
}

func (m *MockNotifier) Publish(ctx context.Context, channel, subject, body, recipientHint string) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedMessage{
		Channel:   channel,
		Subject:   subject,
		Body:      body,
		Recipient: recipientHint,
	})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, channel, subject, body, recipientHint)
	}
	return nil
}

// MockDeadLetterQueue records enqueued failure records.
type MockDeadLetterQueue struct {
	EnqueueFunc func(ctx context.Context, record domain.FailureRecord) error

	mu      sync.Mutex
	Records []domain.FailureRecord
}

func (m *MockDeadLetterQueue) Enqueue(ctx context.Context, record domain.FailureRecord) error {
	m.mu.Lock()
	m.Records = append(m.Records, record)
	m.mu.Unlock()

	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, record)
	}
	return nil
}
