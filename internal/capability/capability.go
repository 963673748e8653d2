// Package capability defines the seams to the external services the triage
// pipeline depends on. All non-determinism (agents, language tooling) lives
// behind these interfaces; production implementations are HTTP clients and
// tests substitute mocks.
package capability

import (
	"context"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// Responder invokes a black-box agent (classification or specialized) by key.
// The session id lets repeated calls for the same ticket share agent-side
// context. Implementations own timeout and retry policy; the core does not.
type Responder interface {
	Invoke(ctx context.Context, agentKey, sessionID, inputText string) (domain.ResponderOutput, error)
}

// LanguageService detects the dominant language of a text and translates
// between languages.
type LanguageService interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, from, to string) (string, error)
}
