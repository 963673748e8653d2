package triage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/capability"
	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

const classificationPrompt = `
You are a support ticket classifier. Your task is to analyze the customer's issue and return a JSON response with two fields:
- category: one of ['cost_optimization', 'security', 'alarm', 'custom']
- confidence: a float between 0 and 1 representing your confidence level.

Example Output:
{"category": "cost_optimization", "confidence": 0.9}

Customer Ticket:
"%s"`

// Classifier invokes the primary classification agent and parses its verdict.
// Malformed agent output is absorbed into a zero-confidence classification so
// the downstream gate routes it to manual review; it never raises.
type Classifier struct {
	responder capability.Responder
	agentKey  string
	logger    *zap.Logger
}

// NewClassifier constructs the classifier around the named agent.
func NewClassifier(responder capability.Responder, agentKey string, logger *zap.Logger) *Classifier {
	return &Classifier{
		responder: responder,
		agentKey:  agentKey,
		logger:    logger,
	}
}

// Classify asks the classification agent for (topic, confidence). The ticket
// id doubles as the agent session id.
func (c *Classifier) Classify(ctx context.Context, workingText, ticketID string) (domain.Classification, error) {
	prompt := fmt.Sprintf(classificationPrompt, workingText)

	output, err := c.responder.Invoke(ctx, c.agentKey, ticketID, prompt)
	if err != nil {
		return domain.Classification{}, apperrors.NewCapabilityError("classification agent", err)
	}

	if !output.Structured() {
		c.logger.Warn("classifier output not structured, forcing fallback",
			zap.String("ticket_id", ticketID))
		return domain.Classification{}, nil
	}

	category, _ := output.StringField("category")
	classification := domain.Classification{
		Topic: domain.Topic(strings.ToLower(strings.TrimSpace(category))),
		// out-of-range values are not clamped here; the gate is the sole arbiter
		Confidence: coerceFloat(output.Fields["confidence"]),
	}

	if candidates, ok := output.Fields["candidates"].([]any); ok {
		for _, cand := range candidates {
			s, ok := cand.(string)
			if !ok || s == "" {
				continue
			}
			topic := domain.Topic(strings.ToLower(strings.TrimSpace(s)))
			// candidates outside the closed topic set are dropped here so
			// nothing downstream ever routes on them
			if !topic.Known() {
				c.logger.Warn("discarding unrecognized candidate topic",
					zap.String("ticket_id", ticketID),
					zap.String("candidate", string(topic)))
				continue
			}
			classification.CandidateTopics = append(classification.CandidateTopics, topic)
		}
	}

	c.logger.Info("ticket classified",
		zap.String("ticket_id", ticketID),
		zap.String("topic", string(classification.Topic)),
		zap.Float64("confidence", classification.Confidence),
		zap.Int("candidates", len(classification.CandidateTopics)))
	return classification, nil
}

func coerceFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0.0
}
