package triage

import "github.com/spec-kit/ticket-triage/internal/domain"

// precedence orders topics highest-priority first. The order is a fixed
// business rule; per-candidate scores never override it.
var precedence = []domain.Topic{
	domain.TopicSecurity,
	domain.TopicAlarm,
	domain.TopicCostOptimization,
	domain.TopicCustom,
}

// ResolvePriority picks the highest-precedence topic among the candidates.
// Callers skip this entirely when the classifier returned a single topic.
// Candidates are validated against the closed topic set at the classification
// boundary; anything outside it resolves to nothing.
func ResolvePriority(candidates []domain.Topic) domain.Topic {
	for _, topic := range precedence {
		for _, cand := range candidates {
			if cand == topic {
				return topic
			}
		}
	}
	return ""
}
