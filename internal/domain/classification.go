package domain

// Topic enumerates the closed category set tickets classify into.
type Topic string

const (
	TopicCostOptimization Topic = "cost_optimization"
	TopicSecurity         Topic = "security"
	TopicAlarm            Topic = "alarm"
	TopicCustom           Topic = "custom"
)

// AllTopics lists the closed topic set.
func AllTopics() []Topic {
	return []Topic{TopicCostOptimization, TopicSecurity, TopicAlarm, TopicCustom}
}

// Known reports whether t belongs to the closed topic set.
func (t Topic) Known() bool {
	switch t {
	case TopicCostOptimization, TopicSecurity, TopicAlarm, TopicCustom:
		return true
	}
	return false
}

// Classification is the classifier verdict for a single ticket. Produced once
// per ticket, never mutated.
type Classification struct {
	Topic      Topic
	Confidence float64
	// CandidateTopics is non-empty only when the classifier signals that
	// multiple topics plausibly apply.
	CandidateTopics []Topic
}

// Ambiguous reports whether the classifier returned multiple plausible topics.
func (c Classification) Ambiguous() bool {
	return len(c.CandidateTopics) > 0
}

// RoutingDecision maps a resolved topic to the responder that handles it.
// Derived deterministically from a Classification.
type RoutingDecision struct {
	ChosenTopic  Topic
	ResponderKey string
}
