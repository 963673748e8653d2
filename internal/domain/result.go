package domain

// ResultStatus enumerates the three terminal shapes of a pipeline invocation.
type ResultStatus string

const (
	ResultSuccess  ResultStatus = "success"
	ResultFallback ResultStatus = "fallback"
	ResultError    ResultStatus = "error"
)

// ResultRecord is the terminal output of one pipeline invocation. Exactly one
// record is produced per ticket, never more, never zero.
type ResultRecord struct {
	Status        ResultStatus
	TicketID      string
	CustomerEmail string
	Topic         Topic
	Confidence    float64
	Language      string
	AgentUsed     string
	Reply         string
	Escalated     bool
	// Message explains a fallback record to the manual-review queue.
	Message string
	// ErrorMessage describes the failure for an error record.
	ErrorMessage string
}

// Severity ranks an escalation notification.
type Severity string

const (
	SeverityStandard Severity = "standard"
	SeverityUrgent   Severity = "urgent"
)

// EscalationEvent is emitted when a ticket requires human attention.
// Zero, one, or two (standard plus urgent) fire per ticket.
type EscalationEvent struct {
	Severity Severity
	TicketID string
	Summary  string
	Reply    string
	Contact  string
}
