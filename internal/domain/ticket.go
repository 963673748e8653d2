package domain

// Ticket is the customer-submitted support request entering the pipeline.
type Ticket struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	CustomerContact string `json:"customerContact,omitempty"`
}

// Description returns the combined text the pipeline operates on.
func (t Ticket) Description() string {
	return t.Subject + "\n\n" + t.Body
}

// NormalizedTicket is the language-normalized view of a ticket, immutable
// once produced by the normalizer.
type NormalizedTicket struct {
	SourceLanguage string
	WorkingText    string
}

// FailureRecord is the dead-letter payload written for a failed invocation.
type FailureRecord struct {
	Error  string `json:"error"`
	Ticket Ticket `json:"originalTicket"`
}
