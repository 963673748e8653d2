package dto

// TriageRequest is the inbound ticket payload.
type TriageRequest struct {
	TicketID      string `json:"ticketId"`
	TicketSubject string `json:"ticketSubject"`
	TicketBody    string `json:"ticketBody"`
	CustomerEmail string `json:"customerEmail"`
}

// TriageSuccessResponse is returned when a specialized responder replied.
type TriageSuccessResponse struct {
	Status        string  `json:"status"`
	TicketID      string  `json:"ticketId"`
	CustomerEmail string  `json:"customerEmail"`
	Category      string  `json:"category"`
	Confidence    float64 `json:"confidence"`
	Language      string  `json:"language"`
	AgentUsed     string  `json:"agent_used"`
	Reply         string  `json:"reply"`
	Escalated     bool    `json:"escalated,omitempty"`
}

// TriageFallbackResponse is returned when the classification is unreliable
// and the ticket goes to manual review.
type TriageFallbackResponse struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
}

// TriageErrorResponse is returned when the pipeline failed.
type TriageErrorResponse struct {
	Error string `json:"error"`
}
