package triage

import (
	"strings"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// DefaultReply is returned when a responder payload carries no usable field.
const DefaultReply = "Thank you for reaching out. We will assist you shortly."

// replyFields lists structured output fields in lookup order.
var replyFields = []string{"reply", "message", "raw_response"}

// ExtractReply normalizes heterogeneous responder output into a single reply
// string. Absence of every known field yields DefaultReply, never an error.
func ExtractReply(output domain.ResponderOutput) string {
	if output.Structured() {
		for _, field := range replyFields {
			if val, ok := output.StringField(field); ok {
				return unescapeNewlines(val)
			}
		}
		return DefaultReply
	}
	if output.Raw != "" {
		return unescapeNewlines(output.Raw)
	}
	return DefaultReply
}

// unescapeNewlines turns escaped newline sequences into literal newlines.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
