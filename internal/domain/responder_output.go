package domain

import "encoding/json"

// ResponderOutput is the payload returned by a responder agent. Agents
// sometimes answer with a JSON object and sometimes with free text; the two
// cases are carried as an explicit variant instead of duck-typed probing.
type ResponderOutput struct {
	// Fields holds the decoded object for structured output. Nil for raw text.
	Fields map[string]any
	// Raw is the verbatim agent output.
	Raw string
}

// Structured reports whether the output parsed as a JSON object.
func (o ResponderOutput) Structured() bool {
	return o.Fields != nil
}

// StringField returns the named field as a string when present and non-empty.
func (o ResponderOutput) StringField(name string) (string, bool) {
	val, ok := o.Fields[name]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ParseResponderOutput interprets raw agent output. Payloads that are not a
// JSON object never produce an error; they come back as the raw variant.
func ParseResponderOutput(raw string) ResponderOutput {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return ResponderOutput{Raw: raw}
	}
	return ResponderOutput{Fields: fields, Raw: raw}
}
