// Package notify holds the notification egress used for escalations.
// Delivery is best-effort; callers log failures and never surface them to the
// customer-facing response.
package notify

import "context"

// Channel names for escalation delivery.
const (
	ChannelSupport = "support-team"
	ChannelUrgent  = "oncall-urgent"
)

// Notifier delivers a notification to a named channel. The recipient hint
// carries the customer contact when the channel forwards replies.
type Notifier interface {
	Publish(ctx context.Context, channel, subject, body, recipientHint string) error
}
