package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the service log. Used in development
// when no webhook endpoints are configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Publish logs the notification instead of delivering it.
func (n *LogNotifier) Publish(ctx context.Context, channel, subject, body, recipientHint string) error {
	n.logger.Info("notification (log only)",
		zap.String("channel", channel),
		zap.String("subject", subject),
		zap.String("recipient", recipientHint),
		zap.Int("body_len", len(body)))
	return nil
}
