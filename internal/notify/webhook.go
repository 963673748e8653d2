package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultPublishTimeout = 10 * time.Second

// WebhookNotifier POSTs notifications to per-channel webhook endpoints.
// Channels without a configured URL are logged and skipped.
type WebhookNotifier struct {
	client      *http.Client
	channelURLs map[string]string
	sender      string
	logger      *zap.Logger
}

// NewWebhookNotifier creates a notifier from a channel-to-URL map. sender is
// the from-address stamped on every message.
func NewWebhookNotifier(channelURLs map[string]string, sender string, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client:      &http.Client{Timeout: defaultPublishTimeout},
		channelURLs: channelURLs,
		sender:      sender,
		logger:      logger,
	}
}

type webhookMessage struct {
	Channel   string `json:"channel"`
	From      string `json:"from,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Recipient string `json:"recipient,omitempty"`
}

// Publish delivers one notification to the channel's webhook.
func (n *WebhookNotifier) Publish(ctx context.Context, channel, subject, body, recipientHint string) error {
	url := n.channelURLs[channel]
	if url == "" {
		n.logger.Debug("no webhook configured for channel, skipping",
			zap.String("channel", channel))
		return nil
	}

	payload, err := json.Marshal(webhookMessage{
		Channel:   channel,
		From:      n.sender,
		Subject:   subject,
		Body:      body,
		Recipient: recipientHint,
	})
	if err != nil {
		return fmt.Errorf("notify: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: HTTP %d from channel %s", resp.StatusCode, channel)
	}

	n.logger.Info("notification delivered",
		zap.String("channel", channel),
		zap.String("subject", subject))
	return nil
}
