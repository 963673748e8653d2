package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
)

const maxInvokeRetries = 3

// AgentGatewayClient invokes responder agents over the gateway HTTP API.
// Agent keys resolve through the injected routing table; retry on 429/5xx
// with exponential backoff happens here so the pipeline stays free of
// transport policy.
type AgentGatewayClient struct {
	baseURL string
	token   string
	routes  map[string]config.AgentRoute
	client  *http.Client
	logger  *zap.Logger
}

// NewAgentGatewayClient creates a gateway client for the configured agents.
func NewAgentGatewayClient(cfg config.ResponderConfig, routes map[string]config.AgentRoute, logger *zap.Logger) *AgentGatewayClient {
	return &AgentGatewayClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		routes:  routes,
		client:  &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

type invokeRequest struct {
	SessionID string `json:"session_id"`
	AliasID   string `json:"alias_id,omitempty"`
	InputText string `json:"input_text"`
}

// Invoke calls the agent registered under agentKey and returns its output.
// Non-JSON agent output is not an error; it comes back as the raw variant.
func (c *AgentGatewayClient) Invoke(ctx context.Context, agentKey, sessionID, inputText string) (domain.ResponderOutput, error) {
	route, ok := c.routes[agentKey]
	if !ok {
		return domain.ResponderOutput{}, fmt.Errorf("no agent registered for key %q", agentKey)
	}

	payload, err := json.Marshal(invokeRequest{
		SessionID: sessionID,
		AliasID:   route.AliasID,
		InputText: inputText,
	})
	if err != nil {
		return domain.ResponderOutput{}, fmt.Errorf("agent gateway: marshal: %w", err)
	}

	c.logger.Info("invoking agent",
		zap.String("agent", route.AgentID),
		zap.String("session_id", sessionID))

	url := fmt.Sprintf("%s/v1/agents/%s/invoke", c.baseURL, route.AgentID)
	raw, err := c.postWithRetry(ctx, url, payload)
	if err != nil {
		return domain.ResponderOutput{}, err
	}
	return domain.ParseResponderOutput(string(raw)), nil
}

// postWithRetry sends the body via HTTP POST. Retries on 429 and 5xx with
// exponential backoff (1s, 2s, 4s), max 3 retries.
func (c *AgentGatewayClient) postWithRetry(ctx context.Context, url string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= maxInvokeRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<(attempt-1)) * time.Second
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return respBody, nil
		}

		snippet := string(respBody)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		lastErr = fmt.Errorf("agent gateway: HTTP %d: %s", resp.StatusCode, snippet)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			continue
		}
		return nil, lastErr
	}
	return nil, lastErr
}
