package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/ticket-triage/internal/config"
)

// LanguageClient talks to the language detection/translation service.
type LanguageClient struct {
	baseURL string
	client  *http.Client
}

// NewLanguageClient creates a client for the configured language service.
func NewLanguageClient(cfg config.LanguageConfig) *LanguageClient {
	return &LanguageClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// DetectLanguage returns the ISO code of the dominant language of text.
func (c *LanguageClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	var resp struct {
		Language string `json:"language"`
	}
	if err := c.postJSON(ctx, "/v1/detect", map[string]string{"text": text}, &resp); err != nil {
		return "", err
	}
	if resp.Language == "" {
		return "", errors.New("language service: empty detection result")
	}
	return resp.Language, nil
}

// Translate converts text from one language to another.
func (c *LanguageClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	var resp struct {
		TranslatedText string `json:"translated_text"`
	}
	req := map[string]string{
		"text":            text,
		"source_language": from,
		"target_language": to,
	}
	if err := c.postJSON(ctx, "/v1/translate", req, &resp); err != nil {
		return "", err
	}
	return resp.TranslatedText, nil
}

func (c *LanguageClient) postJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("language service: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBody)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return fmt.Errorf("language service: HTTP %d: %s", resp.StatusCode, snippet)
	}

	return json.Unmarshal(respBody, dest)
}
