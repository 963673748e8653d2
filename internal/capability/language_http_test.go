package capability_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spec-kit/ticket-triage/internal/capability"
	"github.com/spec-kit/ticket-triage/internal/config"
)

func languageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch r.URL.Path {
		case "/v1/detect":
			_ = json.NewEncoder(w).Encode(map[string]string{"language": "de"})
		case "/v1/translate":
			if req["source_language"] != "de" || req["target_language"] != "en" {
				t.Errorf("unexpected translation pair: %v", req)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"translated_text": "translated " + req["text"]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLanguageClient_Detect(t *testing.T) {
	srv := languageServer(t)
	defer srv.Close()

	client := capability.NewLanguageClient(config.LanguageConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	lang, err := client.DetectLanguage(context.Background(), "Guten Tag")
	if err != nil {
		t.Fatalf("DetectLanguage failed: %v", err)
	}
	if lang != "de" {
		t.Errorf("expected de, got %q", lang)
	}
}

func TestLanguageClient_Translate(t *testing.T) {
	srv := languageServer(t)
	defer srv.Close()

	client := capability.NewLanguageClient(config.LanguageConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	text, err := client.Translate(context.Background(), "Guten Tag", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if text != "translated Guten Tag" {
		t.Errorf("unexpected translation %q", text)
	}
}

func TestLanguageClient_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := capability.NewLanguageClient(config.LanguageConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	if _, err := client.DetectLanguage(context.Background(), "text"); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestLanguageClient_EmptyDetectionIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := capability.NewLanguageClient(config.LanguageConfig{BaseURL: srv.URL, TimeoutSeconds: 5})
	if _, err := client.DetectLanguage(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty detection result")
	}
}
