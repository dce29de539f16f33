package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Night40050/support-copilot/internal/config"
)

func TestAnthropicComplete_FirstTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["model"] != "claude-test" {
			t.Errorf("unexpected model %v", body["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "{\"category\":\"Billing\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	c := NewAnthropic(config.LLMConfig{
		AnthropicAPIKey: "k",
		Model:           "claude-test",
		BaseURL:         srv.URL,
	})
	got, err := c.Complete(context.Background(), Prompt{System: "sys", User: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"category":"Billing"}` {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestAnthropicComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewAnthropic(config.LLMConfig{AnthropicAPIKey: "k", BaseURL: srv.URL})
	if _, err := c.Complete(context.Background(), Prompt{User: "u"}); err == nil {
		t.Fatal("expected api error")
	}
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(config.LLMConfig{Provider: config.LLMProviderOpenAI, OpenAIAPIKey: "k"})
	if err != nil || c.Name() != "openai" {
		t.Fatalf("expected openai completer, got %v %v", c, err)
	}
	c, err = NewCompleter(config.LLMConfig{Provider: config.LLMProviderAnthropic, AnthropicAPIKey: "k"})
	if err != nil || c.Name() != "anthropic" {
		t.Fatalf("expected anthropic completer, got %v %v", c, err)
	}
	if _, err := NewCompleter(config.LLMConfig{Provider: "huggingface"}); err == nil {
		t.Fatal("expected unknown provider error")
	}
}
