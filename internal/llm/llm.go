// Package llm wraps chat-completion providers behind a single-shot Completer.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Night40050/support-copilot/internal/config"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// Prompt is a system instruction plus one user turn.
type Prompt struct {
	System string
	User   string
}

// Completer sends one prompt and returns the raw text answer.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// NewCompleter builds the provider selected by cfg.Provider.
func NewCompleter(cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		opts := []OpenAIOption{
			WithTemperature(cfg.Temperature),
			WithMaxTokens(cfg.MaxTokens),
			WithTimeout(cfg.Timeout()),
		}
		if cfg.Model != "" {
			opts = append(opts, WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		return NewOpenAI(cfg.OpenAIAPIKey, opts...), nil
	case config.LLMProviderAnthropic:
		return NewAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
