// Package classifier assigns a category, sentiment, confidence and reasoning
// to ticket descriptions.
package classifier

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/config"
	"github.com/Night40050/support-copilot/internal/domain"
	"github.com/Night40050/support-copilot/internal/llm"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

// Classifier turns a ticket description into a validated classification.
type Classifier interface {
	Classify(ctx context.Context, description string) (domain.Classification, error)
}

// New returns the stand-in classifier when cfg.Mock is set, otherwise a model-backed one.
func New(cfg config.LLMConfig, logger *zap.Logger) (Classifier, error) {
	if cfg.Mock {
		return NewStandIn(), nil
	}
	completer, err := llm.NewCompleter(cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMClassifier(completer, logger), nil
}

// LLMClassifier asks a language model and re-validates its answer.
type LLMClassifier struct {
	completer llm.Completer
	logger    *zap.Logger
}

// NewLLMClassifier wraps a completer.
func NewLLMClassifier(completer llm.Completer, logger *zap.Logger) *LLMClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMClassifier{completer: completer, logger: logger}
}

// Classify calls the model once; there is no retry.
func (c *LLMClassifier) Classify(ctx context.Context, description string) (domain.Classification, error) {
	text := strings.TrimSpace(description)
	if text == "" {
		return domain.Classification{}, apperrors.NewEmptyInput()
	}

	raw, err := c.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		c.logger.Error("llm call failed", zap.String("provider", c.completer.Name()), zap.Error(err))
		return domain.Classification{}, apperrors.NewLLMInvocation(err)
	}
	c.logger.Debug("llm response received", zap.String("provider", c.completer.Name()), zap.Int("size", len(raw)))

	result, err := DecodeClassification(ExtractJSONObject(raw))
	if err != nil {
		c.logger.Warn("llm output rejected",
			zap.String("code", apperrors.CodeOf(err)),
			zap.String("raw", raw),
		)
		return domain.Classification{}, err
	}
	return result, nil
}
