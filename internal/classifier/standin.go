package classifier

import (
	"context"
	"strings"

	"github.com/Night40050/support-copilot/internal/domain"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

// StandInResponse is the canned classification returned in mock mode.
func StandInResponse() domain.Classification {
	return domain.Classification{
		Category:        domain.CategoryTechnical,
		Sentiment:       domain.SentimentNegative,
		ConfidenceScore: 0.93,
		Reasoning:       "Mock classification: connectivity issue reported by the customer.",
	}
}

// StandInClassifier is a deterministic classifier that never leaves the process.
type StandInClassifier struct{}

// NewStandIn returns the stand-in classifier.
func NewStandIn() *StandInClassifier {
	return &StandInClassifier{}
}

func (StandInClassifier) Classify(_ context.Context, description string) (domain.Classification, error) {
	if strings.TrimSpace(description) == "" {
		return domain.Classification{}, apperrors.NewEmptyInput()
	}
	return StandInResponse(), nil
}
