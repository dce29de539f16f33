package classifier

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/Night40050/support-copilot/internal/domain"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

var errInvalidJSON = errors.New("candidate is not valid JSON")

// DecodeClassification parses candidate JSON and enforces the output schema.
// Unknown labels are rejected, never mapped to a neighbour.
func DecodeClassification(candidate string) (domain.Classification, error) {
	if !gjson.Valid(candidate) {
		return domain.Classification{}, apperrors.NewMalformedOutput(fmt.Errorf("%w: %.200q", errInvalidJSON, candidate))
	}
	root := gjson.Parse(candidate)
	if !root.IsObject() {
		return domain.Classification{}, apperrors.NewSchemaViolation([]string{"output must be a JSON object"})
	}

	var (
		out        domain.Classification
		violations []string
	)

	if v, ok := requireString(root, "category", &violations); ok {
		if c, known := domain.ParseCategory(v); known {
			out.Category = c
		} else {
			violations = append(violations, fmt.Sprintf("category %q is not one of %v", v, domain.Categories()))
		}
	}
	if v, ok := requireString(root, "sentiment", &violations); ok {
		if s, known := domain.ParseSentiment(v); known {
			out.Sentiment = s
		} else {
			violations = append(violations, fmt.Sprintf("sentiment %q is not one of %v", v, domain.Sentiments()))
		}
	}

	score := root.Get("confidence_score")
	switch {
	case !score.Exists():
		violations = append(violations, "confidence_score is required")
	case score.Type != gjson.Number:
		violations = append(violations, "confidence_score must be a number")
	case score.Num < 0 || score.Num > 1:
		violations = append(violations, fmt.Sprintf("confidence_score %v must be between 0 and 1", score.Num))
	default:
		out.ConfidenceScore = score.Num
	}

	if v, ok := requireString(root, "reasoning", &violations); ok {
		if n := utf8.RuneCountInString(v); n > domain.MaxReasoningLength {
			violations = append(violations, fmt.Sprintf("reasoning has %d characters, at most %d allowed", n, domain.MaxReasoningLength))
		} else {
			out.Reasoning = v
		}
	}

	if len(violations) > 0 {
		return domain.Classification{}, apperrors.NewSchemaViolation(violations)
	}
	return out, nil
}

func requireString(root gjson.Result, key string, violations *[]string) (string, bool) {
	v := root.Get(key)
	if !v.Exists() {
		*violations = append(*violations, key+" is required")
		return "", false
	}
	if v.Type != gjson.String {
		*violations = append(*violations, key+" must be a string")
		return "", false
	}
	return v.Str, true
}
