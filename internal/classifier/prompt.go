package classifier

import (
	"fmt"
	"strings"

	"github.com/Night40050/support-copilot/internal/domain"
	"github.com/Night40050/support-copilot/internal/llm"
)

var systemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}
	sentiments := make([]string, 0, len(domain.Sentiments()))
	for _, s := range domain.Sentiments() {
		sentiments = append(sentiments, string(s))
	}

	var b strings.Builder
	b.WriteString("You are a support ticket classifier. ")
	b.WriteString("Return ONLY one valid JSON object with exactly these keys: ")
	b.WriteString("category, sentiment, confidence_score, reasoning. ")
	b.WriteString("Do not include markdown or any additional text. ")
	fmt.Fprintf(&b, "Use only these categories: %s. ", strings.Join(categories, ", "))
	fmt.Fprintf(&b, "Use only these sentiments: %s. ", strings.Join(sentiments, ", "))
	b.WriteString("confidence_score is a number between 0 and 1. ")
	fmt.Fprintf(&b, "reasoning is a short justification of at most %d characters. ", domain.MaxReasoningLength)
	fmt.Fprintf(&b, "If the evidence is insufficient, use category=%q, sentiment=%q and a confidence_score <= 0.5.",
		domain.CategoryOther, domain.SentimentNeutral)
	return b.String()
}

// BuildPrompt returns the fixed instruction prompt for a trimmed description.
func BuildPrompt(description string) llm.Prompt {
	return llm.Prompt{
		System: systemPrompt,
		User:   "Ticket:\n" + description,
	}
}
