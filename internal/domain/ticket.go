package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// MinDescriptionLength is the minimum rune count of a ticket description.
	MinDescriptionLength = 10
	// MaxReasoningLength caps the model-provided justification.
	MaxReasoningLength = 300
)

// Category enumerates the closed ticket category vocabulary.
type Category string

const (
	CategoryTechnical  Category = "Technical"
	CategoryBilling    Category = "Billing"
	CategoryCommercial Category = "Commercial"
	CategoryOther      Category = "Other"
)

// Sentiment enumerates the closed sentiment vocabulary.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Labels used by the Spanish-language deployment are exact aliases, not fuzzy matches.
var categoryLabels = map[string]Category{
	"Technical":   CategoryTechnical,
	"Técnico":     CategoryTechnical,
	"Billing":     CategoryBilling,
	"Facturación": CategoryBilling,
	"Commercial":  CategoryCommercial,
	"Comercial":   CategoryCommercial,
	"Other":       CategoryOther,
	"Otro":        CategoryOther,
}

var sentimentLabels = map[string]Sentiment{
	"Positive": SentimentPositive,
	"Positivo": SentimentPositive,
	"Neutral":  SentimentNeutral,
	"Negative": SentimentNegative,
	"Negativo": SentimentNegative,
}

// Categories lists every category in prompt order.
func Categories() []Category {
	return []Category{CategoryTechnical, CategoryBilling, CategoryCommercial, CategoryOther}
}

// Sentiments lists every sentiment in prompt order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}
}

// ParseCategory maps an exact label to its category.
func ParseCategory(label string) (Category, bool) {
	c, ok := categoryLabels[label]
	return c, ok
}

// ParseSentiment maps an exact label to its sentiment.
func ParseSentiment(label string) (Sentiment, bool) {
	s, ok := sentimentLabels[label]
	return s, ok
}

// UnmarshalText rejects labels outside the vocabulary.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := ParseCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown category %q", string(text))
	}
	*c = parsed
	return nil
}

// UnmarshalText rejects labels outside the vocabulary.
func (s *Sentiment) UnmarshalText(text []byte) error {
	parsed, ok := ParseSentiment(string(text))
	if !ok {
		return fmt.Errorf("unknown sentiment %q", string(text))
	}
	*s = parsed
	return nil
}

// TicketProcessRequest is a validated request to classify a ticket.
type TicketProcessRequest struct {
	TicketID    uuid.UUID
	Description string
}

// Classification is the validated model verdict for a ticket description.
type Classification struct {
	Category        Category  `json:"category"`
	Sentiment       Sentiment `json:"sentiment"`
	ConfidenceScore float64   `json:"confidence_score"`
	Reasoning       string    `json:"reasoning"`
}

// ClassificationUpdate carries the fields written back to a ticket record.
type ClassificationUpdate struct {
	TicketID         uuid.UUID
	Classification   Classification
	ProcessingTimeMS int64
}

// Ticket is the persisted support request as seen by the record store.
type Ticket struct {
	ID               uuid.UUID
	Description      string
	Category         Category
	Sentiment        Sentiment
	ConfidenceScore  float64
	Reasoning        string
	Processed        bool
	ProcessingTimeMS int64
}

// Apply copies a classification update onto the ticket.
func (t *Ticket) Apply(update ClassificationUpdate) {
	t.Category = update.Classification.Category
	t.Sentiment = update.Classification.Sentiment
	t.ConfidenceScore = update.Classification.ConfidenceScore
	t.Reasoning = update.Classification.Reasoning
	t.Processed = true
	t.ProcessingTimeMS = update.ProcessingTimeMS
}
