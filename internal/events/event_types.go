package events

import (
	"time"

	"github.com/Night40050/support-copilot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketClassified EventType = "ticket_classified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketClassifiedPayload payload.
type TicketClassifiedPayload struct {
	Category         domain.Category  `json:"category"`
	Sentiment        domain.Sentiment `json:"sentiment"`
	ConfidenceScore  float64          `json:"confidence_score"`
	ProcessingTimeMS int64            `json:"processing_time_ms"`
}
