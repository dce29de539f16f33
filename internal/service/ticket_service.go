package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/classifier"
	"github.com/Night40050/support-copilot/internal/domain"
	"github.com/Night40050/support-copilot/internal/events"
	"github.com/Night40050/support-copilot/internal/repository"
	apperrors "github.com/Night40050/support-copilot/pkg/util/errorutil"
)

// RequestValidator turns an untyped payload into a validated request.
type RequestValidator interface {
	ValidateTicketRequest(payload map[string]any) (domain.TicketProcessRequest, error)
}

// TicketService runs the validate, classify and update pipeline.
type TicketService struct {
	validator  RequestValidator
	classifier classifier.Classifier
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Validator  RequestValidator
	Classifier classifier.Classifier
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		validator:  deps.Validator,
		classifier: deps.Classifier,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessTicket validates the payload, classifies the description and writes
// the result onto the existing ticket. The first failing stage ends the run.
func (s *TicketService) ProcessTicket(ctx context.Context, payload map[string]any) (domain.Classification, error) {
	started := s.now()

	req, err := s.validator.ValidateTicketRequest(payload)
	if err != nil {
		return domain.Classification{}, err
	}
	log := s.logger.With(zap.String("ticket_id", req.TicketID.String()))

	llmStarted := s.now()
	result, err := s.classifier.Classify(ctx, req.Description)
	if err != nil {
		return domain.Classification{}, err
	}
	llmElapsed := s.now().Sub(llmStarted)

	update := domain.ClassificationUpdate{
		TicketID:         req.TicketID,
		Classification:   result,
		ProcessingTimeMS: llmElapsed.Milliseconds(),
	}

	storeStarted := s.now()
	if err := s.tickets.UpdateClassification(ctx, update); err != nil {
		log.Error("ticket update failed", zap.Error(err))
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.Classification{}, apperrors.NewRecordNotFound(req.TicketID.String())
		}
		return domain.Classification{}, apperrors.NewStoreConnection(err)
	}
	storeElapsed := s.now().Sub(storeStarted)

	log.Info("ticket processed",
		zap.String("category", string(result.Category)),
		zap.String("sentiment", string(result.Sentiment)),
		zap.Int64("llm_ms", llmElapsed.Milliseconds()),
		zap.Int64("store_ms", storeElapsed.Milliseconds()),
		zap.Int64("total_ms", s.now().Sub(started).Milliseconds()),
	)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketClassified,
		TicketID: req.TicketID.String(),
		Payload: events.TicketClassifiedPayload{
			Category:         result.Category,
			Sentiment:        result.Sentiment,
			ConfidenceScore:  result.ConfidenceScore,
			ProcessingTimeMS: update.ProcessingTimeMS,
		},
	})

	return result, nil
}

// Ready reports whether the record store is reachable.
func (s *TicketService) Ready(ctx context.Context) error {
	return s.tickets.Ping(ctx)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err),
		)
	}
}
