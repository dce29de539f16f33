package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Night40050/support-copilot/internal/domain"
)

// ErrTicketNotFound is returned when no ticket matched the identifier.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrStoreNotConfigured is returned when the backing client was never connected.
var ErrStoreNotConfigured = errors.New("ticket store not configured")

// TicketRepository writes classification results onto existing tickets.
// Implementations never insert rows.
type TicketRepository interface {
	UpdateClassification(ctx context.Context, update domain.ClassificationUpdate) error
	Ping(ctx context.Context) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) UpdateClassification(ctx context.Context, update domain.ClassificationUpdate) error {
	if r.pool == nil {
		return ErrStoreNotConfigured
	}
	const query = `
        UPDATE tickets SET category=$1, sentiment=$2, confidence_score=$3, reasoning=$4,
            processed=TRUE, processing_time_ms=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		string(update.Classification.Category),
		string(update.Classification.Sentiment),
		update.Classification.ConfidenceScore,
		update.Classification.Reasoning,
		update.ProcessingTimeMS,
		update.TicketID.String(),
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *ticketRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return ErrStoreNotConfigured
	}
	return r.pool.Ping(ctx)
}
