package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Night40050/support-copilot/internal/domain"
)

const ticketKeyPrefix = "ticket:"

// updateIfExists writes the classification fields only when the hash exists.
var updateIfExists = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[1],
  'category', ARGV[1],
  'sentiment', ARGV[2],
  'confidence_score', ARGV[3],
  'reasoning', ARGV[4],
  'processed', 'true',
  'processing_time_ms', ARGV[5])
return 1
`)

type redisTicketRepository struct {
	client *redis.Client
}

// NewRedisTicketRepository stores tickets as hashes keyed by ticket:<id>.
func NewRedisTicketRepository(client *redis.Client) TicketRepository {
	return &redisTicketRepository{client: client}
}

// TicketKey returns the hash key holding a ticket.
func TicketKey(id uuid.UUID) string {
	return ticketKeyPrefix + id.String()
}

func (r *redisTicketRepository) UpdateClassification(ctx context.Context, update domain.ClassificationUpdate) error {
	if r.client == nil {
		return ErrStoreNotConfigured
	}
	updated, err := updateIfExists.Run(ctx, r.client,
		[]string{TicketKey(update.TicketID)},
		string(update.Classification.Category),
		string(update.Classification.Sentiment),
		formatScore(update.Classification.ConfidenceScore),
		update.Classification.Reasoning,
		update.ProcessingTimeMS,
	).Int()
	if err != nil {
		return fmt.Errorf("update ticket hash: %w", err)
	}
	if updated == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *redisTicketRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return ErrStoreNotConfigured
	}
	return r.client.Ping(ctx).Err()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
