package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Night40050/support-copilot/internal/domain"
)

// MemoryTicketRepository keeps tickets in process memory.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[uuid.UUID]domain.Ticket
}

// NewMemoryTicketRepository returns an empty store.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[uuid.UUID]domain.Ticket)}
}

// Seed inserts or replaces a ticket. Only used to prepare rows outside the pipeline.
func (r *MemoryTicketRepository) Seed(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = ticket
}

// Get returns a copy of the stored ticket.
func (r *MemoryTicketRepository) Get(id uuid.UUID) (domain.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	return t, ok
}

func (r *MemoryTicketRepository) UpdateClassification(ctx context.Context, update domain.ClassificationUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[update.TicketID]
	if !ok {
		return ErrTicketNotFound
	}
	ticket.Apply(update)
	r.tickets[update.TicketID] = ticket
	return nil
}

func (r *MemoryTicketRepository) Ping(context.Context) error {
	return nil
}
