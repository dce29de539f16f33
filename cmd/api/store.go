package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/config"
	"github.com/Night40050/support-copilot/internal/persistence"
	"github.com/Night40050/support-copilot/internal/repository"
)

// openTicketStore connects the record store selected by STORE_DRIVER.
// The returned func releases its connections.
func openTicketStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TicketRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return repository.NewTicketRepository(pool), pool.Close, nil
	case config.StoreDriverSupabase:
		return repository.NewSupabaseTicketRepository(cfg.Supabase, nil), func() {}, nil
	case config.StoreDriverRedis:
		client, err := persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return repository.NewRedisTicketRepository(client), func() { _ = client.Close() }, nil
	case config.StoreDriverMemory:
		logger.Warn("memory store selected; tickets must be seeded and are lost on restart")
		return repository.NewMemoryTicketRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
