//go:build integration_pg
// +build integration_pg

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/persistence"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func connect(t *testing.T, ctx context.Context, dsn string) *pgxpool.Pool {
	t.Helper()
	var (
		pool *pgxpool.Pool
		err  error
	)
	// the log line fires once before the final restart of the init sequence
	for attempt := 0; attempt < 10; attempt++ {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool
			}
			pool.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("connect postgres: %v", err)
	return nil
}

func TestTicketRepository_UpdateClassification_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pool := connect(t, ctx, dsn)
	defer pool.Close()

	if err := persistence.RunMigrations(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	id := uuid.New()
	if _, err := pool.Exec(ctx, `INSERT INTO tickets (id, description) VALUES ($1, $2)`, id.String(), "Why was I charged twice?"); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	repo := NewTicketRepository(pool)
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := repo.UpdateClassification(ctx, sampleUpdate(id)); err != nil {
		t.Fatalf("update: %v", err)
	}

	var (
		category, sentiment, reasoning, description string
		score                                       float64
		processed                                   bool
		elapsed                                     int64
	)
	err := pool.QueryRow(ctx, `
        SELECT category, sentiment, confidence_score, reasoning, processed, processing_time_ms, description
        FROM tickets WHERE id=$1`, id.String()).
		Scan(&category, &sentiment, &score, &reasoning, &processed, &elapsed, &description)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if category != "Billing" || sentiment != "Neutral" || score != 0.61 || !processed || elapsed != 120 {
		t.Fatalf("unexpected row: %s %s %v %v %d", category, sentiment, score, processed, elapsed)
	}
	if description != "Why was I charged twice?" {
		t.Fatalf("description changed: %q", description)
	}

	missing := uuid.New()
	if err := repo.UpdateClassification(ctx, sampleUpdate(missing)); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("update must never insert, found %d rows", count)
	}
}
