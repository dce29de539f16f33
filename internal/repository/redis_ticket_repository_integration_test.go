//go:build integration_redis
// +build integration_redis

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) (addr string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start redis container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	addr = fmt.Sprintf("%s:%s", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return addr, stop
}

func TestRedisTicketRepository_Integration(t *testing.T) {
	addr, stop := startRedis(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	id := uuid.New()
	if err := client.HSet(ctx, TicketKey(id), "description", "Why was I charged twice?", "processed", "false").Err(); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	repo := NewRedisTicketRepository(client)
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := repo.UpdateClassification(ctx, sampleUpdate(id)); err != nil {
		t.Fatalf("update: %v", err)
	}

	fields, err := client.HGetAll(ctx, TicketKey(id)).Result()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if fields["category"] != "Billing" || fields["confidence_score"] != "0.61" || fields["processed"] != "true" || fields["processing_time_ms"] != "120" {
		t.Fatalf("unexpected hash: %v", fields)
	}
	if fields["description"] != "Why was I charged twice?" {
		t.Fatalf("description changed: %v", fields)
	}

	missing := uuid.New()
	if err := repo.UpdateClassification(ctx, sampleUpdate(missing)); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if n, _ := client.Exists(ctx, TicketKey(missing)).Result(); n != 0 {
		t.Fatal("update must never create a hash")
	}
}
