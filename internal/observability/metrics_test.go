package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/process-ticket", "POST", 200, 15*time.Millisecond)
	m.RecordRequest("/process-ticket", "POST", 200, 5*time.Millisecond)
	m.RecordError("/process-ticket", "POST", "RECORD_NOT_FOUND")

	snap := m.Snapshot()
	if snap.Requests["/process-ticket|POST|200"] != 2 {
		t.Fatalf("unexpected request count: %v", snap.Requests)
	}
	if snap.RequestMillis["/process-ticket|POST|200"] != 20 {
		t.Fatalf("unexpected duration total: %v", snap.RequestMillis)
	}
	if snap.Errors["/process-ticket|POST|RECORD_NOT_FOUND"] != 1 {
		t.Fatalf("unexpected error count: %v", snap.Errors)
	}

	snap.Requests["/process-ticket|POST|200"] = 99
	if m.Snapshot().Requests["/process-ticket|POST|200"] != 2 {
		t.Fatal("snapshot must not alias internal state")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	if len(m.Snapshot().Requests) != 0 {
		t.Fatal("expected empty snapshot from nil metrics")
	}
}

func TestRequestLogger_RecordsRoutePath(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if metrics.Snapshot().Requests["/health|GET|200"] != 1 {
		t.Fatalf("expected request to be counted, got %v", metrics.Snapshot().Requests)
	}
}
