package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-tracker/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty", Name: "tracker"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("debug should be disabled for an unknown level")
	}
	if !logger.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be enabled")
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/api/state", "GET", "RECORD_STORE_ERROR")
	m.RecordFetch("Tickets", "ok", 10*time.Millisecond)
	m.RecordFetch("Tickets", "ok", 30*time.Millisecond)

	snap := m.Snapshot()
	if snap.Requests["/|GET|200"] != 2 {
		t.Errorf("requests = %v", snap.Requests)
	}
	if snap.Errors["/api/state|GET|RECORD_STORE_ERROR"] != 1 {
		t.Errorf("errors = %v", snap.Errors)
	}
	if snap.Fetches["Tickets|ok"] != 2 || snap.FetchMS["Tickets|ok"] != 20 {
		t.Errorf("fetches = %v avg = %v", snap.Fetches, snap.FetchMS)
	}

	m.RecordFetch("Comments", "transport", 0)
	if snap.Fetches["Comments|transport"] != 0 {
		t.Error("snapshot must not change after later recordings")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	m.RecordFetch("Tickets", "ok", 0)
	if len(m.Snapshot().Requests) != 0 {
		t.Error("nil metrics snapshot should be empty")
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/tickets/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/tickets/r1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.Header.Get(RequestIDHeader) != "req-123" {
		t.Errorf("request id header = %q", resp.Header.Get(RequestIDHeader))
	}

	entries := logs.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-123" || fields["path"] != "/tickets/r1" {
		t.Errorf("fields = %v", fields)
	}
	if metrics.Snapshot().Requests["/tickets/:id|GET|200"] != 1 {
		t.Errorf("requests = %v", metrics.Snapshot().Requests)
	}
}

func TestRequestLoggerGeneratesID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if len(resp.Header.Get(RequestIDHeader)) != 36 {
		t.Errorf("generated request id = %q", resp.Header.Get(RequestIDHeader))
	}
}
