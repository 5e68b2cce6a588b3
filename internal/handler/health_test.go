package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockHealthChecker is a mock implementation of HealthChecker for testing.
type mockHealthChecker struct {
	err   error
	delay time.Duration
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.err
}

func serveReadyz(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec.Code, response
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
}

func TestHealthHandler_Readyz_AllHealthy(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{
		"database": &mockHealthChecker{},
		"redis":    &mockHealthChecker{delay: 10 * time.Millisecond},
		"storage":  &mockHealthChecker{},
	})

	code, response := serveReadyz(t, h)

	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
	for _, name := range []string{"database", "redis", "storage"} {
		if response.Checks[name] != "ok" {
			t.Errorf("expected %s check 'ok', got %q", name, response.Checks[name])
		}
	}
}

func TestHealthHandler_Readyz_DatabaseUnhealthy(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{
		"database": &mockHealthChecker{err: errors.New("connection refused")},
		"redis":    &mockHealthChecker{},
	})

	code, response := serveReadyz(t, h)

	if code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", code)
	}
	if response.Status != "unhealthy" {
		t.Errorf("expected status 'unhealthy', got %s", response.Status)
	}
	if response.Checks["database"] != "error: connection refused" {
		t.Errorf("unexpected database check: %q", response.Checks["database"])
	}
	if response.Checks["redis"] != "ok" {
		t.Errorf("redis should still be reported, got %q", response.Checks["redis"])
	}
}

func TestHealthHandler_Readyz_NotConfigured(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{
		"database": &mockHealthChecker{},
		"redis":    nil,
		"storage":  nil,
	})

	code, response := serveReadyz(t, h)

	if code != http.StatusOK {
		t.Errorf("unconfigured dependencies must not fail readiness, got %d", code)
	}
	if response.Checks["redis"] != "not configured" {
		t.Errorf("expected redis 'not configured', got %q", response.Checks["redis"])
	}
	if response.Checks["storage"] != "not configured" {
		t.Errorf("expected storage 'not configured', got %q", response.Checks["storage"])
	}
}
