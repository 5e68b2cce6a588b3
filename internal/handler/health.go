package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	names    []string
	checkers map[string]HealthChecker
}

// NewHealthHandler creates a HealthHandler over named dependencies. A nil
// checker is reported as "not configured" and does not fail readiness.
func NewHealthHandler(checkers map[string]HealthChecker) *HealthHandler {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return &HealthHandler{names: names, checkers: checkers}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 if the server is running.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings every dependency concurrently and returns 200 only if all
// configured ones are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		checks  = make(map[string]string, len(h.names))
		healthy = true
	)

	// Checks never return an error to the group so every dependency is reported.
	var g errgroup.Group
	for _, name := range h.names {
		checker := h.checkers[name]
		if checker == nil {
			checks[name] = "not configured"
			continue
		}
		g.Go(func() error {
			err := checker.Ping(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[name] = "error: " + err.Error()
				healthy = false
			} else {
				checks[name] = "ok"
			}
			return nil
		})
	}
	_ = g.Wait()

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Checks: checks})
}
