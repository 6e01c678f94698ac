package healthprobe

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// HealthChecker provides health and readiness checks, plus a per-component
// status map components report into (store, relayer, storage).
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool

	mu         sync.RWMutex
	components map[string]bool
}

// New creates a new HealthChecker.
func New() *HealthChecker {
	return &HealthChecker{
		startTime:  time.Now(),
		components: make(map[string]bool),
	}
}

// SetReady marks the application as ready to serve traffic.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// SetComponent records the health of a named component. Unhealthy
// components do not fail liveness, only readiness.
func (h *HealthChecker) SetComponent(name string, healthy bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[name] = healthy
}

func (h *HealthChecker) componentsHealthy() (map[string]bool, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := make(map[string]bool, len(h.components))
	allHealthy := true
	for name, healthy := range h.components {
		snapshot[name] = healthy
		if !healthy {
			allHealthy = false
		}
	}

	return snapshot, allHealthy
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string          `json:"status"`
	Uptime     string          `json:"uptime"`
	Components map[string]bool `json:"components,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the application is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK if ready and all components are healthy,
// 503 Service Unavailable otherwise.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components, allHealthy := h.componentsHealthy()

		if !h.ready.Load() || !allHealthy {
			resp := HealthResponse{
				Status:     "not_ready",
				Components: components,
				Message:    "application is starting or a component is unhealthy",
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		resp := HealthResponse{
			Status:     "ready",
			Uptime:     time.Since(h.startTime).String(),
			Components: components,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
