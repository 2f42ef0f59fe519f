// Package http holds the middleware, probes and route plumbing shared by the
// API handlers in the bookmark and feed subpackages.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/usecase/notify"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is satisfied by repository.ArticleStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChannelReporter is satisfied by notify.Service.
type ChannelReporter interface {
	GetChannelHealth() []notify.ChannelHealthStatus
}

// HealthHandler reports store connectivity plus the state of the upstream
// breakers and notification channels. Only a failing store makes the
// service unhealthy; an open breaker degrades it.
type HealthHandler struct {
	Store         Pinger
	Breakers      []*circuitbreaker.CircuitBreaker
	Notifications ChannelReporter
	RateLimiter   *RateLimiter
	Version       string
	Now           func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"store": h.checkStore(ctx)}
	healthy := checks["store"].Status == "healthy"

	for _, cb := range h.Breakers {
		checks["breaker_"+cb.Name()] = checkBreaker(cb)
	}
	if h.Notifications != nil {
		checks["notifications"] = checkChannels(h.Notifications.GetChannelHealth())
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.RateLimiter.Len()},
		}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	start := time.Now()
	if err := h.Store.Ping(ctx); err != nil {
		// ping errors may embed connection strings
		slog.Warn("health: store ping failed", slog.Any("error", err))
		return CheckStatus{Status: "unhealthy", Message: "store unreachable"}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"latency_ms": time.Since(start).Milliseconds()},
	}
}

func checkBreaker(cb *circuitbreaker.CircuitBreaker) CheckStatus {
	status := "healthy"
	if cb.IsOpen() {
		status = "degraded"
	}
	return CheckStatus{
		Status:  status,
		Details: map[string]any{"state": cb.State().String()},
	}
}

func checkChannels(channels []notify.ChannelHealthStatus) CheckStatus {
	status := "healthy"
	for _, ch := range channels {
		if ch.Enabled && ch.CircuitBreakerOpen {
			status = "degraded"
		}
	}
	return CheckStatus{
		Status:  status,
		Details: map[string]any{"channels": channels},
	}
}

// ReadyHandler answers readiness probes: 200 once the store responds to a ping.
type ReadyHandler struct {
	Store Pinger
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain")
	if h.Store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store not configured"))
		return
	}
	if err := h.Store.Ping(ctx); err != nil {
		slog.Warn("ready: store ping failed", slog.Any("error", err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes and always returns 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}

// RootHandler serves the service banner on GET /.
type RootHandler struct {
	Now func() time.Time
}

type banner struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(banner{
		Status:    "ok",
		Message:   "News Aggregator API is running",
		Timestamp: now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
