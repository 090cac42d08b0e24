// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

const (
	Banner       = "Summer school camp is on"
	checkTimeout = 5 * time.Second
)

type Checker interface {
	Ping(ctx context.Context) error
}

// Dependency is a named backing service probed by /readyz.
type Dependency struct {
	Name    string
	Checker Checker
}

type Handler struct {
	deps     []Dependency
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(deps ...Dependency) *Handler {
	h := &Handler{deps: deps}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	core.Text(w, Banner)
}

func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	writeStatus(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	if !h.ready.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := h.runChecks(ctx)

	status, code := "ok", http.StatusOK
	for _, c := range checks {
		if !c.Healthy {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	writeStatus(w, code, ReadinessResponse{Status: status, Checks: checks})
}

// runChecks pings every dependency concurrently; results keep
// registration order.
func (h *Handler) runChecks(ctx context.Context) []HealthCheck {
	checks := make([]HealthCheck, len(h.deps))

	var wg sync.WaitGroup
	for i, dep := range h.deps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = probe(ctx, dep)
		}()
	}
	wg.Wait()

	return checks
}

func probe(ctx context.Context, dep Dependency) HealthCheck {
	check := HealthCheck{Name: dep.Name, Healthy: true}

	if dep.Checker == nil {
		check.Healthy = false
		check.Message = dep.Name + " checker not configured"
		return check
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)
	check.Latency = time.Since(start).String()

	if err != nil {
		check.Healthy = false
		check.Message = "ping failed"
	}

	return check
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	core.JSON(w, status, data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
