// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

type CountFunc func(ctx context.Context) (int64, error)

type Handler struct {
	dbStats     func() sql.DBStats
	dbPing      func(ctx context.Context) error
	redisPing   func(ctx context.Context) error
	users       CountFunc
	classes     CountFunc
	enrollments CountFunc
	payments    CountFunc
	revenue     func(ctx context.Context) (float64, error)
}

type HandlerConfig struct {
	DBStats     func() sql.DBStats
	DBPing      func(ctx context.Context) error
	RedisPing   func(ctx context.Context) error
	Users       CountFunc
	Classes     CountFunc
	Enrollments CountFunc
	Payments    CountFunc
	Revenue     func(ctx context.Context) (float64, error)
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:     cfg.DBStats,
		dbPing:      cfg.DBPing,
		redisPing:   cfg.RedisPing,
		users:       cfg.Users,
		classes:     cfg.Classes,
		enrollments: cfg.Enrollments,
		payments:    cfg.Payments,
		revenue:     cfg.Revenue,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

// GetStats reports dashboard totals alongside backing service health.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totals, err := h.totals(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, StatsResponse{
		Totals: totals,
		Database: DatabaseStatus{
			Healthy: ping(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: ping(ctx, h.redisPing),
		},
		Runtime: readRuntimeStats(),
	})
}

func (h *Handler) totals(ctx context.Context) (Totals, error) {
	var t Totals
	g, gctx := errgroup.WithContext(ctx)

	count := func(fn CountFunc, dst *int64) {
		if fn == nil {
			return
		}
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}

	count(h.users, &t.Users)
	count(h.classes, &t.Classes)
	count(h.enrollments, &t.PendingEnrollments)
	count(h.payments, &t.Payments)

	if h.revenue != nil {
		g.Go(func() error {
			v, err := h.revenue(gctx)
			t.Revenue = v
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Totals{}, err
	}
	return t, nil
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntimeStats())
}

func ping(ctx context.Context, fn func(ctx context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

type StatsResponse struct {
	Totals   Totals         `json:"totals"`
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type Totals struct {
	Users              int64   `json:"users"`
	Classes            int64   `json:"classes"`
	PendingEnrollments int64   `json:"pending_enrollments"`
	Payments           int64   `json:"payments"`
	Revenue            float64 `json:"revenue"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool `json:"healthy"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
