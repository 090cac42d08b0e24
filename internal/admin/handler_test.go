// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

func fixed(n int64) CountFunc {
	return func(context.Context) (int64, error) { return n, nil }
}

func allow(next http.Handler) http.Handler { return next }

func forbid(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		core.Forbidden(w, "")
	})
}

func serve(h *Handler, adminOnly func(http.Handler) http.Handler, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r, allow, adminOnly)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStatsTotals(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBPing:      func(context.Context) error { return nil },
		RedisPing:   func(context.Context) error { return errors.New("down") },
		Users:       fixed(12),
		Classes:     fixed(4),
		Enrollments: fixed(7),
		Payments:    fixed(3),
		Revenue:     func(context.Context) (float64, error) { return 135.5, nil },
	})

	rec := serve(h, allow, "/admin/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := Totals{Users: 12, Classes: 4, PendingEnrollments: 7, Payments: 3, Revenue: 135.5}
	if resp.Totals != want {
		t.Errorf("totals = %+v, want %+v", resp.Totals, want)
	}
	if !resp.Database.Healthy || resp.Redis.Healthy {
		t.Errorf("health = db %v redis %v", resp.Database.Healthy, resp.Redis.Healthy)
	}
	if resp.Runtime.GoVersion == "" {
		t.Error("runtime stats missing")
	}
}

func TestStatsCountFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Users: func(context.Context) (int64, error) { return 0, errors.New("timeout") },
	})

	if rec := serve(h, allow, "/admin/stats"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestStatsAdminOnly(t *testing.T) {
	h := NewHandler(HandlerConfig{Users: fixed(1)})

	for _, target := range []string{"/admin/stats", "/admin/stats/db", "/admin/stats/runtime"} {
		if rec := serve(h, forbid, target); rec.Code != http.StatusForbidden {
			t.Errorf("%s status = %d, want 403", target, rec.Code)
		}
	}
}
