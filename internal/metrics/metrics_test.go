// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/classes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/classes/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	want := `summercamp_http_requests_total{method="GET",route="/classes/{id}",status="404"} 3`
	if !strings.Contains(body, want) {
		t.Fatalf("metrics output missing %q\n%s", want, body)
	}
}

func TestRecordPaymentCommitted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPaymentCommitted(2)
	c.RecordPaymentCommitted(0)
	c.RecordClearFailure()
	c.RecordPaymentIntent(true)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		"summercamp_payments_committed_total 2",
		"summercamp_enrollments_cleared_total 2",
		"summercamp_payment_clear_failures_total 1",
		`summercamp_payment_intents_total{result="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
