// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "summercamp"

// Collector holds every metric the API exports.
type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	paymentIntents     *prometheus.CounterVec
	paymentsCommitted  prometheus.Counter
	enrollmentsCleared prometheus.Counter
	commitClearFailed  prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		paymentIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_intents_total",
			Help:      "Payment intents requested from the gateway by result.",
		}, []string{"result"}),
		paymentsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_committed_total",
			Help:      "Payment records written.",
		}),
		enrollmentsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_cleared_total",
			Help:      "Enrollment records removed by completed payments.",
		}),
		commitClearFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_clear_failures_total",
			Help:      "Payments whose enrollment cleanup failed after the record was written.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.paymentIntents,
		c.paymentsCommitted,
		c.enrollmentsCleared,
		c.commitClearFailed,
	)

	return c
}

func (c *Collector) RecordPaymentIntent(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.paymentIntents.WithLabelValues(result).Inc()
}

func (c *Collector) RecordPaymentCommitted(cleared int64) {
	c.paymentsCommitted.Inc()
	c.enrollmentsCleared.Add(float64(cleared))
}

func (c *Collector) RecordClearFailure() {
	c.commitClearFailed.Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency keyed by the chi route
// pattern, so /classes/{id} is one series regardless of the id.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
