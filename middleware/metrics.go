package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	statusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category", "method", "path"},
	)
)

var registerMetricsOnce sync.Once

// HTTPMetrics records request counts and latencies for one service.
type HTTPMetrics struct {
	ServiceName string
}

func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(requestCounter, requestDuration, statusCategoryCounter)
	})
	return &HTTPMetrics{ServiceName: serviceName}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Middleware wraps a handler and records metrics per route template, so
// /materials/{id} stays one series regardless of the actual ID.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		statusStr := strconv.Itoa(rec.status)

		requestCounter.WithLabelValues(m.ServiceName, r.Method, path, statusStr).Inc()
		requestDuration.WithLabelValues(m.ServiceName, r.Method, path, statusStr).Observe(time.Since(start).Seconds())

		category := ""
		switch {
		case rec.status >= 200 && rec.status < 300:
			category = "2xx"
		case rec.status >= 400 && rec.status < 500:
			category = "4xx"
		case rec.status >= 500 && rec.status < 600:
			category = "5xx"
		}
		if category != "" {
			statusCategoryCounter.WithLabelValues(m.ServiceName, category, r.Method, path).Inc()
		}
	})
}

// PrometheusHandler exposes the metrics endpoint.
func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
