package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// Rating event pipeline metrics
	ratingEventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_events_processed_total",
			Help: "Total number of rating events processed successfully",
		},
	)

	ratingEventsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_events_discarded_total",
			Help: "Total number of malformed rating events discarded",
		},
	)

	ratingEventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_events_failed_total",
			Help: "Total number of rating events that failed downstream processing",
		},
	)

	recalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_recalculations_total",
			Help: "Total number of recalculations by outcome",
		},
		[]string{"outcome"},
	)

	catalogSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_syncs_total",
			Help: "Total number of catalog sync attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func RatingEventProcessed() { ratingEventsProcessed.Inc() }
func RatingEventDiscarded() { ratingEventsDiscarded.Inc() }
func RatingEventFailed()    { ratingEventsFailed.Inc() }

func RecalculationDone(outcome string) {
	recalculationsTotal.WithLabelValues(outcome).Inc()
}

func CatalogSyncDone(outcome string) {
	catalogSyncsTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// HTTPMiddleware records request counts and latency per method/path/status.
// The path label is the matched chi route pattern, so user ids do not mint
// unbounded label pairs.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		if sw.status == 0 {
			status = "200"
		}
		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// routePattern must be read after the inner handler ran; chi fills the route
// context during matching. Unmatched requests fall back to the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
