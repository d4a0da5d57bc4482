// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the domain operations worth watching.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_http_requests_total",
			Help: "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_registrations_total",
			Help: "Event registrations by kind (direct, external)",
		},
		[]string{"kind"},
	)

	eventsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_events_created_total",
			Help: "Events created",
		},
	)

	eventsBlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_events_blocked_total",
			Help: "Event creations rejected by the banned word filter",
		},
	)

	requestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_event_requests_total",
			Help: "Assistant event requests by detected category",
		},
		[]string{"category"},
	)

	eventsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campus_events_expired_total",
			Help: "Events marked expired by the sweeper",
		},
	)
)

// Registration kinds.
const (
	KindDirect   = "direct"
	KindExternal = "external"
)

// TrackRegistration counts a successful registration.
func TrackRegistration(kind string) {
	registrations.WithLabelValues(kind).Inc()
}

// TrackEventCreated counts a created event.
func TrackEventCreated() {
	eventsCreated.Inc()
}

// TrackEventBlocked counts an event rejected for banned content.
func TrackEventBlocked() {
	eventsBlocked.Inc()
}

// TrackRequestSubmitted counts an assistant request.
func TrackRequestSubmitted(category string) {
	requestsSubmitted.WithLabelValues(category).Inc()
}

// TrackExpired adds n sweeper expirations.
func TrackExpired(n int64) {
	if n > 0 {
		eventsExpired.Add(float64(n))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency labelled with the matched
// chi route pattern, so /api/events/{id} is one series rather than one per id.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
