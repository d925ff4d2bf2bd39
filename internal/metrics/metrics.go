package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the concierge's collectors. A nil *Metrics is valid and records
// nothing, so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted   *prometheus.CounterVec
	turns             *prometheus.CounterVec
	bookingsConfirmed *prometheus.CounterVec
	completionErrors  *prometheus.CounterVec
	completionDropped prometheus.Counter
	notifications     *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "sessions_started_total",
			Help:      "Conversations started, by channel.",
		}, []string{"channel"}),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "turns_total",
			Help:      "Customer utterances processed, by the step they were received in.",
		}, []string{"step"}),
		bookingsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "bookings_confirmed_total",
			Help:      "Bookings confirmed by customers, by source.",
		}, []string{"source"}),
		completionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "completion_errors_total",
			Help:      "Failures while completing confirmed bookings, by stage.",
		}, []string{"stage"}),
		completionDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "completion_dropped_total",
			Help:      "Confirmed bookings dropped because the completion queue was full.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "notifications_total",
			Help:      "Outbound SMS notifications, by recipient kind and outcome.",
		}, []string{"recipient", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "concierge",
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "concierge",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionsStarted,
		m.turns,
		m.bookingsConfirmed,
		m.completionErrors,
		m.completionDropped,
		m.notifications,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// RegisterSessionGauge exposes the live session count through fn.
func (m *Metrics) RegisterSessionGauge(fn func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "concierge",
		Name:      "active_sessions",
		Help:      "Sessions currently held by the session store.",
	}, fn))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionStarted(channel string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(channel).Inc()
}

func (m *Metrics) Turn(step string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(step).Inc()
}

func (m *Metrics) BookingConfirmed(source string) {
	if m == nil {
		return
	}
	m.bookingsConfirmed.WithLabelValues(source).Inc()
}

func (m *Metrics) CompletionError(stage string) {
	if m == nil {
		return
	}
	m.completionErrors.WithLabelValues(stage).Inc()
}

func (m *Metrics) CompletionDropped() {
	if m == nil {
		return
	}
	m.completionDropped.Inc()
}

func (m *Metrics) Notification(recipient string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(recipient, outcome).Inc()
}

// Middleware records request counts and latency keyed by the matched route
// pattern, so path parameters such as call SIDs do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
