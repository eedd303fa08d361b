package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Dialogue metrics
	MessagesTotal        *prometheus.CounterVec
	ScopeRejectionsTotal prometheus.Counter
	CatalogResponses     *prometheus.CounterVec

	// AI delegation metrics
	AIDelegationsTotal   *prometheus.CounterVec
	AIDelegationDuration *prometheus.HistogramVec

	// Session metrics
	ActiveSessions  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsExpired prometheus.Counter

	// Catalog store metrics
	CourseLookupsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		// Dialogue metrics
		MessagesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_messages_total",
				Help: "Total number of handled messages by question type",
			},
			[]string{"question_type"},
		),

		ScopeRejectionsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_scope_rejections_total",
				Help: "Total number of messages rejected as out of scope",
			},
		),

		CatalogResponses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_catalog_responses_total",
				Help: "Total number of locally resolved replies by catalog category",
			},
			[]string{"category"},
		),

		// AI delegation metrics
		AIDelegationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_ai_delegations_total",
				Help: "Total number of AI chat delegations by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, timeout
		),

		AIDelegationDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_ai_delegation_duration_seconds",
				Help:    "AI chat delegation duration in seconds by provider",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}, // Matches 30s chat timeout
			},
			[]string{"provider"},
		),

		// Session metrics
		ActiveSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "assistant_active_sessions",
				Help: "Number of live conversation sessions",
			},
		),

		SessionsCreated: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_sessions_created_total",
				Help: "Total number of conversation sessions created",
			},
		),

		SessionsExpired: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_sessions_expired_total",
				Help: "Total number of sessions removed by TTL cleanup",
			},
		),

		// Catalog store metrics
		CourseLookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_course_lookups_total",
				Help: "Total number of course store lookups by operation and status",
			},
			[]string{"operation", "status"}, // status: success, not_found, error
		),

		// HTTP metrics
		HTTPRequestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"route", "method"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: validation, not_found, rate_limit, internal
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: session, ai, global
		),
	}
}

// RecordMessage records a handled message by question type
func (m *Metrics) RecordMessage(questionType string) {
	m.MessagesTotal.WithLabelValues(questionType).Inc()
}

// RecordScopeRejection records a message rejected as out of scope
func (m *Metrics) RecordScopeRejection() {
	m.ScopeRejectionsTotal.Inc()
}

// RecordCatalogResponse records a locally resolved reply
func (m *Metrics) RecordCatalogResponse(category string) {
	m.CatalogResponses.WithLabelValues(category).Inc()
}

// RecordAIDelegation records an AI chat delegation with status
func (m *Metrics) RecordAIDelegation(provider, status string, duration float64) {
	m.AIDelegationsTotal.WithLabelValues(provider, status).Inc()
	m.AIDelegationDuration.WithLabelValues(provider).Observe(duration)
}

// RecordSessionCreated records a new conversation session
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreated.Inc()
	m.ActiveSessions.Inc()
}

// RecordSessionClosed records a session removed explicitly
func (m *Metrics) RecordSessionClosed() {
	m.ActiveSessions.Dec()
}

// RecordSessionExpired records a session removed by TTL cleanup
func (m *Metrics) RecordSessionExpired() {
	m.SessionsExpired.Inc()
	m.ActiveSessions.Dec()
}

// RecordCourseLookup records a course store lookup
func (m *Metrics) RecordCourseLookup(operation, status string) {
	m.CourseLookupsTotal.WithLabelValues(operation, status).Inc()
}

// RecordHTTPRequest records request duration for a route
func (m *Metrics) RecordHTTPRequest(route, method string, duration float64) {
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}
