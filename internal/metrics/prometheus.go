package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aisboost"

// PrometheusRecorder exports metrics through a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	authOutcomes    *prometheus.CounterVec
	authDuration    prometheus.Histogram
	expiredSessions prometheus.Counter
	sessionCache    *prometheus.CounterVec
	applicationOps  *prometheus.CounterVec
	templateOps     *prometheus.CounterVec
}

// NewPrometheus creates a recorder with its own registry, including the
// process and Go runtime collectors.
func NewPrometheus() *PrometheusRecorder {
	p := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		authOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "requests_total",
				Help:      "Authentication gate decisions by outcome.",
			},
			[]string{"outcome"},
		),
		authDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "duration_seconds",
				Help:      "Time spent resolving a session.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
		),
		expiredSessions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "expired_sessions_cleaned_total",
				Help:      "Expired sessions removed by the authentication gate.",
			},
		),
		sessionCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session_cache",
				Name:      "lookups_total",
				Help:      "Session cache lookups by result.",
			},
			[]string{"result"},
		),
		applicationOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "applications",
				Name:      "mutations_total",
				Help:      "Application mutations by operation.",
			},
			[]string{"op"},
		),
		templateOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "templates",
				Name:      "mutations_total",
				Help:      "Template mutations by operation.",
			},
			[]string{"op"},
		),
	}

	p.registry.MustRegister(
		p.authOutcomes,
		p.authDuration,
		p.expiredSessions,
		p.sessionCache,
		p.applicationOps,
		p.templateOps,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return p
}

// Handler returns an HTTP handler exposing the registered collectors.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncAuthOutcome(outcome string) {
	p.authOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveAuthDuration(duration time.Duration) {
	p.authDuration.Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncExpiredSessionCleaned() {
	p.expiredSessions.Inc()
}

func (p *PrometheusRecorder) IncSessionCacheHit() {
	p.sessionCache.WithLabelValues("hit").Inc()
}

func (p *PrometheusRecorder) IncSessionCacheMiss() {
	p.sessionCache.WithLabelValues("miss").Inc()
}

func (p *PrometheusRecorder) IncApplicationCreated() {
	p.applicationOps.WithLabelValues("create").Inc()
}

func (p *PrometheusRecorder) IncApplicationUpdated() {
	p.applicationOps.WithLabelValues("update").Inc()
}

func (p *PrometheusRecorder) IncApplicationDeleted() {
	p.applicationOps.WithLabelValues("delete").Inc()
}

func (p *PrometheusRecorder) IncTemplateCreated() {
	p.templateOps.WithLabelValues("create").Inc()
}

func (p *PrometheusRecorder) IncTemplateUpdated() {
	p.templateOps.WithLabelValues("update").Inc()
}

func (p *PrometheusRecorder) IncTemplateDeleted() {
	p.templateOps.WithLabelValues("delete").Inc()
}
