// Package metrics exposes Prometheus collectors for submissions, HTTP
// traffic and queue publishes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

const namespace = "formsubmit"

// Metrics owns a private registry and every collector registered in it.
type Metrics struct {
	registry *prometheus.Registry

	submissions      *prometheus.CounterVec
	submitDuration   *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	queuePublishes   *prometheus.CounterVec
	secretResolution prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions by terminal outcome.",
		}, []string{"outcome"}),
		submitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time from receipt to terminal outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		queuePublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "publishes_total",
			Help:      "Queue publishes by result.",
		}, []string{"result"}),
		secretResolution: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "secrets_resolved_timestamp_seconds",
			Help:      "Unix time at which the connection strings were resolved.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.submitDuration,
		m.httpRequests,
		m.httpDuration,
		m.queuePublishes,
		m.secretResolution,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// ObserveSubmission records a terminal submission outcome.
func (m *Metrics) ObserveSubmission(outcome domain.Stage, took time.Duration) {
	m.submissions.WithLabelValues(string(outcome)).Inc()
	m.submitDuration.WithLabelValues(string(outcome)).Observe(took.Seconds())
}

// ObserveHTTP records one served request. Route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObservePublish records the result of one queue publish.
func (m *Metrics) ObservePublish(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.queuePublishes.WithLabelValues(result).Inc()
}

// SecretsResolved marks the moment the secret bundle was built.
func (m *Metrics) SecretsResolved(at time.Time) {
	m.secretResolution.Set(float64(at.Unix()))
}
