package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

const namespace = "isorisk"

// Metrics holds the Prometheus collectors of the service on its own registry
type Metrics struct {
	registry        *prometheus.Registry
	quantifications *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	reminders       prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New creates collectors and registers them with a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quantifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quantifications_total",
				Help:      "Number of risk score computations by resulting level",
			},
			[]string{"level"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Number of submitted assessments by risk level",
			},
			[]string{"level"},
		),
		reminders: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "review_reminders_total",
				Help:      "Number of review reminders sent",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of response latency (seconds) for HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "code"},
		),
	}

	m.registry.MustRegister(
		m.quantifications,
		m.submissions,
		m.reminders,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Expose every level from the start so dashboards see zero series
	for _, level := range types.AllRiskLevels() {
		m.quantifications.WithLabelValues(level.String())
		m.submissions.WithLabelValues(level.String())
	}

	return m
}

// ObserveQuantification counts one score computation
func (m *Metrics) ObserveQuantification(level types.RiskLevel) {
	m.quantifications.WithLabelValues(level.String()).Inc()
}

// ObserveSubmission counts one stored assessment
func (m *Metrics) ObserveSubmission(level types.RiskLevel) {
	m.submissions.WithLabelValues(level.String()).Inc()
}

// ObserveReviewReminders counts sent review reminders
func (m *Metrics) ObserveReviewReminders(n int) {
	m.reminders.Add(float64(n))
}

// ObserveRequest records the latency of one HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
