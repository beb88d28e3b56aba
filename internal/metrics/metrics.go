package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "faq_agent"

// Metrics holds the Prometheus collectors for routing and retrieval.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	gatherer        prometheus.Gatherer
	decisions       *prometheus.CounterVec
	answers         *prometheus.CounterVec
	sourceFailures  *prometheus.CounterVec
	sourceDuration  *prometheus.HistogramVec
	evidenceRecords prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// Collectors that are already registered are reused.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: reg,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routing_decisions_total",
			Help:      "Routing decisions by parsed action.",
		}, []string{"action"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Answers returned by mode and outcome.",
		}, []string{"mode", "outcome"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "source_failures_total",
			Help:      "Retrieval tasks that degraded to empty evidence.",
		}, []string{"source"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "source_duration_seconds",
			Help:      "Latency of each retrieval task.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "status"}),
		evidenceRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "evidence_records",
			Help:      "Evidence records merged per fan-out.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
	}

	var err error
	if m.decisions, err = register(reg, m.decisions); err != nil {
		return nil, err
	}
	if m.answers, err = register(reg, m.answers); err != nil {
		return nil, err
	}
	if m.sourceFailures, err = register(reg, m.sourceFailures); err != nil {
		return nil, err
	}
	if m.sourceDuration, err = register(reg, m.sourceDuration); err != nil {
		return nil, err
	}
	if m.evidenceRecords, err = register(reg, m.evidenceRecords); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, returning the existing collector when one with the
// same descriptor is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveDecision counts one routing decision.
func (m *Metrics) ObserveDecision(action string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(action).Inc()
}

// ObserveAnswer counts one answer by mode and outcome ("ok", "degraded", "error").
func (m *Metrics) ObserveAnswer(mode, outcome string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(mode, outcome).Inc()
}

// ObserveSource records one retrieval task.
func (m *Metrics) ObserveSource(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.sourceFailures.WithLabelValues(source).Inc()
	}
	m.sourceDuration.WithLabelValues(source, status).Observe(d.Seconds())
}

// ObserveEvidence records the size of one merged evidence set.
func (m *Metrics) ObserveEvidence(n int) {
	if m == nil {
		return
	}
	m.evidenceRecords.Observe(float64(n))
}
