package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	gateConsumes  *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	evaluations   *prometheus.CounterVec
	snapshotPairs *prometheus.GaugeVec
	fetchLatency  *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		gateConsumes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omla_gate_consumes_total",
				Help: "Feature gate consume attempts by feature and outcome",
			},
			[]string{"feature", "outcome"},
		),
		submissions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omla_order_submissions_total",
				Help: "Order submissions by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omla_arb_evaluations_total",
				Help: "Arbitrage evaluations by decision",
			},
			[]string{"decision"},
		),
		snapshotPairs: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "omla_leadlag_snapshot_pairs",
				Help: "Number of pairs in the current lead-lag snapshot",
			},
			[]string{"source"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omla_remote_call_duration_seconds",
				Help:    "Duration of remote service calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"call"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omla_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordGateConsume records a gate consume attempt.
func (r *Recorder) RecordGateConsume(feature, outcome string) {
	r.gateConsumes.WithLabelValues(feature, outcome).Inc()
}

// RecordSubmission records an order submission outcome.
func (r *Recorder) RecordSubmission(mode, outcome string) {
	r.submissions.WithLabelValues(mode, outcome).Inc()
}

// RecordEvaluation records an arbitrage evaluation decision.
func (r *Recorder) RecordEvaluation(decision string) {
	r.evaluations.WithLabelValues(decision).Inc()
}

// RecordSnapshotSize records the size of a refreshed snapshot.
func (r *Recorder) RecordSnapshotSize(source string, pairs int) {
	r.snapshotPairs.WithLabelValues(source).Set(float64(pairs))
}

// RecordRemoteLatency records remote call latency in seconds.
func (r *Recorder) RecordRemoteLatency(call string, seconds float64) {
	r.fetchLatency.WithLabelValues(call).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
