// Package metrics holds the Prometheus collectors shared by the assessment,
// approval, violation and verdict services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for safety governance operations.
type Metrics struct {
	AssessmentsConducted *prometheus.CounterVec
	ApprovalsRequested   prometheus.Counter
	ApprovalsDecided     *prometheus.CounterVec
	ViolationsReported   *prometheus.CounterVec
	ViolationsResolved   prometheus.Counter
	VerdictsComputed     *prometheus.CounterVec
	VerdictLatency       prometheus.Histogram
}

// New registers and returns safety metrics collectors.
func New() *Metrics {
	return &Metrics{
		AssessmentsConducted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_assessments_conducted_total",
			Help: "Total number of safety assessments conducted, labeled by safety level",
		}, []string{"level"}),
		ApprovalsRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_approvals_requested_total",
			Help: "Total number of approval requests created",
		}),
		ApprovalsDecided: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_approvals_decided_total",
			Help: "Total number of approval decisions recorded, labeled by decision",
		}, []string{"decision"}),
		ViolationsReported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_violations_reported_total",
			Help: "Total number of safety violations reported, labeled by severity",
		}, []string{"severity"}),
		ViolationsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_violations_resolved_total",
			Help: "Total number of safety violations resolved",
		}),
		VerdictsComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_verdicts_computed_total",
			Help: "Total number of campaign safety verdicts computed, labeled by outcome",
		}, []string{"is_safe"}),
		VerdictLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_verdict_latency_seconds",
			Help:    "Latency of campaign verdict computation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementAssessmentsConducted(level string) {
	m.AssessmentsConducted.WithLabelValues(level).Inc()
}

func (m *Metrics) IncrementApprovalsRequested() {
	m.ApprovalsRequested.Inc()
}

func (m *Metrics) IncrementApprovalsDecided(decision string) {
	m.ApprovalsDecided.WithLabelValues(decision).Inc()
}

func (m *Metrics) IncrementViolationsReported(severity string) {
	m.ViolationsReported.WithLabelValues(severity).Inc()
}

func (m *Metrics) IncrementViolationsResolved() {
	m.ViolationsResolved.Inc()
}

func (m *Metrics) IncrementVerdictsComputed(isSafe bool) {
	if isSafe {
		m.VerdictsComputed.WithLabelValues("true").Inc()
		return
	}
	m.VerdictsComputed.WithLabelValues("false").Inc()
}

func (m *Metrics) ObserveVerdictLatency(seconds float64) {
	m.VerdictLatency.Observe(seconds)
}
