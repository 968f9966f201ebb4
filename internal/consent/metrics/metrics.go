package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for consent operations.
type Metrics struct {
	ConsentsRequested  *prometheus.CounterVec
	ConsentsGranted    *prometheus.CounterVec
	ConsentsRevoked    *prometheus.CounterVec
	ConsentCheckPassed prometheus.Counter
	ConsentCheckFailed prometheus.Counter
	GrantLatency       prometheus.Histogram
}

// New registers and returns consent metrics collectors.
func New() *Metrics {
	return &Metrics{
		ConsentsRequested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_consents_requested_total",
			Help: "Total number of consent requests created, labeled by consent type",
		}, []string{"consent_type"}),
		ConsentsGranted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_consents_granted_total",
			Help: "Total number of consents granted, labeled by consent type",
		}, []string{"consent_type"}),
		ConsentsRevoked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_consents_revoked_total",
			Help: "Total number of consents revoked, labeled by consent type",
		}, []string{"consent_type"}),
		ConsentCheckPassed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_consent_checks_passed_total",
			Help: "Total number of consent status checks that returned granted",
		}),
		ConsentCheckFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_consent_checks_failed_total",
			Help: "Total number of consent status checks that returned denied",
		}),
		GrantLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_consent_grant_latency_seconds",
			Help:    "Latency of consent grant operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementConsentsRequested(consentType string) {
	m.ConsentsRequested.WithLabelValues(consentType).Inc()
}

func (m *Metrics) IncrementConsentsGranted(consentType string) {
	m.ConsentsGranted.WithLabelValues(consentType).Inc()
}

func (m *Metrics) IncrementConsentsRevoked(consentType string) {
	m.ConsentsRevoked.WithLabelValues(consentType).Inc()
}

func (m *Metrics) IncrementConsentCheckPassed() {
	m.ConsentCheckPassed.Inc()
}

func (m *Metrics) IncrementConsentCheckFailed() {
	m.ConsentCheckFailed.Inc()
}

func (m *Metrics) ObserveGrantLatency(seconds float64) {
	m.GrantLatency.Observe(seconds)
}
