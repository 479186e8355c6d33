package metrics

import "github.com/prometheus/client_golang/prometheus"

// SyncMetrics exposes counters/histograms for entity list synchronization.
type SyncMetrics struct {
	opsTotal  *prometheus.CounterVec
	opLatency *prometheus.HistogramVec
}

func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicconsole",
			Subsystem: "sync",
			Name:      "operations_total",
			Help:      "Total synchronizer operations by domain and outcome",
		}, []string{"domain", "op", "status"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicconsole",
			Subsystem: "sync",
			Name:      "operation_latency_seconds",
			Help:      "Latency of synchronizer operations against the backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"domain", "op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.opsTotal, m.opLatency)
	return m
}

func (m *SyncMetrics) ObserveOp(domain, op, status string) {
	if m == nil {
		return
	}
	m.opsTotal.WithLabelValues(domain, op, status).Inc()
}

func (m *SyncMetrics) ObserveLatency(domain, op string, seconds float64) {
	if m == nil {
		return
	}
	m.opLatency.WithLabelValues(domain, op).Observe(seconds)
}
