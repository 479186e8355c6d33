package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSyncMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)

	m.ObserveOp("inventory", "create", "ok")
	m.ObserveOp("inventory", "create", "ok")
	m.ObserveOp("patients", "load", "error")
	m.ObserveLatency("inventory", "create", 0.12)

	if got := testutil.ToFloat64(m.opsTotal.WithLabelValues("inventory", "create", "ok")); got != 2 {
		t.Fatalf("inventory create ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.opsTotal.WithLabelValues("patients", "load", "error")); got != 1 {
		t.Fatalf("patients load error = %v, want 1", got)
	}
}

func TestSyncMetricsNilReceiver(t *testing.T) {
	var m *SyncMetrics
	m.ObserveOp("inventory", "load", "ok")
	m.ObserveLatency("inventory", "load", 0.1)
}
