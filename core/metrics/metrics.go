package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes counters for the reconciliation job.
type Metrics struct {
	RunsTotal             *prometheus.CounterVec
	ExitsProcessedTotal   prometheus.Counter
	ExitsFailedTotal      prometheus.Counter
	StockRestoredTotal    prometheus.Counter
	MissingWarehouseTotal prometheus.Counter
	EligibleExits         prometheus.Gauge
}

// New registers and returns the job metrics on the default registry.
// Call once per process.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_reconciler_runs_total",
			Help: "Total number of reconciliation runs by outcome",
		}, []string{"outcome"}),
		ExitsProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stock_reconciler_exits_processed_total",
			Help: "Total number of expired exits fully reconciled",
		}),
		ExitsFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stock_reconciler_exits_failed_total",
			Help: "Total number of exits whose transaction rolled back",
		}),
		StockRestoredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stock_reconciler_stock_restored_total",
			Help: "Total quantity of stock restored to warehouses",
		}),
		MissingWarehouseTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stock_reconciler_missing_warehouse_total",
			Help: "Total line items skipped because the warehouse stock row was missing",
		}),
		EligibleExits: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stock_reconciler_eligible_exits",
			Help: "Number of eligible exits found by the most recent run",
		}),
	}
}

// ObserveRun records the aggregate outcome of a single run.
func (m *Metrics) ObserveRun(outcome string, found, processed, failed, restored, skipped int) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.EligibleExits.Set(float64(found))
	m.ExitsProcessedTotal.Add(float64(processed))
	m.ExitsFailedTotal.Add(float64(failed))
	m.StockRestoredTotal.Add(float64(restored))
	m.MissingWarehouseTotal.Add(float64(skipped))
}
