package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics records ledger and reconciliation activity.
type StockMetrics struct {
	deltas       *prometheus.CounterVec
	resolutions  *prometheus.CounterVec
	importRows   *prometheus.CounterVec
	importTiming prometheus.Histogram
}

// NewStockMetrics registers the stock metrics on the provided registerer.
// A nil registerer yields a no-op instance, which tests rely on.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	deltas := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_quantity_deltas_total",
		Help: "Applied stock quantity deltas by transaction type.",
	}, []string{"type"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_resolutions_total",
		Help: "Transaction status resolutions by target status.",
	}, []string{"status"})
	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Bulk import rows by outcome.",
	}, []string{"outcome"})
	importTiming := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "import_duration_seconds",
		Help:    "Duration of bulk imports in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(deltas, resolutions, importRows, importTiming)
	return &StockMetrics{
		deltas:       deltas,
		resolutions:  resolutions,
		importRows:   importRows,
		importTiming: importTiming,
	}
}

// IncDelta counts one applied quantity delta of the given transaction type.
func (s *StockMetrics) IncDelta(txnType string) {
	if s == nil || s.deltas == nil {
		return
	}
	s.deltas.WithLabelValues(normalizeLabel(txnType)).Inc()
}

// IncResolution counts one transaction resolved to the given status.
func (s *StockMetrics) IncResolution(status string) {
	if s == nil || s.resolutions == nil {
		return
	}
	s.resolutions.WithLabelValues(normalizeLabel(status)).Inc()
}

// AddImportRows counts imported rows under the given outcome label.
func (s *StockMetrics) AddImportRows(outcome string, n int) {
	if s == nil || s.importRows == nil || n <= 0 {
		return
	}
	s.importRows.WithLabelValues(normalizeLabel(outcome)).Add(float64(n))
}

// ObserveImportDuration records how long a bulk import took. The
// histogram carries no labels; anything per-business would be an
// unbounded label set.
func (s *StockMetrics) ObserveImportDuration(duration time.Duration) {
	if s == nil || s.importTiming == nil {
		return
	}
	s.importTiming.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
