package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStockMetrics(reg)

	metrics.IncDelta("SOLD")
	metrics.IncDelta("SOLD")
	metrics.IncResolution("Success")
	metrics.AddImportRows("created", 3)
	metrics.ObserveImportDuration(150 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "stock_quantity_deltas_total", "type", "SOLD"); err != nil {
		t.Fatalf("fetch deltas: %v", err)
	} else if got != 2 {
		t.Fatalf("expected deltas=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "transaction_resolutions_total", "status", "Success"); err != nil {
		t.Fatalf("fetch resolutions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected resolutions=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "import_rows_total", "outcome", "created"); err != nil {
		t.Fatalf("fetch import rows: %v", err)
	} else if got != 3 {
		t.Fatalf("expected rows=3, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "import_duration_seconds"); err != nil {
		t.Fatalf("fetch import duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if mf := findMetricFamily(mfs, "import_duration_seconds"); len(mf.GetMetric()[0].GetLabel()) != 0 {
		t.Fatalf("expected unlabeled import duration histogram, got %v", mf.GetMetric()[0].GetLabel())
	}
}

func TestStockMetricsNilSafe(t *testing.T) {
	var metrics *StockMetrics
	metrics.IncDelta("ADDED")
	metrics.IncResolution("Failed")
	metrics.AddImportRows("updated", 1)
	metrics.ObserveImportDuration(time.Second)

	noop := NewStockMetrics(nil)
	noop.IncDelta("ADDED")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	if len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("histogram %q has no samples", name)
	}
	return mf.GetMetric()[0].GetHistogram().GetSampleSum(), nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
