package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics creates a Metrics instance backed by a manual reader so
// recorded values can be collected synchronously.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestRecordToolCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "convert_currency", "ok", 0.05)
	m.RecordToolCall(ctx, "convert_currency", "ok", 0.07)
	m.RecordToolCall(ctx, "get_latest_rates", "validation_error", 0.001)

	rm := collect(t, reader)

	calls, ok := findMetric(rm, "frankfurter_mcp.tool.calls")
	if !ok {
		t.Fatal("tool.calls metric not found")
	}
	sum, ok := calls.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("tool.calls data type = %T, want Sum[int64]", calls.Data)
	}

	var convertOK, latestValidation int64
	for _, dp := range sum.DataPoints {
		tool, _ := dp.Attributes.Value(attribute.Key("tool"))
		status, _ := dp.Attributes.Value(attribute.Key("status"))
		switch {
		case tool.AsString() == "convert_currency" && status.AsString() == "ok":
			convertOK = dp.Value
		case tool.AsString() == "get_latest_rates" && status.AsString() == "validation_error":
			latestValidation = dp.Value
		}
	}
	if convertOK != 2 {
		t.Errorf("convert_currency/ok count = %d, want 2", convertOK)
	}
	if latestValidation != 1 {
		t.Errorf("get_latest_rates/validation_error count = %d, want 1", latestValidation)
	}

	dur, ok := findMetric(rm, "frankfurter_mcp.tool.duration")
	if !ok {
		t.Fatal("tool.duration metric not found")
	}
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("tool.duration data type = %T, want Histogram[float64]", dur.Data)
	}
	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	if total != 3 {
		t.Errorf("tool.duration total count = %d, want 3", total)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordUpstreamRequest(ctx, "latest", "200", 0.12)
	m.RecordUpstreamRequest(ctx, "latest", "404", 0.03)

	rm := collect(t, reader)

	reqs, ok := findMetric(rm, "frankfurter_mcp.upstream.requests")
	if !ok {
		t.Fatal("upstream.requests metric not found")
	}
	sum, ok := reqs.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("upstream.requests data type = %T, want Sum[int64]", reqs.Data)
	}
	if len(sum.DataPoints) != 2 {
		t.Errorf("expected 2 data points (one per status), got %d", len(sum.DataPoints))
	}
	for _, dp := range sum.DataPoints {
		if dp.Value != 1 {
			t.Errorf("data point value = %d, want 1", dp.Value)
		}
	}
}

func TestRecordTruncation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTruncation(ctx, "get_time_series")
	m.RecordTruncation(ctx, "get_time_series")

	rm := collect(t, reader)

	trunc, ok := findMetric(rm, "frankfurter_mcp.response.truncations")
	if !ok {
		t.Fatal("response.truncations metric not found")
	}
	sum, ok := trunc.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("response.truncations data type = %T, want Sum[int64]", trunc.Data)
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
	}
	dp := sum.DataPoints[0]
	if dp.Value != 2 {
		t.Errorf("truncation count = %d, want 2", dp.Value)
	}
	if tool, _ := dp.Attributes.Value(attribute.Key("tool")); tool.AsString() != "get_time_series" {
		t.Errorf("tool attribute = %q, want get_time_series", tool.AsString())
	}
}

func TestDefaultMetricsIsSingleton(t *testing.T) {
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("DefaultMetrics must return the same instance")
	}
}
