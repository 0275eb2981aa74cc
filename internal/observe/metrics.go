// Package observe provides observability primitives for the Frankfurter MCP
// server: OpenTelemetry metric instruments and a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A package-level
// default [Metrics] instance ([DefaultMetrics]) is provided for convenience;
// tests should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/DrTrips-Comp/frankfurter-mcp-server"

// Metrics holds all OpenTelemetry metric instruments for the server. All
// fields are safe for concurrent use.
type Metrics struct {
	// ToolCalls counts tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// ToolDuration tracks end-to-end tool handler latency.
	ToolDuration metric.Float64Histogram

	// UpstreamRequests counts Frankfurter API requests. Use with attributes:
	//   attribute.String("endpoint", ...), attribute.String("status", ...)
	UpstreamRequests metric.Int64Counter

	// UpstreamDuration tracks Frankfurter API request latency.
	UpstreamDuration metric.Float64Histogram

	// Truncations counts responses cut down to the character limit,
	// by tool name.
	Truncations metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// a single outbound REST call per tool invocation.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ToolCalls, err = m.Int64Counter("frankfurter_mcp.tool.calls",
		metric.WithDescription("Total tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.ToolDuration, err = m.Float64Histogram("frankfurter_mcp.tool.duration",
		metric.WithDescription("Latency of tool handler execution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.UpstreamRequests, err = m.Int64Counter("frankfurter_mcp.upstream.requests",
		metric.WithDescription("Total Frankfurter API requests by endpoint and status."),
	); err != nil {
		return nil, err
	}
	if met.UpstreamDuration, err = m.Float64Histogram("frankfurter_mcp.upstream.duration",
		metric.WithDescription("Latency of Frankfurter API requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Truncations, err = m.Int64Counter("frankfurter_mcp.response.truncations",
		metric.WithDescription("Total responses truncated to the character limit, by tool."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordToolCall records one tool invocation with the standard attribute set
// and its handler latency.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, seconds float64) {
	m.ToolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	))
	m.ToolDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordUpstreamRequest records one Frankfurter API request with the standard
// attribute set and its latency.
func (m *Metrics) RecordUpstreamRequest(ctx context.Context, endpoint, status string, seconds float64) {
	m.UpstreamRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("status", status),
	))
	m.UpstreamDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("endpoint", endpoint)))
}

// RecordTruncation records one truncated response.
func (m *Metrics) RecordTruncation(ctx context.Context, tool string) {
	m.Truncations.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}
