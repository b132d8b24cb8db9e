package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricToolCallsTotal   = "flightpulse.mcp.calls.total"
	metricToolCallDuration = "flightpulse.mcp.call.duration.seconds"
	metricToolErrorsTotal  = "flightpulse.mcp.errors.total"
	metricToolInflight     = "flightpulse.mcp.inflight.calls"

	attrTool = "tool"
)

// toolDurationBucketBoundaries covers 5ms directory listings through
// multi-second metric assemblies over a full day of stored flights.
var toolDurationBucketBoundaries = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ToolMetrics holds the OTel instruments for MCP tool call telemetry.
type ToolMetrics struct {
	callsTotal    metric.Int64Counter
	callDuration  metric.Float64Histogram
	errorsTotal   metric.Int64Counter
	inflightCalls metric.Int64UpDownCounter
}

// NewToolMetrics creates MCP tool metric instruments from the given meter.
func NewToolMetrics(mt metric.Meter) (*ToolMetrics, error) {
	b := newMetricBuilder(mt)

	tm := &ToolMetrics{
		callsTotal:    b.counter(metricToolCallsTotal, "Total number of MCP tool calls", "{call}"),
		callDuration:  b.histogram(metricToolCallDuration, "MCP tool call duration in seconds", "s", toolDurationBucketBoundaries...),
		errorsTotal:   b.counter(metricToolErrorsTotal, "Total number of failed MCP tool calls", "{error}"),
		inflightCalls: b.upDownCounter(metricToolInflight, "Number of in-flight MCP tool calls", "{call}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return tm, nil
}

// RecordCall records a completed tool call with its status and duration.
func (tm *ToolMetrics) RecordCall(ctx context.Context, tool, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)

	tm.callsTotal.Add(ctx, 1, attrs)
	tm.callDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		tm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrTool, tool),
		))
	}
}

// TrackCall increments the in-flight gauge and returns a function to decrement it.
func (tm *ToolMetrics) TrackCall(ctx context.Context, tool string) func() {
	attrs := metric.WithAttributes(attribute.String(attrTool, tool))
	tm.inflightCalls.Add(ctx, 1, attrs)

	return func() {
		tm.inflightCalls.Add(ctx, -1, attrs)
	}
}
