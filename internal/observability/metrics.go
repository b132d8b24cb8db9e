package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "flightpulse.api.requests.total"
	metricRequestDuration  = "flightpulse.api.request.duration.seconds"
	metricErrorsTotal      = "flightpulse.api.errors.total"
	metricInflightRequests = "flightpulse.api.inflight.requests"
	metricFlightsFetched   = "flightpulse.flights.fetched.total"

	attrOp        = "op"
	attrStatus    = "status"
	attrDirection = "direction"

	// StatusOK marks a successful request outcome.
	StatusOK = "ok"
	// StatusError marks a failed request outcome.
	StatusError = "error"
	// StatusRateLimited marks a request that was rejected with HTTP 429.
	StatusRateLimited = "rate_limited"
)

// durationBucketBoundaries covers 50ms to 600s: sub-second single-page
// responses through multi-minute rate-limit retry loops.
var durationBucketBoundaries = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// APIMetrics holds the OTel instruments for AeroAPI request telemetry.
type APIMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
	flightsFetched   metric.Int64Counter
}

// NewAPIMetrics creates API metric instruments from the given meter.
func NewAPIMetrics(mt metric.Meter) (*APIMetrics, error) {
	b := newMetricBuilder(mt)

	am := &APIMetrics{
		requestsTotal:    b.counter(metricRequestsTotal, "Total number of AeroAPI requests", "{request}"),
		requestDuration:  b.histogram(metricRequestDuration, "AeroAPI request duration in seconds", "s", durationBucketBoundaries...),
		errorsTotal:      b.counter(metricErrorsTotal, "Total number of AeroAPI request errors", "{error}"),
		inflightRequests: b.upDownCounter(metricInflightRequests, "Number of in-flight AeroAPI requests", "{request}"),
		flightsFetched:   b.counter(metricFlightsFetched, "Total number of flight rows fetched", "{flight}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return am, nil
}

// RecordRequest records a completed request with its operation, status, and duration.
func (am *APIMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	am.requestsTotal.Add(ctx, 1, attrs)
	am.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		am.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrOp, op),
		))
	}
}

// AddFlights counts flight rows fetched for the given direction.
func (am *APIMetrics) AddFlights(ctx context.Context, direction string, count int64) {
	am.flightsFetched.Add(ctx, count, metric.WithAttributes(
		attribute.String(attrDirection, direction),
	))
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (am *APIMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	am.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		am.inflightRequests.Add(ctx, -1, attrs)
	}
}
