package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/skyward-analytics/flightpulse/internal/observability"
)

func setupToolMeter(t *testing.T) (*observability.ToolMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	tm, err := observability.NewToolMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return tm, reader
}

func TestToolMetrics_RecordCall(t *testing.T) {
	t.Parallel()
	tm, reader := setupToolMeter(t)
	ctx := context.Background()

	tm.RecordCall(ctx, "airport_metrics", observability.StatusOK, time.Millisecond*50)

	rm := collectMetrics(t, reader)

	callsTotal := findMetric(rm, "flightpulse.mcp.calls.total")
	require.NotNil(t, callsTotal, "flightpulse.mcp.calls.total metric not found")

	callDuration := findMetric(rm, "flightpulse.mcp.call.duration.seconds")
	require.NotNil(t, callDuration, "flightpulse.mcp.call.duration.seconds metric not found")

	errTotal := findMetric(rm, "flightpulse.mcp.errors.total")
	assert.Nil(t, errTotal, "errors.total should not record for ok calls")
}

func TestToolMetrics_RecordCallError(t *testing.T) {
	t.Parallel()
	tm, reader := setupToolMeter(t)
	ctx := context.Background()

	tm.RecordCall(ctx, "airport_metrics", observability.StatusError, time.Second)

	rm := collectMetrics(t, reader)

	errTotal := findMetric(rm, "flightpulse.mcp.errors.total")
	require.NotNil(t, errTotal, "flightpulse.mcp.errors.total metric not found")

	sum, ok := errTotal.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestToolMetrics_TrackCall(t *testing.T) {
	t.Parallel()
	tm, reader := setupToolMeter(t)
	ctx := context.Background()

	done := tm.TrackCall(ctx, "list_airports")

	rm := collectMetrics(t, reader)

	inflight := findMetric(rm, "flightpulse.mcp.inflight.calls")
	require.NotNil(t, inflight, "flightpulse.mcp.inflight.calls metric not found")

	done()

	rm = collectMetrics(t, reader)
	inflight = findMetric(rm, "flightpulse.mcp.inflight.calls")
	require.NotNil(t, inflight)
}
