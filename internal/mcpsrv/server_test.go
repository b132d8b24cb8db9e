package mcpsrv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/mcpsrv"
)

func seedAirport(t *testing.T, store *flightstore.Store, airport string) {
	t.Helper()

	date := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
	in := date.Add(8 * time.Hour)
	out := date.Add(10 * time.Hour)
	operator := "TAP"

	_, err := store.Save(airport, aeroapi.DirectionArrivals, date, []flightstore.Record{
		{FaFlightID: "arr-1", Operator: &operator, ScheduledInUTC: &in},
	})
	require.NoError(t, err)

	_, err = store.Save(airport, aeroapi.DirectionDepartures, date, []flightstore.Record{
		{FaFlightID: "dep-1", Operator: &operator, ScheduledOutUTC: &out},
	})
	require.NoError(t, err)
}

func startServer(t *testing.T, store *flightstore.Store) (*mcpsdk.ClientSession, func()) {
	t.Helper()

	srv := mcpsrv.NewServer(mcpsrv.ServerDeps{Store: store})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	stop := func() {
		_ = session.Close()

		cancel()
		<-serverDone
	}

	return session, stop
}

func TestNewServerRegistersTools(t *testing.T) {
	t.Parallel()

	srv := mcpsrv.NewServer(mcpsrv.ServerDeps{Store: flightstore.NewStore(t.TempDir())})

	assert.Equal(t, []string{"airport_metrics", "list_airports"}, srv.ListToolNames())
}

func TestMCPServer_InMemoryTransport_ToolsList(t *testing.T) {
	t.Parallel()

	session, stop := startServer(t, flightstore.NewStore(t.TempDir()))
	defer stop()

	ctx := context.Background()

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, toolsResult)

	toolNames := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		toolNames = append(toolNames, tool.Name)
	}

	assert.Contains(t, toolNames, "airport_metrics")
	assert.Contains(t, toolNames, "list_airports")
	assert.Len(t, toolNames, 2)

	for _, tool := range toolsResult.Tools {
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
	}
}

func TestMCPServer_InMemoryTransport_CallAirportMetrics(t *testing.T) {
	t.Parallel()

	store := flightstore.NewStore(t.TempDir())
	seedAirport(t, store, "LPPT")

	session, stop := startServer(t, store)
	defer stop()

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name: "airport_metrics",
		Arguments: map[string]any{
			"airport": "LPPT",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"airport": "LPPT"`)
	assert.Contains(t, text.Text, "general_metrics")
}

func TestMCPServer_InMemoryTransport_CallListAirports(t *testing.T) {
	t.Parallel()

	store := flightstore.NewStore(t.TempDir())
	seedAirport(t, store, "LPPT")

	session, stop := startServer(t, store)
	defer stop()

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      "list_airports",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "LPPT")
}

func TestMCPServer_InMemoryTransport_CallAirportMetrics_Error(t *testing.T) {
	t.Parallel()

	session, stop := startServer(t, flightstore.NewStore(t.TempDir()))
	defer stop()

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name: "airport_metrics",
		Arguments: map[string]any{
			"airport": "LPPT",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
