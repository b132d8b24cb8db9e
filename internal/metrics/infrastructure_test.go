package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

func TestComputeDeparturesPerTerminal(t *testing.T) {
	t.Parallel()

	departures := []schedule.Flight{
		flightRow(flightstore.Record{FaFlightID: "d1", TerminalOrigin: ptr("1")}),
		flightRow(flightstore.Record{FaFlightID: "d2", TerminalOrigin: ptr("1")}),
		flightRow(flightstore.Record{FaFlightID: "d3", TerminalOrigin: ptr("2")}),
		flightRow(flightstore.Record{FaFlightID: "d4"}),
	}

	rows := ComputeDeparturesPerTerminal(departures)
	require.Len(t, rows, 2)

	// The unassigned row is excluded from the denominator: shares are over
	// 3 assigned departures, not 4.
	assert.Equal(t, TerminalDepartures{Terminal: "1", NumDepartures: 2, UtilizationPerc: 66.67}, rows[0])
	assert.Equal(t, TerminalDepartures{Terminal: "2", NumDepartures: 1, UtilizationPerc: 33.33}, rows[1])
}

func TestUtilizationSumsToHundred(t *testing.T) {
	t.Parallel()

	arrivals := []schedule.Flight{
		flightRow(flightstore.Record{FaFlightID: "a1", GateDestination: ptr("A12")}),
		flightRow(flightstore.Record{FaFlightID: "a2", GateDestination: ptr("A12")}),
		flightRow(flightstore.Record{FaFlightID: "a3", GateDestination: ptr("B03")}),
		flightRow(flightstore.Record{FaFlightID: "a4", GateDestination: ptr("C01")}),
		flightRow(flightstore.Record{FaFlightID: "a5"}),
	}

	rows := ComputeArrivalsPerGate(arrivals)
	require.Len(t, rows, 3)

	var sum float64

	for _, row := range rows {
		sum += row.UtilizationPerc
	}

	assert.InDelta(t, 100.0, sum, 0.02)
}

func TestComputeResourceTieBreak(t *testing.T) {
	t.Parallel()

	departures := []schedule.Flight{
		flightRow(flightstore.Record{FaFlightID: "d1", ActualRunwayOff: ptr("21")}),
		flightRow(flightstore.Record{FaFlightID: "d2", ActualRunwayOff: ptr("03")}),
	}

	rows := ComputeDeparturesPerRunway(departures)
	require.Len(t, rows, 2)
	assert.Equal(t, "03", rows[0].Runway)
	assert.Equal(t, "21", rows[1].Runway)
}

func TestComputeTerminalDepartureDelays(t *testing.T) {
	t.Parallel()

	departures := []schedule.Flight{
		flightRow(flightstore.Record{FaFlightID: "d1", TerminalOrigin: ptr("2"), DepartureDelay: ptr(int64(600))}),
		flightRow(flightstore.Record{FaFlightID: "d2", TerminalOrigin: ptr("2"), DepartureDelay: ptr(int64(1200))}),
		flightRow(flightstore.Record{FaFlightID: "d3", TerminalOrigin: ptr("2")}),
		flightRow(flightstore.Record{FaFlightID: "d4", TerminalOrigin: ptr("1"), DepartureDelay: ptr(int64(60))}),
	}

	rows := ComputeTerminalDepartureDelays(departures)
	require.Len(t, rows, 2)

	// Ordered by terminal ascending, not by count.
	assert.Equal(t, "1", rows[0].Terminal)
	assert.Equal(t, "2", rows[1].Terminal)

	two := rows[1]
	assert.Equal(t, 3, two.NumDepartures)
	assert.InDelta(t, 30.0, two.TotalDepartureDelayMin, 0.001)
	// The delayless row still widens the average's denominator.
	assert.InDelta(t, 10.0, two.AvgDepartureDelayMin, 0.001)
}

func TestComputeTerminalArrivalDelaysUseDestinationTerminal(t *testing.T) {
	t.Parallel()

	arrivals := []schedule.Flight{
		flightRow(flightstore.Record{
			FaFlightID:          "a1",
			TerminalOrigin:      ptr("9"),
			TerminalDestination: ptr("1"),
			ArrivalDelay:        ptr(int64(300)),
		}),
		flightRow(flightstore.Record{
			FaFlightID:     "a2",
			TerminalOrigin: ptr("9"),
			ArrivalDelay:   ptr(int64(900)),
		}),
	}

	rows := ComputeTerminalArrivalDelays(arrivals)
	require.Len(t, rows, 1)

	// Only the arrival with a destination terminal lands in the table; the
	// origin terminal of the upstream airport is irrelevant here.
	assert.Equal(t, "1", rows[0].Terminal)
	assert.Equal(t, 1, rows[0].NumArrivals)
	assert.InDelta(t, 5.0, rows[0].TotalArrivalDelayMin, 0.001)
	assert.InDelta(t, 5.0, rows[0].AvgArrivalDelayMin, 0.001)
}

func TestComputeInfrastructureEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ComputeDeparturesPerTerminal(nil))
	assert.Empty(t, ComputeArrivalsPerTerminal(nil))
	assert.Empty(t, ComputeDeparturesPerGate(nil))
	assert.Empty(t, ComputeArrivalsPerRunway(nil))
	assert.Empty(t, ComputeTerminalDepartureDelays(nil))
	assert.Empty(t, ComputeTerminalArrivalDelays(nil))
}
