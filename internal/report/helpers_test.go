package report

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/metrics"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTracer() trace.Tracer {
	return nooptrace.NewTracerProvider().Tracer("test")
}

// departureFixture builds an analysis row for a departure to icao with
// the scheduling dimensions already populated.
func departureFixture(id, airline, icao string, hour int, delaySec int64) schedule.Flight {
	rec := flightstore.Record{
		FaFlightID:          id,
		Operator:            ptr(airline),
		AircraftType:        ptr("A320"),
		DepartureDelay:      ptr(delaySec),
		RouteDistance:       ptr(550.0),
		FiledEte:            ptr(int64(7200)),
		TerminalOrigin:      ptr("1"),
		GateOrigin:          ptr("12"),
		ActualRunwayOff:     ptr("03"),
		DestinationCode:     ptr(icao),
		DestinationCodeICAO: ptr(icao),
		DestinationCodeIATA: ptr(icao[1:]),
		DestinationName:     ptr("Airport " + icao),
		DestinationCity:     ptr("City " + icao),
	}
	return schedule.Flight{
		Record:        rec,
		ScheduledDate: "2026-02-02",
		ScheduledHour: hour,
	}
}

// arrivalFixture builds an analysis row for an arrival from icao.
func arrivalFixture(id, airline, icao string, hour int, delaySec int64) schedule.Flight {
	rec := flightstore.Record{
		FaFlightID:          id,
		Operator:            ptr(airline),
		AircraftType:        ptr("A320"),
		ArrivalDelay:        ptr(delaySec),
		RouteDistance:       ptr(610.0),
		FiledEte:            ptr(int64(6600)),
		TerminalDestination: ptr("2"),
		GateDestination:     ptr("30"),
		ActualRunwayOn:      ptr("21"),
		OriginCode:          ptr(icao),
		OriginCodeICAO:      ptr(icao),
		OriginCodeIATA:      ptr(icao[1:]),
		OriginName:          ptr("Airport " + icao),
		OriginCity:          ptr("City " + icao),
	}
	return schedule.Flight{
		Record:        rec,
		ScheduledDate: "2026-02-02",
		ScheduledHour: hour,
	}
}

// sampleDocument assembles a small but fully populated document.
func sampleDocument() (Document, metrics.DestinationSet) {
	arrivals := []schedule.Flight{
		arrivalFixture("arr-1", "TAP", "EGLL", 8, 300),
		arrivalFixture("arr-2", "TAP", "EGLL", 8, 1200),
		arrivalFixture("arr-3", "TAP", "EHAM", 14, 0),
	}
	departures := []schedule.Flight{
		departureFixture("dep-1", "TAP", "EGLL", 9, 600),
		departureFixture("dep-2", "TAP", "LFPG", 17, 120),
	}
	return Assemble("lppt", arrivals, departures, AssembleConfig{TopRoutes: 5, TopDestinations: 10})
}

// storedArrival builds a parquet-ready arrival record scheduled in at.
func storedArrival(id, originICAO string, at time.Time, delaySec int64) flightstore.Record {
	return flightstore.Record{
		FaFlightID:          id,
		Operator:            ptr("TAP"),
		AircraftType:        ptr("A320"),
		ArrivalDelay:        ptr(delaySec),
		RouteDistance:       ptr(620.0),
		FiledEte:            ptr(int64(7200)),
		TerminalDestination: ptr("1"),
		GateDestination:     ptr("14"),
		ActualRunwayOn:      ptr("03"),
		OriginCode:          ptr(originICAO),
		OriginCodeICAO:      ptr(originICAO),
		OriginCodeIATA:      ptr(originICAO[1:]),
		OriginName:          ptr("Airport " + originICAO),
		OriginCity:          ptr("City " + originICAO),
		ScheduledInUTC:      ptr(at),
	}
}

// storedDeparture builds a parquet-ready departure record scheduled out
// at at.
func storedDeparture(id, destICAO string, at time.Time, delaySec int64) flightstore.Record {
	return flightstore.Record{
		FaFlightID:          id,
		Operator:            ptr("TAP"),
		AircraftType:        ptr("A320"),
		DepartureDelay:      ptr(delaySec),
		RouteDistance:       ptr(480.0),
		FiledEte:            ptr(int64(5400)),
		TerminalOrigin:      ptr("1"),
		GateOrigin:          ptr("22"),
		ActualRunwayOff:     ptr("21"),
		DestinationCode:     ptr(destICAO),
		DestinationCodeICAO: ptr(destICAO),
		DestinationCodeIATA: ptr(destICAO[1:]),
		DestinationName:     ptr("Airport " + destICAO),
		DestinationCity:     ptr("City " + destICAO),
		ScheduledOutUTC:     ptr(at),
	}
}
