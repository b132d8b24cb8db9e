// Package flightstore persists flattened flight rows as parquet files laid
// out per airport, plus an optional lz4 archive of the raw API payloads.
package flightstore

import (
	"time"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
)

// Record is one stored flight row. The wire record is flattened
// (origin.code becomes origin_code) and each schedule timestamp is stored
// twice: the UTC instant and the airport-local wall time (out/off localized
// to the origin timezone, on/in to the destination timezone).
type Record struct {
	// Identity.
	FaFlightID        string  `parquet:"fa_flight_id"`
	Ident             *string `parquet:"ident,optional"`
	IdentICAO         *string `parquet:"ident_icao,optional"`
	IdentIATA         *string `parquet:"ident_iata,optional"`
	Operator          *string `parquet:"operator,optional"`
	OperatorICAO      *string `parquet:"operator_icao,optional"`
	OperatorIATA      *string `parquet:"operator_iata,optional"`
	FlightNumber      *string `parquet:"flight_number,optional"`
	Registration      *string `parquet:"registration,optional"`
	AircraftType      *string `parquet:"aircraft_type,optional"`
	InboundFaFlightID *string `parquet:"inbound_fa_flight_id,optional"`

	// Status flags.
	Blocked      bool `parquet:"blocked"`
	Diverted     bool `parquet:"diverted"`
	Cancelled    bool `parquet:"cancelled"`
	PositionOnly bool `parquet:"position_only"`

	// Route endpoints.
	OriginCode          *string `parquet:"origin_code,optional"`
	OriginCodeICAO      *string `parquet:"origin_code_icao,optional"`
	OriginCodeIATA      *string `parquet:"origin_code_iata,optional"`
	OriginTimezone      *string `parquet:"origin_timezone,optional"`
	OriginName          *string `parquet:"origin_name,optional"`
	OriginCity          *string `parquet:"origin_city,optional"`
	DestinationCode     *string `parquet:"destination_code,optional"`
	DestinationCodeICAO *string `parquet:"destination_code_icao,optional"`
	DestinationCodeIATA *string `parquet:"destination_code_iata,optional"`
	DestinationTimezone *string `parquet:"destination_timezone,optional"`
	DestinationName     *string `parquet:"destination_name,optional"`
	DestinationCity     *string `parquet:"destination_city,optional"`

	// Route shape.
	RouteDistance *float64 `parquet:"route_distance,optional"`
	FiledEte      *int64   `parquet:"filed_ete,optional"`

	// Delays in signed seconds.
	DepartureDelay *int64 `parquet:"departure_delay,optional"`
	ArrivalDelay   *int64 `parquet:"arrival_delay,optional"`

	// Ground resources.
	TerminalOrigin      *string `parquet:"terminal_origin,optional"`
	TerminalDestination *string `parquet:"terminal_destination,optional"`
	GateOrigin          *string `parquet:"gate_origin,optional"`
	GateDestination     *string `parquet:"gate_destination,optional"`
	ActualRunwayOff     *string `parquet:"actual_runway_off,optional"`
	ActualRunwayOn      *string `parquet:"actual_runway_on,optional"`

	// Schedule timestamps.
	ScheduledOutUTC   *time.Time `parquet:"scheduled_out_utc,optional,timestamp"`
	ScheduledOutLocal *time.Time `parquet:"scheduled_out_local,optional,timestamp"`
	EstimatedOutUTC   *time.Time `parquet:"estimated_out_utc,optional,timestamp"`
	EstimatedOutLocal *time.Time `parquet:"estimated_out_local,optional,timestamp"`
	ActualOutUTC      *time.Time `parquet:"actual_out_utc,optional,timestamp"`
	ActualOutLocal    *time.Time `parquet:"actual_out_local,optional,timestamp"`
	ScheduledOffUTC   *time.Time `parquet:"scheduled_off_utc,optional,timestamp"`
	ScheduledOffLocal *time.Time `parquet:"scheduled_off_local,optional,timestamp"`
	EstimatedOffUTC   *time.Time `parquet:"estimated_off_utc,optional,timestamp"`
	EstimatedOffLocal *time.Time `parquet:"estimated_off_local,optional,timestamp"`
	ActualOffUTC      *time.Time `parquet:"actual_off_utc,optional,timestamp"`
	ActualOffLocal    *time.Time `parquet:"actual_off_local,optional,timestamp"`
	ScheduledOnUTC    *time.Time `parquet:"scheduled_on_utc,optional,timestamp"`
	ScheduledOnLocal  *time.Time `parquet:"scheduled_on_local,optional,timestamp"`
	EstimatedOnUTC    *time.Time `parquet:"estimated_on_utc,optional,timestamp"`
	EstimatedOnLocal  *time.Time `parquet:"estimated_on_local,optional,timestamp"`
	ActualOnUTC       *time.Time `parquet:"actual_on_utc,optional,timestamp"`
	ActualOnLocal     *time.Time `parquet:"actual_on_local,optional,timestamp"`
	ScheduledInUTC    *time.Time `parquet:"scheduled_in_utc,optional,timestamp"`
	ScheduledInLocal  *time.Time `parquet:"scheduled_in_local,optional,timestamp"`
	EstimatedInUTC    *time.Time `parquet:"estimated_in_utc,optional,timestamp"`
	EstimatedInLocal  *time.Time `parquet:"estimated_in_local,optional,timestamp"`
	ActualInUTC       *time.Time `parquet:"actual_in_utc,optional,timestamp"`
	ActualInLocal     *time.Time `parquet:"actual_in_local,optional,timestamp"`
}

// FromWire flattens a wire flight into a stored record.
func FromWire(f aeroapi.Flight) Record {
	originTZ := f.Origin.Timezone
	destTZ := f.Destination.Timezone

	return Record{
		FaFlightID:        f.FaFlightID,
		Ident:             f.Ident,
		IdentICAO:         f.IdentICAO,
		IdentIATA:         f.IdentIATA,
		Operator:          f.Operator,
		OperatorICAO:      f.OperatorICAO,
		OperatorIATA:      f.OperatorIATA,
		FlightNumber:      f.FlightNumber,
		Registration:      f.Registration,
		AircraftType:      f.AircraftType,
		InboundFaFlightID: f.InboundFaFlightID,

		Blocked:      f.Blocked,
		Diverted:     f.Diverted,
		Cancelled:    f.Cancelled,
		PositionOnly: f.PositionOnly,

		OriginCode:          f.Origin.Code,
		OriginCodeICAO:      f.Origin.CodeICAO,
		OriginCodeIATA:      f.Origin.CodeIATA,
		OriginTimezone:      f.Origin.Timezone,
		OriginName:          f.Origin.Name,
		OriginCity:          f.Origin.City,
		DestinationCode:     f.Destination.Code,
		DestinationCodeICAO: f.Destination.CodeICAO,
		DestinationCodeIATA: f.Destination.CodeIATA,
		DestinationTimezone: f.Destination.Timezone,
		DestinationName:     f.Destination.Name,
		DestinationCity:     f.Destination.City,

		RouteDistance: f.RouteDistance,
		FiledEte:      f.FiledEte,

		DepartureDelay: f.DepartureDelay,
		ArrivalDelay:   f.ArrivalDelay,

		TerminalOrigin:      f.TerminalOrigin,
		TerminalDestination: f.TerminalDestination,
		GateOrigin:          f.GateOrigin,
		GateDestination:     f.GateDestination,
		ActualRunwayOff:     f.ActualRunwayOff,
		ActualRunwayOn:      f.ActualRunwayOn,

		ScheduledOutUTC:   toUTC(f.ScheduledOut),
		ScheduledOutLocal: toLocalWall(f.ScheduledOut, originTZ),
		EstimatedOutUTC:   toUTC(f.EstimatedOut),
		EstimatedOutLocal: toLocalWall(f.EstimatedOut, originTZ),
		ActualOutUTC:      toUTC(f.ActualOut),
		ActualOutLocal:    toLocalWall(f.ActualOut, originTZ),
		ScheduledOffUTC:   toUTC(f.ScheduledOff),
		ScheduledOffLocal: toLocalWall(f.ScheduledOff, originTZ),
		EstimatedOffUTC:   toUTC(f.EstimatedOff),
		EstimatedOffLocal: toLocalWall(f.EstimatedOff, originTZ),
		ActualOffUTC:      toUTC(f.ActualOff),
		ActualOffLocal:    toLocalWall(f.ActualOff, originTZ),
		ScheduledOnUTC:    toUTC(f.ScheduledOn),
		ScheduledOnLocal:  toLocalWall(f.ScheduledOn, destTZ),
		EstimatedOnUTC:    toUTC(f.EstimatedOn),
		EstimatedOnLocal:  toLocalWall(f.EstimatedOn, destTZ),
		ActualOnUTC:       toUTC(f.ActualOn),
		ActualOnLocal:     toLocalWall(f.ActualOn, destTZ),
		ScheduledInUTC:    toUTC(f.ScheduledIn),
		ScheduledInLocal:  toLocalWall(f.ScheduledIn, destTZ),
		EstimatedInUTC:    toUTC(f.EstimatedIn),
		EstimatedInLocal:  toLocalWall(f.EstimatedIn, destTZ),
		ActualInUTC:       toUTC(f.ActualIn),
		ActualInLocal:     toLocalWall(f.ActualIn, destTZ),
	}
}

// RecordsFromWire flattens a batch of wire flights.
func RecordsFromWire(flights []aeroapi.Flight) []Record {
	records := make([]Record, len(flights))

	for i, f := range flights {
		records[i] = FromWire(f)
	}

	return records
}

func toUTC(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}

	utc := ts.UTC()

	return &utc
}

// toLocalWall converts ts to the wall-clock time in tz, re-labeled as UTC so
// the wall fields survive the epoch-based parquet timestamp encoding.
// A nil or unloadable zone yields nil; the row is kept.
func toLocalWall(ts *time.Time, tz *string) *time.Time {
	if ts == nil || tz == nil {
		return nil
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return nil
	}

	local := ts.In(loc)
	wall := time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.UTC,
	)

	return &wall
}
