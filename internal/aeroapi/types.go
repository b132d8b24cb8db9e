// Package aeroapi provides a typed client for the FlightAware AeroAPI
// scheduled-flights endpoints.
package aeroapi

import "time"

// Direction selects which side of an airport's schedule to fetch.
type Direction string

const (
	// DirectionArrivals fetches flights arriving at the airport.
	DirectionArrivals Direction = "arrivals"
	// DirectionDepartures fetches flights departing from the airport.
	DirectionDepartures Direction = "departures"
)

// Directions lists both schedule sides in fetch order.
var Directions = []Direction{DirectionArrivals, DirectionDepartures}

// AirportRef is the airport object embedded in a flight row.
// Every field is nullable on the wire.
type AirportRef struct {
	Code     *string `json:"code"`
	CodeICAO *string `json:"code_icao"`
	CodeIATA *string `json:"code_iata"`
	Timezone *string `json:"timezone"`
	Name     *string `json:"name"`
	City     *string `json:"city"`
}

// Flight is a single scheduled-flight row as returned by
// /airports/{code}/flights/{arrivals|departures}. Unknown wire fields are
// ignored; absent values decode to nil.
type Flight struct {
	// Identity.
	FaFlightID        string  `json:"fa_flight_id"`
	Ident             *string `json:"ident"`
	IdentICAO         *string `json:"ident_icao"`
	IdentIATA         *string `json:"ident_iata"`
	Operator          *string `json:"operator"`
	OperatorICAO      *string `json:"operator_icao"`
	OperatorIATA      *string `json:"operator_iata"`
	FlightNumber      *string `json:"flight_number"`
	Registration      *string `json:"registration"`
	AircraftType      *string `json:"aircraft_type"`
	InboundFaFlightID *string `json:"inbound_fa_flight_id"`

	// Status flags.
	Blocked      bool `json:"blocked"`
	Diverted     bool `json:"diverted"`
	Cancelled    bool `json:"cancelled"`
	PositionOnly bool `json:"position_only"`

	// Route.
	Origin        AirportRef `json:"origin"`
	Destination   AirportRef `json:"destination"`
	RouteDistance *float64   `json:"route_distance"`
	FiledEte      *int64     `json:"filed_ete"`

	// Delays in signed seconds.
	DepartureDelay *int64 `json:"departure_delay"`
	ArrivalDelay   *int64 `json:"arrival_delay"`

	// Ground resources.
	TerminalOrigin      *string `json:"terminal_origin"`
	TerminalDestination *string `json:"terminal_destination"`
	GateOrigin          *string `json:"gate_origin"`
	GateDestination     *string `json:"gate_destination"`
	ActualRunwayOff     *string `json:"actual_runway_off"`
	ActualRunwayOn      *string `json:"actual_runway_on"`

	// Schedule timestamps, RFC3339 UTC on the wire.
	ScheduledOut *time.Time `json:"scheduled_out"`
	EstimatedOut *time.Time `json:"estimated_out"`
	ActualOut    *time.Time `json:"actual_out"`
	ScheduledOff *time.Time `json:"scheduled_off"`
	EstimatedOff *time.Time `json:"estimated_off"`
	ActualOff    *time.Time `json:"actual_off"`
	ScheduledOn  *time.Time `json:"scheduled_on"`
	EstimatedOn  *time.Time `json:"estimated_on"`
	ActualOn     *time.Time `json:"actual_on"`
	ScheduledIn  *time.Time `json:"scheduled_in"`
	EstimatedIn  *time.Time `json:"estimated_in"`
	ActualIn     *time.Time `json:"actual_in"`
}

// FlightsResponse is the top-level payload of the scheduled-flights endpoints.
// Only the slice matching the requested direction is populated.
type FlightsResponse struct {
	Arrivals   []Flight `json:"arrivals"`
	Departures []Flight `json:"departures"`
	NumPages   int      `json:"num_pages"`
}

// ForDirection returns the slice matching direction.
func (fr *FlightsResponse) ForDirection(direction Direction) []Flight {
	if direction == DirectionArrivals {
		return fr.Arrivals
	}

	return fr.Departures
}
