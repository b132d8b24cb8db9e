// Package report assembles the per-airport metrics document and renders
// every artifact derived from it: the metrics JSON, the destinations CSV,
// the hourly distribution chart, the HTML dashboard, the narrative
// Markdown, and the PDF report.
package report

import (
	"strings"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/metrics"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

// Document is the assembled metrics tree written to <airport>_metrics.json
// and fed to the narrative model.
type Document struct {
	Airport        string                `json:"airport"`
	General        GeneralSection        `json:"general_metrics"`
	Infrastructure InfrastructureSection `json:"infrastructure_metrics"`
	Airline        AirlineSection        `json:"airline_metrics"`
	Destination    DestinationSection    `json:"destination_metrics"`
}

// GeneralSection carries the completion and delay KPIs plus both hourly
// views.
type GeneralSection struct {
	Arrivals                metrics.GeneralMetrics `json:"arrivals"`
	Departures              metrics.GeneralMetrics `json:"departures"`
	ArrivalDelays           metrics.DelayMetrics   `json:"arrival_delays"`
	DepartureDelays         metrics.DelayMetrics   `json:"departure_delays"`
	FlightsPerHour          []metrics.HourlySlot   `json:"flights_per_hour"`
	FlightsPerHourWithPeaks []metrics.PeakSlot     `json:"flights_per_hour_with_peaks"`
}

// TerminalSection groups the four terminal tables.
type TerminalSection struct {
	DeparturesPerTerminal       []metrics.TerminalDepartures      `json:"departures_per_terminal"`
	DeparturesDelaysPerTerminal []metrics.TerminalDepartureDelays `json:"departures_delays_per_terminal"`
	ArrivalsPerTerminal         []metrics.TerminalArrivals        `json:"arrivals_per_terminal"`
	ArrivalsDelaysPerTerminal   []metrics.TerminalArrivalDelays   `json:"arrivals_delays_per_terminal"`
}

// GateSection carries the truncated gate tables.
type GateSection struct {
	DeparturesPerGate []metrics.GateDepartures `json:"departures_per_gate"`
	ArrivalsPerGate   []metrics.GateArrivals   `json:"arrivals_per_gate"`
}

// RunwaySection carries the runway tables.
type RunwaySection struct {
	DeparturesPerRunway []metrics.RunwayDepartures `json:"departures_per_runway"`
	ArrivalsPerRunway   []metrics.RunwayArrivals   `json:"arrivals_per_runway"`
}

// InfrastructureSection groups terminals, gates and runways.
type InfrastructureSection struct {
	Terminals TerminalSection `json:"terminals"`
	Gates     GateSection     `json:"gates"`
	Runways   RunwaySection   `json:"runways"`
}

// AirlineSection carries the truncated airline tables; net delays stay
// complete.
type AirlineSection struct {
	ArrivalsKPIs    []metrics.AirlineArrivalKPI   `json:"arrivals_kpis"`
	ArrivalRoutes   []metrics.ArrivalRoute        `json:"arrival_routes"`
	DeparturesKPIs  []metrics.AirlineDepartureKPI `json:"departures_kpis"`
	DepartureRoutes []metrics.DepartureRoute      `json:"departure_routes"`
	Aircrafts       []metrics.AircraftCount       `json:"aircrafts"`
	NetDelays       []metrics.AirlineNetDelay     `json:"net_delays"`
}

// DestinationSection carries the destination counts and the reconciled
// top rows.
type DestinationSection struct {
	TotalDestinations     int                      `json:"total_destinations"`
	DepartureDestinations int                      `json:"departure_destinations"`
	ArrivalDestinations   int                      `json:"arrival_destinations"`
	Top10Destinations     []metrics.DestinationRow `json:"top_10_destinations"`
	ShortestRoute         *metrics.DestinationRow  `json:"shortest_route"`
	LongestRoute          *metrics.DestinationRow  `json:"longest_route"`
}

// Default truncation bounds for the document tables.
const (
	DefaultTopRoutes       = 5
	DefaultTopDestinations = 10
)

// AssembleConfig bounds the truncated tables.
type AssembleConfig struct {
	// TopRoutes truncates the airline tables and the gate tables.
	TopRoutes int
	// TopDestinations truncates top_10_destinations.
	TopDestinations int
}

// withDefaults fills zero bounds with the package defaults.
func (c AssembleConfig) withDefaults() AssembleConfig {
	if c.TopRoutes <= 0 {
		c.TopRoutes = DefaultTopRoutes
	}

	if c.TopDestinations <= 0 {
		c.TopDestinations = DefaultTopDestinations
	}

	return c
}

// Assemble computes every aggregate and builds the document. The full
// destination set comes back alongside it for the CSV artifact, which is
// never truncated.
func Assemble(airport string, arrivals, departures []schedule.Flight, cfg AssembleConfig) (Document, metrics.DestinationSet) {
	cfg = cfg.withDefaults()

	hourly := metrics.ComputeHourly(arrivals, departures)
	destinations := metrics.ReconcileDestinations(departures, arrivals)

	combined := make([]schedule.Flight, 0, len(departures)+len(arrivals))
	combined = append(combined, departures...)
	combined = append(combined, arrivals...)

	doc := Document{
		Airport: strings.ToUpper(airport),
		General: GeneralSection{
			Arrivals:                metrics.ComputeGeneral(arrivals),
			Departures:              metrics.ComputeGeneral(departures),
			ArrivalDelays:           metrics.ComputeDelays(arrivals, aeroapi.DirectionArrivals),
			DepartureDelays:         metrics.ComputeDelays(departures, aeroapi.DirectionDepartures),
			FlightsPerHour:          hourly,
			FlightsPerHourWithPeaks: metrics.ComputePeaks(hourly),
		},
		Infrastructure: InfrastructureSection{
			Terminals: TerminalSection{
				DeparturesPerTerminal:       metrics.ComputeDeparturesPerTerminal(departures),
				DeparturesDelaysPerTerminal: metrics.ComputeTerminalDepartureDelays(departures),
				ArrivalsPerTerminal:         metrics.ComputeArrivalsPerTerminal(arrivals),
				ArrivalsDelaysPerTerminal:   metrics.ComputeTerminalArrivalDelays(arrivals),
			},
			Gates: GateSection{
				DeparturesPerGate: topN(metrics.ComputeDeparturesPerGate(departures), cfg.TopRoutes),
				ArrivalsPerGate:   topN(metrics.ComputeArrivalsPerGate(arrivals), cfg.TopRoutes),
			},
			Runways: RunwaySection{
				DeparturesPerRunway: metrics.ComputeDeparturesPerRunway(departures),
				ArrivalsPerRunway:   metrics.ComputeArrivalsPerRunway(arrivals),
			},
		},
		Airline: AirlineSection{
			ArrivalsKPIs:    topN(metrics.ComputeArrivalAirlineKPIs(arrivals), cfg.TopRoutes),
			ArrivalRoutes:   topN(metrics.ComputeArrivalRoutes(arrivals), cfg.TopRoutes),
			DeparturesKPIs:  topN(metrics.ComputeDepartureAirlineKPIs(departures), cfg.TopRoutes),
			DepartureRoutes: topN(metrics.ComputeDepartureRoutes(departures), cfg.TopRoutes),
			Aircrafts:       topN(metrics.ComputeAircraftCounts(combined), cfg.TopRoutes),
			NetDelays:       metrics.ComputeNetDelays(arrivals, departures),
		},
		Destination: DestinationSection{
			TotalDestinations:     len(destinations.Rows),
			DepartureDestinations: destinations.DepartureCount,
			ArrivalDestinations:   destinations.ArrivalCount,
			Top10Destinations:     destinations.Top(cfg.TopDestinations),
			ShortestRoute:         destinations.ShortestRoute(),
			LongestRoute:          destinations.LongestRoute(),
		},
	}

	return doc, destinations
}

func topN[T any](rows []T, n int) []T {
	return rows[:min(n, len(rows))]
}
