package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/skyward-analytics/flightpulse/internal/metrics"
)

// destinationHeader matches the column order of the destination rows.
var destinationHeader = []string{
	"airport_icao",
	"airport_iata",
	"airport_name",
	"city",
	"route_distance_miles",
	"route_distance_km",
	"ete_duration_min",
	"ete_duration_hh_mm",
	"num_departures",
	"num_arrivals",
	"num_flights",
}

// WriteDestinationsCSV writes the full destination table, one line per
// airport. Missing values become empty cells.
func WriteDestinationsCSV(path string, rows []metrics.DestinationRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating destinations CSV: %w", err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(destinationHeader)
	for _, row := range rows {
		if werr != nil {
			break
		}
		werr = w.Write(destinationRecord(row))
	}
	w.Flush()
	if werr == nil {
		werr = w.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("writing destinations CSV: %w", werr)
	}
	return nil
}

func destinationRecord(row metrics.DestinationRow) []string {
	return []string{
		row.AirportICAO,
		row.AirportIATA,
		row.AirportName,
		row.City,
		csvFloat(row.RouteDistanceMiles),
		csvFloat(row.RouteDistanceKm),
		csvFloat(row.EteDurationMin),
		csvString(row.EteDurationHHMM),
		csvInt(row.NumDepartures),
		csvInt(row.NumArrivals),
		strconv.Itoa(row.NumFlights),
	}
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
