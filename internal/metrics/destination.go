package metrics

import (
	"slices"

	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/mapx"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// DestinationRow is one reconciled counterpart airport. Fields that only
// one direction can supply stay null when that direction never saw the
// airport; num_flights treats a missing directional count as zero.
type DestinationRow struct {
	AirportICAO        string   `json:"airport_icao"`
	AirportIATA        string   `json:"airport_iata"`
	AirportName        string   `json:"airport_name"`
	City               string   `json:"city"`
	RouteDistanceMiles *float64 `json:"route_distance_miles"`
	RouteDistanceKm    *float64 `json:"route_distance_km"`
	EteDurationMin     *float64 `json:"ete_duration_min"`
	EteDurationHHMM    *string  `json:"ete_duration_hh_mm"`
	NumDepartures      *int     `json:"num_departures"`
	NumArrivals        *int     `json:"num_arrivals"`
	NumFlights         int      `json:"num_flights"`
}

// DestinationSet is the reconciled destination table plus the directional
// group counts it was built from.
type DestinationSet struct {
	Rows           []DestinationRow
	DepartureCount int
	ArrivalCount   int
}

// Top returns the first n rows of the table.
func (s DestinationSet) Top(n int) []DestinationRow {
	return s.Rows[:min(n, len(s.Rows))]
}

// ShortestRoute returns the first row with the smallest distance. Rows
// without a distance are skipped; the strict comparison makes the first
// row win ties. All distances null yields nil.
func (s DestinationSet) ShortestRoute() *DestinationRow {
	var best *DestinationRow

	for i := range s.Rows {
		row := &s.Rows[i]
		if row.RouteDistanceMiles == nil {
			continue
		}

		if best == nil || *row.RouteDistanceMiles < *best.RouteDistanceMiles {
			best = row
		}
	}

	if best == nil {
		return nil
	}

	found := *best

	return &found
}

// LongestRoute returns the first row with the largest distance, with the
// same null and tie handling as ShortestRoute.
func (s DestinationSet) LongestRoute() *DestinationRow {
	var best *DestinationRow

	for i := range s.Rows {
		row := &s.Rows[i]
		if row.RouteDistanceMiles == nil {
			continue
		}

		if best == nil || *row.RouteDistanceMiles > *best.RouteDistanceMiles {
			best = row
		}
	}

	if best == nil {
		return nil
	}

	found := *best

	return &found
}

// destinationGroup accumulates one counterpart airport on one side.
type destinationGroup struct {
	iata    string
	name    string
	city    string
	count   int
	distSum float64
	distN   int
	eteSum  float64
	eteN    int
}

// distMean is the raw mean over present distances, nil when none.
func (g *destinationGroup) distMean() *float64 {
	if g.distN == 0 {
		return nil
	}

	mean := g.distSum / float64(g.distN)

	return &mean
}

// eteMin is the mean filed enroute time in minutes, rounded to 2 decimals,
// nil when no row carried one.
func (g *destinationGroup) eteMin() *float64 {
	if g.eteN == 0 {
		return nil
	}

	mean := stats.Round(g.eteSum/float64(g.eteN)/60, 2)

	return &mean
}

// summarizeDestinations groups one direction by counterpart airport. Rows
// missing any of ICAO, IATA, name, or city are skipped entirely.
func summarizeDestinations(flights []schedule.Flight, airport func(schedule.Flight) (icao, iata, name, city *string)) map[string]*destinationGroup {
	groups := make(map[string]*destinationGroup)

	for _, f := range flights {
		icao, iata, name, city := airport(f)
		if icao == nil || iata == nil || name == nil || city == nil {
			continue
		}

		g := groups[*icao]
		if g == nil {
			g = &destinationGroup{iata: *iata, name: *name, city: *city}
			groups[*icao] = g
		}

		g.count++

		if f.RouteDistance != nil {
			g.distSum += *f.RouteDistance
			g.distN++
		}

		if f.FiledEte != nil {
			g.eteSum += float64(*f.FiledEte)
			g.eteN++
		}
	}

	return groups
}

// ReconcileDestinations merges the departure-destination and arrival-origin
// summaries into one table keyed by ICAO code. Descriptive fields and the
// distance coalesce departure-first; the enroute duration averages the two
// directional values when both exist and otherwise takes the present one.
// Rows sort by num_flights descending, ICAO ascending.
func ReconcileDestinations(departures, arrivals []schedule.Flight) DestinationSet {
	depGroups := summarizeDestinations(departures, func(f schedule.Flight) (*string, *string, *string, *string) {
		return f.DestinationCodeICAO, f.DestinationCodeIATA, f.DestinationName, f.DestinationCity
	})
	arrGroups := summarizeDestinations(arrivals, func(f schedule.Flight) (*string, *string, *string, *string) {
		return f.OriginCodeICAO, f.OriginCodeIATA, f.OriginName, f.OriginCity
	})

	union := make(map[string]struct{}, len(depGroups)+len(arrGroups))

	for icao := range depGroups {
		union[icao] = struct{}{}
	}

	for icao := range arrGroups {
		union[icao] = struct{}{}
	}

	rows := make([]DestinationRow, 0, len(union))

	for _, icao := range mapx.SortedKeys(union) {
		dep := depGroups[icao]
		arr := arrGroups[icao]

		row := DestinationRow{AirportICAO: icao}

		if dep != nil {
			row.AirportIATA = dep.iata
			row.AirportName = dep.name
			row.City = dep.city
			count := dep.count
			row.NumDepartures = &count
			row.NumFlights += count
		}

		if arr != nil {
			if dep == nil {
				row.AirportIATA = arr.iata
				row.AirportName = arr.name
				row.City = arr.city
			}

			count := arr.count
			row.NumArrivals = &count
			row.NumFlights += count
		}

		if dist := coalesceDistance(dep, arr); dist != nil {
			miles := stats.Round(*dist, 2)
			km := stats.Round(miles*milesToKm, 2)
			row.RouteDistanceMiles = &miles
			row.RouteDistanceKm = &km
		}

		if ete := coalesceEte(dep, arr); ete != nil {
			hhmm := minutesToHHMM(*ete)
			row.EteDurationMin = ete
			row.EteDurationHHMM = &hhmm
		}

		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b DestinationRow) int {
		return b.NumFlights - a.NumFlights
	})

	return DestinationSet{
		Rows:           rows,
		DepartureCount: len(depGroups),
		ArrivalCount:   len(arrGroups),
	}
}

// coalesceDistance prefers the departure-side mean and falls back to the
// arrival side. Both absent yields nil, never zero.
func coalesceDistance(dep, arr *destinationGroup) *float64 {
	if dep != nil {
		if mean := dep.distMean(); mean != nil {
			return mean
		}
	}

	if arr != nil {
		return arr.distMean()
	}

	return nil
}

// coalesceEte averages the two directional minute values when both exist
// and otherwise returns the present one. Both absent yields nil; a missing
// side is never treated as zero.
func coalesceEte(dep, arr *destinationGroup) *float64 {
	var depMin, arrMin *float64

	if dep != nil {
		depMin = dep.eteMin()
	}

	if arr != nil {
		arrMin = arr.eteMin()
	}

	switch {
	case depMin != nil && arrMin != nil:
		mean := stats.Round((*depMin+*arrMin)/2, 2)

		return &mean
	case depMin != nil:
		return depMin
	default:
		return arrMin
	}
}
