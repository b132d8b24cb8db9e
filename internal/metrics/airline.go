package metrics

import (
	"cmp"
	"slices"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/mapx"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// AirlineDepartureKPI is one operator's departure summary.
type AirlineDepartureKPI struct {
	Airline               string  `json:"airline"`
	NumDepartures         int     `json:"num_departures"`
	AvgDepartureDelayMin  float64 `json:"avg_departure_delay_min"`
	AvgRouteDistanceMiles float64 `json:"avg_route_distance_miles"`
	AvgRouteDistanceKm    float64 `json:"avg_route_distance_km"`
}

// AirlineArrivalKPI is one operator's arrival summary.
type AirlineArrivalKPI struct {
	Airline               string  `json:"airline"`
	NumArrivals           int     `json:"num_arrivals"`
	AvgArrivalDelayMin    float64 `json:"avg_arrival_delay_min"`
	AvgRouteDistanceMiles float64 `json:"avg_route_distance_miles"`
	AvgRouteDistanceKm    float64 `json:"avg_route_distance_km"`
}

// DepartureRoute is one (operator, destination) route summary.
type DepartureRoute struct {
	Airline              string  `json:"airline"`
	DestinationAirport   string  `json:"destination_airport"`
	NumDepartures        int     `json:"num_departures"`
	AvgDepartureDelayMin float64 `json:"avg_departure_delay_min"`
	RouteDistanceMiles   float64 `json:"route_distance_miles"`
	RouteDistanceKm      float64 `json:"route_distance_km"`
}

// ArrivalRoute is one (operator, origin) route summary.
type ArrivalRoute struct {
	Airline            string  `json:"airline"`
	OriginAirport      string  `json:"origin_airport"`
	NumArrivals        int     `json:"num_arrivals"`
	AvgArrivalDelayMin float64 `json:"avg_arrival_delay_min"`
	RouteDistanceMiles float64 `json:"route_distance_miles"`
	RouteDistanceKm    float64 `json:"route_distance_km"`
}

// AircraftCount is the distinct-flight count of one (operator, type) pair.
type AircraftCount struct {
	Airline      string `json:"airline"`
	AircraftType string `json:"aircraft_type"`
	NumFlights   int    `json:"num_flights"`
}

// AirlineNetDelay is the median net delay of one operator's linked
// inbound-outbound pairs.
type AirlineNetDelay struct {
	Operator                string  `json:"operator"`
	MedianNetFlightDelayMin float64 `json:"median_net_flight_delay_min"`
	NumFlights              int     `json:"num_flights"`
}

// airlineAgg accumulates one group's rows. The delay sum skips missing
// delays but the count still spreads it over every row; distances average
// only present values.
type airlineAgg struct {
	count    int
	delaySum float64
	distSum  float64
	distN    int
}

func (a *airlineAgg) add(delay *int64, distance *float64) {
	a.count++

	if delay != nil {
		a.delaySum += float64(*delay)
	}

	if distance != nil {
		a.distSum += *distance
		a.distN++
	}
}

func (a *airlineAgg) avgDelayMin() float64 {
	return stats.Round(a.delaySum/float64(a.count)/60, 2)
}

// meanDistance is the raw (unrounded) mean over present distances, zero
// when the group has none.
func (a *airlineAgg) meanDistance() float64 {
	if a.distN == 0 {
		return 0
	}

	return a.distSum / float64(a.distN)
}

func aggregateByAirline(flights []schedule.Flight, direction aeroapi.Direction) map[string]*airlineAgg {
	groups := make(map[string]*airlineAgg)

	for _, f := range flights {
		if f.Operator == nil || *f.Operator == "" {
			continue
		}

		g := groups[*f.Operator]
		if g == nil {
			g = &airlineAgg{}
			groups[*f.Operator] = g
		}

		g.add(delaySeconds(f, direction), f.RouteDistance)
	}

	return groups
}

// ComputeDepartureAirlineKPIs summarizes departures per operator, sorted
// by departure count descending, airline ascending.
func ComputeDepartureAirlineKPIs(departures []schedule.Flight) []AirlineDepartureKPI {
	groups := aggregateByAirline(departures, aeroapi.DirectionDepartures)

	rows := make([]AirlineDepartureKPI, 0, len(groups))

	for _, airline := range mapx.SortedKeys(groups) {
		g := groups[airline]
		rows = append(rows, AirlineDepartureKPI{
			Airline:               airline,
			NumDepartures:         g.count,
			AvgDepartureDelayMin:  g.avgDelayMin(),
			AvgRouteDistanceMiles: stats.Round(g.meanDistance(), 2),
			AvgRouteDistanceKm:    stats.Round(g.meanDistance()*milesToKm, 2),
		})
	}

	slices.SortStableFunc(rows, func(a, b AirlineDepartureKPI) int {
		return b.NumDepartures - a.NumDepartures
	})

	return rows
}

// ComputeArrivalAirlineKPIs summarizes arrivals per operator, sorted by
// arrival count descending, airline ascending.
func ComputeArrivalAirlineKPIs(arrivals []schedule.Flight) []AirlineArrivalKPI {
	groups := aggregateByAirline(arrivals, aeroapi.DirectionArrivals)

	rows := make([]AirlineArrivalKPI, 0, len(groups))

	for _, airline := range mapx.SortedKeys(groups) {
		g := groups[airline]
		rows = append(rows, AirlineArrivalKPI{
			Airline:               airline,
			NumArrivals:           g.count,
			AvgArrivalDelayMin:    g.avgDelayMin(),
			AvgRouteDistanceMiles: stats.Round(g.meanDistance(), 2),
			AvgRouteDistanceKm:    stats.Round(g.meanDistance()*milesToKm, 2),
		})
	}

	slices.SortStableFunc(rows, func(a, b AirlineArrivalKPI) int {
		return b.NumArrivals - a.NumArrivals
	})

	return rows
}

type routeKey struct {
	airline string
	airport string
}

func aggregateByRoute(flights []schedule.Flight, direction aeroapi.Direction, counterpart func(schedule.Flight) *string) map[routeKey]*airlineAgg {
	groups := make(map[routeKey]*airlineAgg)

	for _, f := range flights {
		code := counterpart(f)
		if f.Operator == nil || *f.Operator == "" || code == nil || *code == "" {
			continue
		}

		key := routeKey{airline: *f.Operator, airport: *code}

		g := groups[key]
		if g == nil {
			g = &airlineAgg{}
			groups[key] = g
		}

		g.add(delaySeconds(f, direction), f.RouteDistance)
	}

	return groups
}

func sortedRouteKeys(groups map[routeKey]*airlineAgg) []routeKey {
	keys := make([]routeKey, 0, len(groups))

	for key := range groups {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b routeKey) int {
		if c := cmp.Compare(a.airline, b.airline); c != 0 {
			return c
		}

		return cmp.Compare(a.airport, b.airport)
	})

	return keys
}

// ComputeDepartureRoutes summarizes departures per (operator, destination),
// sorted by departure count descending, then airline and airport ascending.
func ComputeDepartureRoutes(departures []schedule.Flight) []DepartureRoute {
	groups := aggregateByRoute(departures, aeroapi.DirectionDepartures, func(f schedule.Flight) *string {
		return f.DestinationCode
	})

	rows := make([]DepartureRoute, 0, len(groups))

	for _, key := range sortedRouteKeys(groups) {
		g := groups[key]
		rows = append(rows, DepartureRoute{
			Airline:              key.airline,
			DestinationAirport:   key.airport,
			NumDepartures:        g.count,
			AvgDepartureDelayMin: g.avgDelayMin(),
			RouteDistanceMiles:   stats.Round(g.meanDistance(), 2),
			RouteDistanceKm:      stats.Round(g.meanDistance()*milesToKm, 2),
		})
	}

	slices.SortStableFunc(rows, func(a, b DepartureRoute) int {
		return b.NumDepartures - a.NumDepartures
	})

	return rows
}

// ComputeArrivalRoutes summarizes arrivals per (operator, origin), sorted
// by arrival count descending, then airline and airport ascending. Grouping
// uses the origin airport: the destination of every arrival is the subject
// airport itself and would collapse the table to one row per operator.
func ComputeArrivalRoutes(arrivals []schedule.Flight) []ArrivalRoute {
	groups := aggregateByRoute(arrivals, aeroapi.DirectionArrivals, func(f schedule.Flight) *string {
		return f.OriginCode
	})

	rows := make([]ArrivalRoute, 0, len(groups))

	for _, key := range sortedRouteKeys(groups) {
		g := groups[key]
		rows = append(rows, ArrivalRoute{
			Airline:            key.airline,
			OriginAirport:      key.airport,
			NumArrivals:        g.count,
			AvgArrivalDelayMin: g.avgDelayMin(),
			RouteDistanceMiles: stats.Round(g.meanDistance(), 2),
			RouteDistanceKm:    stats.Round(g.meanDistance()*milesToKm, 2),
		})
	}

	slices.SortStableFunc(rows, func(a, b ArrivalRoute) int {
		return b.NumArrivals - a.NumArrivals
	})

	return rows
}

// ComputeAircraftCounts counts distinct flight ids per (operator,
// aircraft type) over both directions combined, sorted by count
// descending, then airline and type ascending.
func ComputeAircraftCounts(flights []schedule.Flight) []AircraftCount {
	type aircraftKey struct {
		airline string
		model   string
	}

	groups := make(map[aircraftKey]map[string]struct{})

	for _, f := range flights {
		if f.Operator == nil || *f.Operator == "" || f.AircraftType == nil || *f.AircraftType == "" {
			continue
		}

		key := aircraftKey{airline: *f.Operator, model: *f.AircraftType}

		ids := groups[key]
		if ids == nil {
			ids = make(map[string]struct{})
			groups[key] = ids
		}

		ids[f.FaFlightID] = struct{}{}
	}

	keys := make([]aircraftKey, 0, len(groups))

	for key := range groups {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b aircraftKey) int {
		if c := cmp.Compare(a.airline, b.airline); c != 0 {
			return c
		}

		return cmp.Compare(a.model, b.model)
	})

	rows := make([]AircraftCount, 0, len(keys))

	for _, key := range keys {
		rows = append(rows, AircraftCount{
			Airline:      key.airline,
			AircraftType: key.model,
			NumFlights:   len(groups[key]),
		})
	}

	slices.SortStableFunc(rows, func(a, b AircraftCount) int {
		return b.NumFlights - a.NumFlights
	})

	return rows
}

// ComputeNetDelays matches every departure to its inbound arrival on
// arrival.fa_flight_id == departure.inbound_fa_flight_id and reports, per
// outbound operator, the median of (departure_delay - arrival_delay) in
// minutes. num_flights counts all matched pairs; the median covers only
// pairs with both delays present. Sorted by median descending, operator
// ascending.
func ComputeNetDelays(arrivals, departures []schedule.Flight) []AirlineNetDelay {
	type inbound struct {
		delay *int64
	}

	arrivalsByID := make(map[string]inbound, len(arrivals))

	for _, a := range arrivals {
		arrivalsByID[a.FaFlightID] = inbound{delay: a.ArrivalDelay}
	}

	type netAgg struct {
		pairs   int
		netMins []float64
	}

	groups := make(map[string]*netAgg)

	for _, d := range departures {
		if d.InboundFaFlightID == nil || d.Operator == nil || *d.Operator == "" {
			continue
		}

		in, ok := arrivalsByID[*d.InboundFaFlightID]
		if !ok {
			continue
		}

		g := groups[*d.Operator]
		if g == nil {
			g = &netAgg{}
			groups[*d.Operator] = g
		}

		g.pairs++

		if d.DepartureDelay != nil && in.delay != nil {
			net := float64(*d.DepartureDelay-*in.delay) / 60
			g.netMins = append(g.netMins, stats.Round(net, 2))
		}
	}

	rows := make([]AirlineNetDelay, 0, len(groups))

	for _, operator := range mapx.SortedKeys(groups) {
		g := groups[operator]
		rows = append(rows, AirlineNetDelay{
			Operator:                operator,
			MedianNetFlightDelayMin: stats.Round(stats.Median(g.netMins), 2),
			NumFlights:              g.pairs,
		})
	}

	slices.SortStableFunc(rows, func(a, b AirlineNetDelay) int {
		return cmp.Compare(b.MedianNetFlightDelayMin, a.MedianNetFlightDelayMin)
	})

	return rows
}
