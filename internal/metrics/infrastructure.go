package metrics

import (
	"slices"

	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/mapx"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// TerminalDepartures is one terminal's share of departures.
type TerminalDepartures struct {
	Terminal        string  `json:"terminal"`
	NumDepartures   int     `json:"num_departures"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// TerminalArrivals is one terminal's share of arrivals.
type TerminalArrivals struct {
	Terminal        string  `json:"terminal"`
	NumArrivals     int     `json:"num_arrivals"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// GateDepartures is one gate's share of departures.
type GateDepartures struct {
	Gate            string  `json:"gate"`
	NumDepartures   int     `json:"num_departures"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// GateArrivals is one gate's share of arrivals.
type GateArrivals struct {
	Gate            string  `json:"gate"`
	NumArrivals     int     `json:"num_arrivals"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// RunwayDepartures is one runway's share of departures.
type RunwayDepartures struct {
	Runway          string  `json:"runway"`
	NumDepartures   int     `json:"num_departures"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// RunwayArrivals is one runway's share of arrivals.
type RunwayArrivals struct {
	Runway          string  `json:"runway"`
	NumArrivals     int     `json:"num_arrivals"`
	UtilizationPerc float64 `json:"utilization_perc"`
}

// TerminalDepartureDelays is one terminal's departure delay totals.
type TerminalDepartureDelays struct {
	Terminal               string  `json:"terminal"`
	NumDepartures          int     `json:"num_departures"`
	TotalDepartureDelayMin float64 `json:"total_departure_delay_min"`
	AvgDepartureDelayMin   float64 `json:"avg_departure_delay_min"`
}

// TerminalArrivalDelays is one terminal's arrival delay totals.
type TerminalArrivalDelays struct {
	Terminal             string  `json:"terminal"`
	NumArrivals          int     `json:"num_arrivals"`
	TotalArrivalDelayMin float64 `json:"total_arrival_delay_min"`
	AvgArrivalDelayMin   float64 `json:"avg_arrival_delay_min"`
}

// resourceCount is one resource's count and utilization share.
type resourceCount struct {
	name        string
	count       int
	utilization float64
}

// countByResource groups flights by an assigned resource. Rows without an
// assignment are excluded from the count and from the utilization
// denominator, so shares sum to 100 over assigned rows only. Rows come
// back count descending, name ascending.
func countByResource(flights []schedule.Flight, resource func(schedule.Flight) *string) []resourceCount {
	counts := make(map[string]int)
	total := 0

	for _, f := range flights {
		name := resource(f)
		if name == nil {
			continue
		}

		counts[*name]++
		total++
	}

	rows := make([]resourceCount, 0, len(counts))

	for _, name := range mapx.SortedKeys(counts) {
		rows = append(rows, resourceCount{
			name:        name,
			count:       counts[name],
			utilization: stats.Round(float64(counts[name])/float64(total)*100, 2),
		})
	}

	slices.SortStableFunc(rows, func(a, b resourceCount) int {
		return b.count - a.count
	})

	return rows
}

// ComputeDeparturesPerTerminal counts departures by origin terminal.
func ComputeDeparturesPerTerminal(departures []schedule.Flight) []TerminalDepartures {
	counts := countByResource(departures, func(f schedule.Flight) *string { return f.TerminalOrigin })

	rows := make([]TerminalDepartures, len(counts))

	for i, c := range counts {
		rows[i] = TerminalDepartures{Terminal: c.name, NumDepartures: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// ComputeArrivalsPerTerminal counts arrivals by destination terminal.
func ComputeArrivalsPerTerminal(arrivals []schedule.Flight) []TerminalArrivals {
	counts := countByResource(arrivals, func(f schedule.Flight) *string { return f.TerminalDestination })

	rows := make([]TerminalArrivals, len(counts))

	for i, c := range counts {
		rows[i] = TerminalArrivals{Terminal: c.name, NumArrivals: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// ComputeDeparturesPerGate counts departures by origin gate.
func ComputeDeparturesPerGate(departures []schedule.Flight) []GateDepartures {
	counts := countByResource(departures, func(f schedule.Flight) *string { return f.GateOrigin })

	rows := make([]GateDepartures, len(counts))

	for i, c := range counts {
		rows[i] = GateDepartures{Gate: c.name, NumDepartures: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// ComputeArrivalsPerGate counts arrivals by destination gate.
func ComputeArrivalsPerGate(arrivals []schedule.Flight) []GateArrivals {
	counts := countByResource(arrivals, func(f schedule.Flight) *string { return f.GateDestination })

	rows := make([]GateArrivals, len(counts))

	for i, c := range counts {
		rows[i] = GateArrivals{Gate: c.name, NumArrivals: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// ComputeDeparturesPerRunway counts departures by actual takeoff runway.
func ComputeDeparturesPerRunway(departures []schedule.Flight) []RunwayDepartures {
	counts := countByResource(departures, func(f schedule.Flight) *string { return f.ActualRunwayOff })

	rows := make([]RunwayDepartures, len(counts))

	for i, c := range counts {
		rows[i] = RunwayDepartures{Runway: c.name, NumDepartures: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// ComputeArrivalsPerRunway counts arrivals by actual landing runway.
func ComputeArrivalsPerRunway(arrivals []schedule.Flight) []RunwayArrivals {
	counts := countByResource(arrivals, func(f schedule.Flight) *string { return f.ActualRunwayOn })

	rows := make([]RunwayArrivals, len(counts))

	for i, c := range counts {
		rows[i] = RunwayArrivals{Runway: c.name, NumArrivals: c.count, UtilizationPerc: c.utilization}
	}

	return rows
}

// resourceDelay is one resource's delay totals in minutes.
type resourceDelay struct {
	name     string
	count    int
	totalMin float64
	avgMin   float64
}

// delayByResource sums a delay column per resource. The sum skips missing
// delays; the average still spreads it over every assigned row. Rows come
// back in resource name order.
func delayByResource(flights []schedule.Flight, resource func(schedule.Flight) *string, delay func(schedule.Flight) *int64) []resourceDelay {
	type agg struct {
		count    int
		delaySum float64
	}

	groups := make(map[string]*agg)

	for _, f := range flights {
		name := resource(f)
		if name == nil {
			continue
		}

		g := groups[*name]
		if g == nil {
			g = &agg{}
			groups[*name] = g
		}

		g.count++

		if d := delay(f); d != nil {
			g.delaySum += float64(*d)
		}
	}

	rows := make([]resourceDelay, 0, len(groups))

	for _, name := range mapx.SortedKeys(groups) {
		g := groups[name]
		rows = append(rows, resourceDelay{
			name:     name,
			count:    g.count,
			totalMin: stats.Round(g.delaySum/60, 2),
			avgMin:   stats.Round(g.delaySum/float64(g.count)/60, 2),
		})
	}

	return rows
}

// ComputeTerminalDepartureDelays totals departure delays by origin
// terminal, ordered by terminal ascending.
func ComputeTerminalDepartureDelays(departures []schedule.Flight) []TerminalDepartureDelays {
	groups := delayByResource(departures,
		func(f schedule.Flight) *string { return f.TerminalOrigin },
		func(f schedule.Flight) *int64 { return f.DepartureDelay },
	)

	rows := make([]TerminalDepartureDelays, len(groups))

	for i, g := range groups {
		rows[i] = TerminalDepartureDelays{
			Terminal:               g.name,
			NumDepartures:          g.count,
			TotalDepartureDelayMin: g.totalMin,
			AvgDepartureDelayMin:   g.avgMin,
		}
	}

	return rows
}

// ComputeTerminalArrivalDelays totals arrival delays by destination
// terminal, ordered by terminal ascending.
func ComputeTerminalArrivalDelays(arrivals []schedule.Flight) []TerminalArrivalDelays {
	groups := delayByResource(arrivals,
		func(f schedule.Flight) *string { return f.TerminalDestination },
		func(f schedule.Flight) *int64 { return f.ArrivalDelay },
	)

	rows := make([]TerminalArrivalDelays, len(groups))

	for i, g := range groups {
		rows[i] = TerminalArrivalDelays{
			Terminal:             g.name,
			NumArrivals:          g.count,
			TotalArrivalDelayMin: g.totalMin,
			AvgArrivalDelayMin:   g.avgMin,
		}
	}

	return rows
}
