// Package metrics computes the descriptive aggregates of one airport day:
// completion and delay KPIs, hourly traffic with peak detection, airline
// and infrastructure breakdowns, and the reconciled destination table.
//
// All aggregators are pure functions over normalized flights. Percentages
// and minute values are rounded to 2 decimals, half away from zero. Tables
// sort by count descending with the group key ascending as tie-break.
package metrics

import (
	"fmt"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/mapx"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// milesToKm converts statute miles to kilometers.
const milesToKm = 1.609344

// distinctFlights counts distinct flight ids in a table. Row counts can
// exceed this when window overlap survives upstream deduplication.
func distinctFlights(flights []schedule.Flight) int {
	ids := make([]string, 0, len(flights))

	for _, f := range flights {
		ids = append(ids, f.FaFlightID)
	}

	return len(mapx.Unique(ids))
}

// delaySeconds returns the direction's own delay column: arrival_delay for
// arrivals, departure_delay for departures.
func delaySeconds(f schedule.Flight, direction aeroapi.Direction) *int64 {
	if direction == aeroapi.DirectionArrivals {
		return f.ArrivalDelay
	}

	return f.DepartureDelay
}

// minutesToHHMM renders decimal minutes as "HH:MM". The minute remainder
// rounds half away from zero and carries into the hour at 60.
func minutesToHHMM(minutes float64) string {
	hours := int(minutes / 60)
	rem := int(stats.Round(minutes-float64(hours)*60, 0))

	if rem == 60 {
		hours++
		rem = 0
	}

	return fmt.Sprintf("%02d:%02d", hours, rem)
}
