package schedule

import (
	"errors"
	"fmt"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/pkg/alg/mapx"
)

// ErrNoFlights indicates that no input row carries a reference schedule
// time, so no dominant date exists.
var ErrNoFlights = errors.New("no flights with a scheduled date")

// Normalize enriches records with calendar dimensions and keeps only the
// rows on the dominant scheduled date. Ties between equally frequent dates
// resolve to the earliest date.
func Normalize(records []flightstore.Record, direction aeroapi.Direction) ([]Flight, error) {
	flights := make([]Flight, 0, len(records))
	dateCounts := make(map[string]int)

	for _, rec := range records {
		f, ok := enrich(rec, direction)
		if !ok {
			continue
		}

		flights = append(flights, f)
		dateCounts[f.ScheduledDate]++
	}

	if len(dateCounts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFlights, direction)
	}

	dominant := dominantDate(dateCounts)

	kept := make([]Flight, 0, dateCounts[dominant])

	for _, f := range flights {
		if f.ScheduledDate == dominant {
			kept = append(kept, f)
		}
	}

	return kept, nil
}

// dominantDate returns the most frequent date. Scanning dates in ascending
// order with a strict comparison makes the earliest date win ties.
func dominantDate(counts map[string]int) string {
	var (
		best      string
		bestCount int
	)

	for _, date := range mapx.SortedKeys(counts) {
		if counts[date] > bestCount {
			best = date
			bestCount = counts[date]
		}
	}

	return best
}
