package metrics

import (
	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
	"github.com/skyward-analytics/flightpulse/pkg/alg/stats"
)

// GeneralMetrics summarizes flight completion for one direction.
type GeneralMetrics struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	Blocked          int     `json:"blocked"`
	Cancelled        int     `json:"cancelled"`
	Diverted         int     `json:"diverted"`
	PercentCompleted float64 `json:"percent_completed"`
	PercentCancelled float64 `json:"percent_cancelled"`
	PercentDiverted  float64 `json:"percent_diverted"`
}

// ComputeGeneral counts completed, blocked, cancelled and diverted flights.
// A flight is completed when none of the three status flags is set. The
// total counts distinct flight ids; an empty table reports all zeros.
func ComputeGeneral(flights []schedule.Flight) GeneralMetrics {
	var completed, blocked, cancelled, diverted int

	for _, f := range flights {
		if !f.Blocked && !f.Diverted && !f.Cancelled {
			completed++
		}

		if f.Blocked {
			blocked++
		}

		if f.Cancelled {
			cancelled++
		}

		if f.Diverted {
			diverted++
		}
	}

	m := GeneralMetrics{
		Total:     distinctFlights(flights),
		Completed: completed,
		Blocked:   blocked,
		Cancelled: cancelled,
		Diverted:  diverted,
	}

	if m.Total > 0 {
		total := float64(m.Total)
		m.PercentCompleted = stats.Round(float64(completed)/total*100, 2)
		m.PercentCancelled = stats.Round(float64(cancelled)/total*100, 2)
		m.PercentDiverted = stats.Round(float64(diverted)/total*100, 2)
	}

	return m
}

// DelayMetrics summarizes the delay distribution for one direction.
type DelayMetrics struct {
	Total                int     `json:"total"`
	AvgDelayMin          float64 `json:"avg_delay_min"`
	MaxDelayMin          float64 `json:"max_delay_min"`
	MinDelayMin          float64 `json:"min_delay_min"`
	MedianDelayMin       float64 `json:"median_delay_min"`
	DelayPercentage      float64 `json:"delay_percentage"`
	DelayPercentage15Min float64 `json:"delay_percentage_15min"`
}

// ComputeDelays aggregates the direction's own delay column in minutes.
// The average spreads the delay sum over all distinct flights, while max,
// min and median consider only rows with a recorded delay. Delay
// percentages count rows strictly later than 1 (resp. 15) minutes against
// all rows.
func ComputeDelays(flights []schedule.Flight, direction aeroapi.Direction) DelayMetrics {
	var (
		present            []float64
		sum                float64
		delayed, delayed15 int
	)

	for _, f := range flights {
		d := delaySeconds(f, direction)
		if d == nil {
			continue
		}

		sec := float64(*d)
		present = append(present, sec)
		sum += sec

		if sec/60 > 1 {
			delayed++
		}

		if sec/60 > 15 {
			delayed15++
		}
	}

	m := DelayMetrics{Total: distinctFlights(flights)}

	if m.Total > 0 {
		m.AvgDelayMin = stats.Round(sum/float64(m.Total)/60, 2)
	}

	if len(present) > 0 {
		m.MaxDelayMin = stats.Round(stats.Max(present)/60, 2)
		m.MinDelayMin = stats.Round(stats.Min(present)/60, 2)
		m.MedianDelayMin = stats.Round(stats.Median(present)/60, 2)
	}

	if len(flights) > 0 {
		rows := float64(len(flights))
		m.DelayPercentage = stats.Round(float64(delayed)/rows*100, 2)
		m.DelayPercentage15Min = stats.Round(float64(delayed15)/rows*100, 2)
	}

	return m
}
