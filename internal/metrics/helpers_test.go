package metrics

import (
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

func ptr[T any](v T) *T {
	return &v
}

// flightRow builds a flight from a bare record, for aggregators that do
// not read calendar dimensions.
func flightRow(rec flightstore.Record) schedule.Flight {
	return schedule.Flight{Record: rec}
}

// hourlyArrival places an arrival in one hourly slot.
func hourlyArrival(id string, hour int, delaySec *int64) schedule.Flight {
	return schedule.Flight{
		Record:        flightstore.Record{FaFlightID: id, ArrivalDelay: delaySec},
		ScheduledHour: hour,
	}
}

// hourlyDeparture places a departure in one hourly slot.
func hourlyDeparture(id string, hour int, delaySec *int64) schedule.Flight {
	return schedule.Flight{
		Record:        flightstore.Record{FaFlightID: id, DepartureDelay: delaySec},
		ScheduledHour: hour,
	}
}
