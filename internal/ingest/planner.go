// Package ingest pulls one day of scheduled flights from the AeroAPI
// and persists it to the parquet store, one file per schedule direction.
package ingest

import (
	"fmt"
	"strings"
	"time"
)

const (
	windowHours   = 2
	windowsPerDay = 24 / windowHours

	// windowPad extends each window end so flights straddling a boundary
	// are not missed; the fa_flight_id dedupe removes the overlap again.
	windowPad = 5 * time.Minute
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// PreviousWeekday returns the most recent date strictly before now that
// falls on the named weekday, at midnight UTC. When now already is that
// weekday the date a full week back is returned, so the resolved day is
// always complete.
func PreviousWeekday(now time.Time, name string) (time.Time, error) {
	target, ok := weekdays[strings.ToLower(name)]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid weekday %q", name)
	}

	days := (int(now.Weekday()) - int(target) + 7) % 7
	if days == 0 {
		days = 7
	}

	date := now.AddDate(0, 0, -days)

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Window is one fetch slice of the target day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows slices date into padded two-hour fetch windows covering the
// full day.
func Windows(date time.Time) []Window {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	windows := make([]Window, 0, windowsPerDay)
	for i := range windowsPerDay {
		start := day.Add(time.Duration(i*windowHours) * time.Hour)
		windows = append(windows, Window{
			Start: start,
			End:   start.Add(windowHours*time.Hour + windowPad),
		})
	}

	return windows
}
