// Package schedule turns stored flight records into analysis-ready flights:
// each row gains calendar dimensions derived from its reference schedule
// time, and the set is filtered to the dominant scheduled date.
package schedule

import (
	"fmt"
	"time"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
)

// Flight is a stored record enriched with calendar dimensions. Dimensions
// derive from the reference schedule time in UTC: scheduled_out for
// departures, scheduled_in for arrivals.
type Flight struct {
	flightstore.Record

	ScheduledDate        string // YYYY-MM-DD
	ScheduledWeekday     string // English day name
	ScheduledHour        int    // 0-23
	ScheduledMonth       int    // 1-12
	ScheduledYear        int
	ScheduledWeek        int    // ISO week
	ScheduledDay         int    // day of month
	ScheduledMonthDay    string // MM-DD
	ScheduledWeekdayHour string // "Monday 05:00"
}

func referenceTime(rec flightstore.Record, direction aeroapi.Direction) *time.Time {
	if direction == aeroapi.DirectionArrivals {
		return rec.ScheduledInUTC
	}

	return rec.ScheduledOutUTC
}

// enrich derives the calendar dimensions for one record. Records without a
// reference schedule time carry no dimensions and report ok=false.
func enrich(rec flightstore.Record, direction aeroapi.Direction) (Flight, bool) {
	ref := referenceTime(rec, direction)
	if ref == nil {
		return Flight{}, false
	}

	t := ref.UTC()
	_, week := t.ISOWeek()

	return Flight{
		Record:               rec,
		ScheduledDate:        t.Format(time.DateOnly),
		ScheduledWeekday:     t.Weekday().String(),
		ScheduledHour:        t.Hour(),
		ScheduledMonth:       int(t.Month()),
		ScheduledYear:        t.Year(),
		ScheduledWeek:        week,
		ScheduledDay:         t.Day(),
		ScheduledMonthDay:    t.Format("01-02"),
		ScheduledWeekdayHour: fmt.Sprintf("%s %02d:00", t.Weekday(), t.Hour()),
	}, true
}
