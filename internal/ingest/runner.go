package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
)

// requestPacing spaces consecutive window fetches.
const requestPacing = 30 * time.Second

// flightFetcher is the client surface the runner needs.
type flightFetcher interface {
	FetchWindow(ctx context.Context, airport string, direction aeroapi.Direction, start, end time.Time) ([]aeroapi.Flight, []byte, error)
}

// RunnerConfig controls one ingestion run.
type RunnerConfig struct {
	// ArchiveRaw also stores each window's raw response body as lz4.
	ArchiveRaw bool
	// Pacing waits between consecutive window fetches. Zero keeps the
	// default 30s.
	Pacing time.Duration
}

// Summary reports what a run ingested.
type Summary struct {
	Airport string
	Date    time.Time
	// Saved maps direction to the row count after dedupe.
	Saved map[aeroapi.Direction]int
	// Files lists the written parquet paths.
	Files []string
	// EmptyWindows counts window fetches that failed soft and
	// contributed no rows.
	EmptyWindows int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSleeper replaces the pacing sleep (used by tests to avoid real
// waits).
func WithSleeper(s aeroapi.Sleeper) RunnerOption {
	return func(r *Runner) { r.sleep = s }
}

// WithClock replaces the wall clock used to resolve the target weekday.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// Runner drives one full ingestion: both schedule directions, every
// window of the target day, deduped and persisted per direction.
type Runner struct {
	fetcher flightFetcher
	store   *flightstore.Store
	logger  *slog.Logger
	tracer  trace.Tracer
	sleep   aeroapi.Sleeper
	now     func() time.Time
	cfg     RunnerConfig
}

// NewRunner wires a runner around fetcher and store.
func NewRunner(fetcher flightFetcher, store *flightstore.Store, logger *slog.Logger, tracer trace.Tracer, cfg RunnerConfig, opts ...RunnerOption) *Runner {
	if cfg.Pacing <= 0 {
		cfg.Pacing = requestPacing
	}

	r := &Runner{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		tracer:  tracer,
		sleep:   aeroapi.SleepContext,
		now:     time.Now,
		cfg:     cfg,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run resolves the most recent complete occurrence of weekday, fetches
// both directions of airport's schedule across the day's windows and
// writes one parquet file per direction. A window that fails with
// anything other than rate-limit exhaustion or a cancelled context is
// logged and skipped. Duplicate fa_flight_id rows keep their first
// occurrence.
func (r *Runner) Run(ctx context.Context, weekday, airport string) (Summary, error) {
	date, err := PreviousWeekday(r.now().UTC(), weekday)
	if err != nil {
		return Summary{}, err
	}

	upper := strings.ToUpper(airport)

	ctx, span := r.tracer.Start(ctx, "ingest.run", trace.WithAttributes(
		attribute.String("airport", upper),
		attribute.String("date", date.Format(time.DateOnly)),
	))
	defer span.End()

	r.logger.InfoContext(ctx, "ingestion started",
		"airport", upper,
		"weekday", strings.ToLower(weekday),
		"date", date.Format(time.DateOnly))

	summary := Summary{
		Airport: upper,
		Date:    date,
		Saved:   make(map[aeroapi.Direction]int, len(aeroapi.Directions)),
	}

	windows := Windows(date)
	for i, direction := range aeroapi.Directions {
		records, err := r.fetchDirection(ctx, airport, direction, date, windows, i > 0, &summary)
		if err != nil {
			return Summary{}, err
		}

		path, err := r.store.Save(airport, direction, date, records)
		if err != nil {
			return Summary{}, err
		}

		summary.Saved[direction] = len(records)
		summary.Files = append(summary.Files, path)
	}

	r.logger.InfoContext(ctx, "ingestion finished",
		"airport", upper,
		"arrivals", summary.Saved[aeroapi.DirectionArrivals],
		"departures", summary.Saved[aeroapi.DirectionDepartures],
		"empty_windows", summary.EmptyWindows)

	return summary, nil
}

func (r *Runner) fetchDirection(
	ctx context.Context,
	airport string,
	direction aeroapi.Direction,
	date time.Time,
	windows []Window,
	paceFirst bool,
	summary *Summary,
) ([]flightstore.Record, error) {
	ctx, span := r.tracer.Start(ctx, "ingest.direction",
		trace.WithAttributes(attribute.String("direction", string(direction))))
	defer span.End()

	var flights []aeroapi.Flight

	for i, window := range windows {
		if i > 0 || paceFirst {
			if err := r.sleep(ctx, r.cfg.Pacing); err != nil {
				return nil, fmt.Errorf("pacing interrupted: %w", err)
			}
		}

		rows, raw, err := r.fetcher.FetchWindow(ctx, airport, direction, window.Start, window.End)

		switch {
		case err == nil:
		case errors.Is(err, aeroapi.ErrRateLimited),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			r.logger.WarnContext(ctx, "window fetch failed, continuing",
				"airport", strings.ToUpper(airport),
				"direction", direction,
				"start", window.Start.Format(time.RFC3339),
				"error", err)
			summary.EmptyWindows++

			continue
		}

		flights = append(flights, rows...)

		if r.cfg.ArchiveRaw {
			if _, err := r.store.ArchiveRaw(airport, direction, date, i, raw); err != nil {
				r.logger.WarnContext(ctx, "raw archive failed", "error", err)
			}
		}
	}

	unique := dedupeFlights(flights)
	if len(unique) == 0 {
		r.logger.WarnContext(ctx, "no flights ingested",
			"airport", strings.ToUpper(airport),
			"direction", direction)
	}

	r.logger.DebugContext(ctx, "direction fetched",
		"direction", direction,
		"rows", len(flights),
		"unique", len(unique))

	return flightstore.RecordsFromWire(unique), nil
}

// dedupeFlights drops repeated fa_flight_id rows, keeping the first
// occurrence. Consecutive windows overlap, so duplicates are expected.
func dedupeFlights(flights []aeroapi.Flight) []aeroapi.Flight {
	seen := make(map[string]struct{}, len(flights))
	unique := make([]aeroapi.Flight, 0, len(flights))

	for _, f := range flights {
		if _, ok := seen[f.FaFlightID]; ok {
			continue
		}

		seen[f.FaFlightID] = struct{}{}
		unique = append(unique, f)
	}

	return unique
}
