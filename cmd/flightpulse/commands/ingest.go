package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/ingest"
	"github.com/skyward-analytics/flightpulse/internal/observability"
	"github.com/skyward-analytics/flightpulse/pkg/config"
)

var errMissingAPIKey = errors.New("missing AeroAPI key: set api.key in the config file or FLIGHTPULSE_API_KEY")

// ingestExecutor performs one ingestion run and returns its summary.
// Tests inject a stub to exercise the flag wiring without the network.
type ingestExecutor func(ctx context.Context, cfg *config.Config, providers observability.Providers, metricsListen, weekday, airport string) (ingest.Summary, error)

// IngestCommand holds the ingest subcommand flags and its executor.
type IngestCommand struct {
	globals       *GlobalFlags
	metricsListen string

	execute ingestExecutor
}

// NewIngestCommand creates the ingest subcommand.
func NewIngestCommand(globals *GlobalFlags) *cobra.Command {
	return newIngestCommandWithDeps(globals, runIngestion)
}

func newIngestCommandWithDeps(globals *GlobalFlags, execute ingestExecutor) *cobra.Command {
	ic := &IngestCommand{globals: globals, execute: execute}

	cmd := &cobra.Command{
		Use:   "ingest <weekday> <airport>",
		Short: "Fetch one weekday of arrivals and departures for an airport",
		Long: `Fetch all scheduled flights for the most recent past occurrence of the
given weekday and store one parquet file per direction.

The day is resolved against the current UTC date, split into twelve
overlapping windows and fetched with one paced AeroAPI request per
window. Arrivals and departures are collected in the same run, so a
single invocation leaves the store ready for the report command.`,
		Args: cobra.ExactArgs(2),
		RunE: ic.run,
	}

	cmd.Flags().StringVar(&ic.metricsListen, "metrics-listen", "", "serve Prometheus metrics and health on this address (e.g. :9090)")

	return cmd
}

func (ic *IngestCommand) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, providers, err := bootstrap(ic.globals, observability.ModeCLI)
	if err != nil {
		return err
	}
	defer shutdownProviders(providers)

	summary, err := ic.execute(cmd.Context(), cfg, providers, ic.metricsListen, args[0], args[1])
	if err != nil {
		return err
	}

	writeIngestSummary(cmd.OutOrStdout(), summary)

	return nil
}

// runIngestion builds the production dependency graph and executes one
// ingestion run.
func runIngestion(ctx context.Context, cfg *config.Config, providers observability.Providers, metricsListen, weekday, airport string) (ingest.Summary, error) {
	if cfg.API.Key == "" {
		return ingest.Summary{}, errMissingAPIKey
	}

	if metricsListen == "" {
		metricsListen = cfg.Observability.MetricsListen
	}

	meter := providers.Meter

	if metricsListen != "" {
		diag, err := observability.NewDiagnosticsServer(metricsListen, providers.Logger)
		if err != nil {
			return ingest.Summary{}, fmt.Errorf("diagnostics server: %w", err)
		}

		defer func() {
			closeErr := diag.Close()
			if closeErr != nil {
				providers.Logger.Warn("diagnostics server close failed", "error", closeErr)
			}
		}()

		meter = diag.Meter()

		providers.Logger.Info("diagnostics server listening", "addr", diag.Addr())
	}

	apiMetrics, err := observability.NewAPIMetrics(meter)
	if err != nil {
		return ingest.Summary{}, fmt.Errorf("api metrics: %w", err)
	}

	client := aeroapi.NewClient(cfg.API.Key,
		aeroapi.WithBaseURL(cfg.API.BaseURL),
		aeroapi.WithMaxPages(cfg.API.MaxPages),
		aeroapi.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		aeroapi.WithBackoff(aeroapi.Backoff{
			MaxAttempts: cfg.API.RetryMaxAttempts,
			Base:        cfg.API.RetryBaseBackoff,
			Max:         cfg.API.RetryMaxBackoff,
			Factor:      cfg.API.RetryFactor,
		}),
		aeroapi.WithLogger(providers.Logger),
		aeroapi.WithMetrics(apiMetrics),
	)

	store := flightstore.NewStore(cfg.Storage.DataDir)
	runner := ingest.NewRunner(client, store, providers.Logger, providers.Tracer, ingest.RunnerConfig{
		ArchiveRaw: cfg.Storage.ArchiveRaw,
		Pacing:     cfg.API.Pacing,
	})

	return runner.Run(ctx, weekday, airport)
}

func writeIngestSummary(w io.Writer, summary ingest.Summary) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(w, "Ingested %s for %s\n", summary.Airport, summary.Date.Format(time.DateOnly))

	fmt.Fprintf(w, "arrivals:   %d flights\n", summary.Saved[aeroapi.DirectionArrivals])
	fmt.Fprintf(w, "departures: %d flights\n", summary.Saved[aeroapi.DirectionDepartures])

	if summary.EmptyWindows > 0 {
		fmt.Fprintf(w, "empty windows: %d\n", summary.EmptyWindows)
	}

	wrote := color.New(color.FgGreen)
	for _, path := range summary.Files {
		wrote.Fprintf(w, "wrote %s\n", path)
	}
}
