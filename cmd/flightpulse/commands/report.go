package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/observability"
	"github.com/skyward-analytics/flightpulse/internal/report"
	"github.com/skyward-analytics/flightpulse/pkg/config"
)

// reportExecutor builds the artifact set for one airport and returns
// the assembled document together with the written paths.
type reportExecutor func(ctx context.Context, cfg *config.Config, providers observability.Providers, skipNarrative bool, airport string) (report.Document, report.Artifacts, error)

// ReportCommand holds the report subcommand flags and its executor.
type ReportCommand struct {
	globals       *GlobalFlags
	skipNarrative bool

	execute reportExecutor
}

// NewReportCommand creates the report subcommand.
func NewReportCommand(globals *GlobalFlags) *cobra.Command {
	return newReportCommandWithDeps(globals, runReport)
}

func newReportCommandWithDeps(globals *GlobalFlags, execute reportExecutor) *cobra.Command {
	rc := &ReportCommand{globals: globals, execute: execute}

	cmd := &cobra.Command{
		Use:   "report <airport>",
		Short: "Build the metrics document and report artifacts for an airport",
		Long: `Aggregate the most recent stored day of flights for an airport and
write the full artifact set into the output directory: hourly
distribution chart, metrics JSON, destinations CSV, HTML dashboard,
narrative Markdown and the PDF report.

The narrative is produced by the configured model. Without an API key,
or with --skip-narrative, a deterministic summary is rendered instead.`,
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().BoolVar(&rc.skipNarrative, "skip-narrative", false, "render the deterministic fallback narrative instead of calling the model")

	return cmd
}

func (rc *ReportCommand) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, providers, err := bootstrap(rc.globals, observability.ModeCLI)
	if err != nil {
		return err
	}
	defer shutdownProviders(providers)

	doc, artifacts, err := rc.execute(cmd.Context(), cfg, providers, rc.skipNarrative, args[0])
	if err != nil {
		return err
	}

	report.WriteSummary(cmd.OutOrStdout(), doc, artifacts)

	return nil
}

// runReport builds the production dependency graph and executes one
// report run.
func runReport(ctx context.Context, cfg *config.Config, providers observability.Providers, skipNarrative bool, airport string) (report.Document, report.Artifacts, error) {
	prompts, err := report.LoadPrompts(cfg.LLM.PromptsFile)
	if err != nil {
		return report.Document{}, report.Artifacts{}, fmt.Errorf("load prompts: %w", err)
	}

	store := flightstore.NewStore(cfg.Storage.DataDir)
	gen := report.NewGenerator(store, narrativeCompleter(cfg, providers.Logger), prompts, providers.Logger, providers.Tracer, report.GeneratorConfig{
		OutputDir:       cfg.Report.OutputDir,
		TopRoutes:       cfg.Report.TopRoutes,
		TopDestinations: cfg.Report.TopDestinations,
		SkipNarrative:   skipNarrative,
	})

	return gen.Run(ctx, airport)
}

// narrativeCompleter returns nil when no model API key is configured,
// which makes the generator fall back to the deterministic narrative.
func narrativeCompleter(cfg *config.Config, logger *slog.Logger) report.ChatCompleter {
	apiKey := cfg.LLM.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if apiKey == "" {
		logger.Warn("no model API key configured, narrative falls back to the deterministic summary")
		return nil
	}

	return report.NewOpenAICompleter(apiKey, cfg.LLM.BaseURL, cfg.LLM.Model)
}
