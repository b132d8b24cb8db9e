package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/metrics"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

// GeneratorConfig controls a report run.
type GeneratorConfig struct {
	// OutputDir receives every artifact.
	OutputDir string
	// TopRoutes truncates the airline and gate tables.
	TopRoutes int
	// TopDestinations truncates the destination ranking.
	TopDestinations int
	// SkipNarrative replaces the model narrative with the deterministic
	// fallback.
	SkipNarrative bool
}

// Artifacts lists the files a report run produced, in write order.
type Artifacts struct {
	Chart       string
	MetricsJSON string
	CSV         string
	Dashboard   string
	Markdown    string
	PDF         string
}

// Paths returns the non-empty artifact paths in write order.
func (a Artifacts) Paths() []string {
	paths := make([]string, 0, 6)
	for _, p := range []string{a.Chart, a.MetricsJSON, a.CSV, a.Dashboard, a.Markdown, a.PDF} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Generator turns the latest stored day of flights for an airport into
// the full artifact set.
type Generator struct {
	store     *flightstore.Store
	completer ChatCompleter
	prompts   Prompts
	logger    *slog.Logger
	tracer    trace.Tracer
	cfg       GeneratorConfig
}

// NewGenerator wires a generator. completer may be nil, which forces
// the deterministic fallback narrative.
func NewGenerator(store *flightstore.Store, completer ChatCompleter, prompts Prompts, logger *slog.Logger, tracer trace.Tracer, cfg GeneratorConfig) *Generator {
	if cfg.TopRoutes <= 0 {
		cfg.TopRoutes = DefaultTopRoutes
	}

	if cfg.TopDestinations <= 0 {
		cfg.TopDestinations = DefaultTopDestinations
	}

	return &Generator{
		store:     store,
		completer: completer,
		prompts:   prompts,
		logger:    logger,
		tracer:    tracer,
		cfg:       cfg,
	}
}

// Run loads the newest stored schedule for airport, assembles the
// metrics document and writes every artifact into the output directory.
// Deterministic artifacts are written before the narrative request, so
// a failed model call still leaves the chart, metrics, CSV and
// dashboard on disk.
func (g *Generator) Run(ctx context.Context, airport string) (Document, Artifacts, error) {
	ctx, span := g.tracer.Start(ctx, "report.run",
		trace.WithAttributes(attribute.String("airport", strings.ToUpper(airport))))
	defer span.End()

	arrivals, err := g.loadFlights(ctx, airport, aeroapi.DirectionArrivals)
	if err != nil {
		return Document{}, Artifacts{}, err
	}
	departures, err := g.loadFlights(ctx, airport, aeroapi.DirectionDepartures)
	if err != nil {
		return Document{}, Artifacts{}, err
	}

	doc, destinations := Assemble(airport, arrivals, departures, AssembleConfig{
		TopRoutes:       g.cfg.TopRoutes,
		TopDestinations: g.cfg.TopDestinations,
	})

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return Document{}, Artifacts{}, fmt.Errorf("creating output directory: %w", err)
	}

	lower := strings.ToLower(airport)
	artifacts := Artifacts{
		Chart:       filepath.Join(g.cfg.OutputDir, "flight_distribution.png"),
		MetricsJSON: filepath.Join(g.cfg.OutputDir, lower+"_metrics.json"),
		CSV:         filepath.Join(g.cfg.OutputDir, lower+"_destinations.csv"),
		Dashboard:   filepath.Join(g.cfg.OutputDir, lower+"_dashboard.html"),
		Markdown:    filepath.Join(g.cfg.OutputDir, lower+"_report.md"),
		PDF:         filepath.Join(g.cfg.OutputDir, "airport_report_"+lower+".pdf"),
	}

	metricsJSON, err := g.renderArtifacts(ctx, artifacts, doc, destinations)
	if err != nil {
		return Document{}, Artifacts{}, err
	}

	narrative, err := g.narrative(ctx, doc, metricsJSON)
	if err != nil {
		return Document{}, Artifacts{}, err
	}
	if err := os.WriteFile(artifacts.Markdown, []byte(narrative), 0o644); err != nil {
		return Document{}, Artifacts{}, fmt.Errorf("writing report markdown: %w", err)
	}
	if err := WritePDF(artifacts.PDF, airport, narrative); err != nil {
		return Document{}, Artifacts{}, err
	}

	g.logger.Info("report complete",
		"airport", doc.Airport,
		"arrivals", len(arrivals),
		"departures", len(departures),
		"output_dir", g.cfg.OutputDir)
	return doc, artifacts, nil
}

func (g *Generator) loadFlights(ctx context.Context, airport string, direction aeroapi.Direction) ([]schedule.Flight, error) {
	_, span := g.tracer.Start(ctx, "report.load",
		trace.WithAttributes(attribute.String("direction", string(direction))))
	defer span.End()

	path, err := g.store.Discover(airport, direction)
	if err != nil {
		return nil, err
	}
	records, err := g.store.Load(path)
	if err != nil {
		return nil, err
	}
	flights, err := schedule.Normalize(records, direction)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("loaded flights",
		"airport", strings.ToUpper(airport),
		"direction", direction,
		"file", filepath.Base(path),
		"rows", len(records),
		"kept", len(flights))
	return flights, nil
}

func (g *Generator) renderArtifacts(ctx context.Context, artifacts Artifacts, doc Document, destinations metrics.DestinationSet) ([]byte, error) {
	_, span := g.tracer.Start(ctx, "report.render")
	defer span.End()

	if err := WriteHourlyChart(artifacts.Chart, doc.General.FlightsPerHour); err != nil {
		return nil, err
	}

	metricsJSON, sanitized, err := MarshalDocument(doc)
	if err != nil {
		return nil, err
	}
	if sanitized {
		g.logger.Warn("metrics document carried non-finite values", "airport", doc.Airport)
	}
	if err := ValidateDocument(metricsJSON); err != nil {
		g.logger.Warn("metrics document failed validation", "error", err)
	}
	if err := os.WriteFile(artifacts.MetricsJSON, metricsJSON, 0o644); err != nil {
		return nil, fmt.Errorf("writing metrics JSON: %w", err)
	}

	if err := WriteDestinationsCSV(artifacts.CSV, destinations.Rows); err != nil {
		return nil, err
	}
	if err := WriteDashboard(artifacts.Dashboard, doc); err != nil {
		return nil, err
	}
	return metricsJSON, nil
}

func (g *Generator) narrative(ctx context.Context, doc Document, metricsJSON []byte) (string, error) {
	if g.cfg.SkipNarrative || g.completer == nil {
		g.logger.Info("narrative generation skipped, using fallback", "airport", doc.Airport)
		return FallbackNarrative(doc), nil
	}

	ctx, span := g.tracer.Start(ctx, "report.narrative")
	defer span.End()

	body, err := GenerateNarrative(ctx, g.completer, g.prompts, metricsJSON)
	if err != nil {
		return "", fmt.Errorf("generating narrative: %w", err)
	}
	return body, nil
}
