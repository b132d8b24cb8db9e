package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-analytics/flightpulse/internal/observability"
	"github.com/skyward-analytics/flightpulse/internal/report"
	"github.com/skyward-analytics/flightpulse/pkg/config"
)

type reportStub struct {
	called        bool
	airport       string
	skipNarrative bool
	outputDir     string

	doc       report.Document
	artifacts report.Artifacts
	err       error
}

func (s *reportStub) execute(_ context.Context, cfg *config.Config, _ observability.Providers, skipNarrative bool, airport string) (report.Document, report.Artifacts, error) {
	s.called = true
	s.airport = airport
	s.skipNarrative = skipNarrative
	s.outputDir = cfg.Report.OutputDir

	return s.doc, s.artifacts, s.err
}

func TestReportCommand_ForwardsArguments(t *testing.T) {
	t.Parallel()

	doc, _ := report.Assemble("LPPT", nil, nil, report.AssembleConfig{})
	stub := &reportStub{
		doc:       doc,
		artifacts: report.Artifacts{MetricsJSON: "out/lppt_metrics.json"},
	}

	command := newReportCommandWithDeps(&GlobalFlags{OutputDir: "/srv/reports"}, stub.execute)

	var out bytes.Buffer
	command.SetOut(&out)
	command.SetErr(io.Discard)
	command.SetArgs([]string{"lppt", "--skip-narrative"})

	err := command.Execute()
	require.NoError(t, err)
	require.True(t, stub.called)
	assert.Equal(t, "lppt", stub.airport)
	assert.True(t, stub.skipNarrative)
	assert.Equal(t, "/srv/reports", stub.outputDir)

	assert.Contains(t, out.String(), "Flight report for LPPT")
	assert.Contains(t, out.String(), "wrote out/lppt_metrics.json")
}

func TestReportCommand_NarrativeEnabledByDefault(t *testing.T) {
	t.Parallel()

	doc, _ := report.Assemble("LPPT", nil, nil, report.AssembleConfig{})
	stub := &reportStub{doc: doc}

	command := newReportCommandWithDeps(&GlobalFlags{}, stub.execute)
	command.SetOut(io.Discard)
	command.SetErr(io.Discard)
	command.SetArgs([]string{"LPPT"})

	require.NoError(t, command.Execute())
	assert.False(t, stub.skipNarrative)
}

func TestReportCommand_WrongArgCount(t *testing.T) {
	t.Parallel()

	stub := &reportStub{}
	command := newReportCommandWithDeps(&GlobalFlags{}, stub.execute)
	command.SetOut(io.Discard)
	command.SetErr(io.Discard)
	command.SetArgs([]string{})

	err := command.Execute()
	require.ErrorContains(t, err, "accepts 1 arg(s)")
	assert.False(t, stub.called)
}

func TestReportCommand_ExecutorFailure(t *testing.T) {
	t.Parallel()

	stub := &reportStub{err: errors.New("no flight data files found")}
	command := newReportCommandWithDeps(&GlobalFlags{}, stub.execute)
	command.SetOut(io.Discard)
	command.SetErr(io.Discard)
	command.SetArgs([]string{"LPPT"})

	err := command.Execute()
	require.ErrorContains(t, err, "no flight data files found")
}

func TestNarrativeCompleter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Setenv("OPENAI_API_KEY", "")

	cfg := &config.Config{}
	assert.Nil(t, narrativeCompleter(cfg, logger))

	cfg.LLM.APIKey = "sk-config"
	assert.NotNil(t, narrativeCompleter(cfg, logger))
}

func TestNarrativeCompleterEnvFallback(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := &config.Config{}
	assert.NotNil(t, narrativeCompleter(cfg, logger))
}
