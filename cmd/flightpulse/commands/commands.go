// Package commands implements the flightpulse CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyward-analytics/flightpulse/internal/observability"
	"github.com/skyward-analytics/flightpulse/pkg/config"
	"github.com/skyward-analytics/flightpulse/pkg/version"
)

const logFormatJSON = "json"

// GlobalFlags carries the flag values shared by every subcommand.
// Zero values defer to the configuration file.
type GlobalFlags struct {
	ConfigPath string
	LogLevel   string
	LogJSON    bool
	DataDir    string
	OutputDir  string
}

// RegisterGlobalFlags attaches the shared flags to the root command and
// returns the struct the subcommands read their values from.
func RegisterGlobalFlags(root *cobra.Command) *GlobalFlags {
	gf := &GlobalFlags{}

	root.PersistentFlags().StringVar(&gf.ConfigPath, "config", "", "path to the configuration file")
	root.PersistentFlags().StringVar(&gf.LogLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	root.PersistentFlags().BoolVar(&gf.LogJSON, "log-json", false, "force JSON log output")
	root.PersistentFlags().StringVar(&gf.DataDir, "data-dir", "", "directory for stored flight data (overrides config)")
	root.PersistentFlags().StringVar(&gf.OutputDir, "output-dir", "", "directory for report artifacts (overrides config)")

	return gf
}

// bootstrap loads the configuration, applies the flag overrides and
// initializes observability for one command invocation. The caller owns
// the returned Providers.Shutdown.
func bootstrap(gf *GlobalFlags, mode observability.AppMode) (*config.Config, observability.Providers, error) {
	cfg, err := config.LoadConfig(gf.ConfigPath)
	if err != nil {
		return nil, observability.Providers{}, fmt.Errorf("load config: %w", err)
	}

	applyOverrides(cfg, gf)

	level, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, observability.Providers{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.SampleRatio = cfg.Observability.SampleRatio
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == logFormatJSON

	// Stdio carries the protocol in MCP mode, so logs must be machine
	// readable on stderr.
	if mode == observability.ModeMCP {
		obsCfg.LogJSON = true
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, observability.Providers{}, fmt.Errorf("init observability: %w", err)
	}

	return cfg, providers, nil
}

func applyOverrides(cfg *config.Config, gf *GlobalFlags) {
	if gf.LogLevel != "" {
		cfg.Logging.Level = gf.LogLevel
	}

	if gf.LogJSON {
		cfg.Logging.Format = logFormatJSON
	}

	if gf.DataDir != "" {
		cfg.Storage.DataDir = gf.DataDir
	}

	if gf.OutputDir != "" {
		cfg.Report.OutputDir = gf.OutputDir
	}
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(raw)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", raw, err)
	}

	return level, nil
}

func shutdownProviders(providers observability.Providers) {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}
