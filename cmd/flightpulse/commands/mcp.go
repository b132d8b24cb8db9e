package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/skyward-analytics/flightpulse/internal/flightstore"
	"github.com/skyward-analytics/flightpulse/internal/mcpsrv"
	"github.com/skyward-analytics/flightpulse/internal/observability"
)

// mcpServeFunc runs the MCP server until the context ends. Tests inject
// a stub to exercise the wiring without binding stdio.
type mcpServeFunc func(ctx context.Context, deps mcpsrv.ServerDeps) error

// MCPCommand holds the mcp subcommand dependencies.
type MCPCommand struct {
	globals *GlobalFlags

	serve mcpServeFunc
}

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(globals *GlobalFlags) *cobra.Command {
	return newMCPCommandWithDeps(globals, func(ctx context.Context, deps mcpsrv.ServerDeps) error {
		return mcpsrv.NewServer(deps).Run(ctx)
	})
}

func newMCPCommandWithDeps(globals *GlobalFlags, serve mcpServeFunc) *cobra.Command {
	mc := &MCPCommand{globals: globals, serve: serve}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes the local flight store as tools that AI agents can
discover and invoke:
  - airport_metrics: compute the full metrics document for one airport
  - list_airports: list the airports with ingested flight data`,
		Args: cobra.NoArgs,
		RunE: mc.run,
	}

	return cmd
}

func (mc *MCPCommand) run(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, providers, err := bootstrap(mc.globals, observability.ModeMCP)
	if err != nil {
		return err
	}
	defer shutdownProviders(providers)

	toolMetrics, err := observability.NewToolMetrics(providers.Meter)
	if err != nil {
		return err
	}

	deps := mcpsrv.ServerDeps{
		Store:   flightstore.NewStore(cfg.Storage.DataDir),
		Logger:  providers.Logger,
		Metrics: toolMetrics,
		Tracer:  providers.Tracer,
	}

	return mc.serve(cmd.Context(), deps)
}
