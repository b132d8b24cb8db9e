// Package main provides the entry point for the flightpulse CLI tool.
package main

import (
	"fmt"
	"os"

	// Embedded tzdata keeps airport local times resolving on hosts
	// without a system zoneinfo directory.
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/skyward-analytics/flightpulse/cmd/flightpulse/commands"
	"github.com/skyward-analytics/flightpulse/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flightpulse",
		Short: "FlightPulse - airport flight data collection and analysis",
		Long: `FlightPulse collects scheduled flight data from the FlightAware AeroAPI
and turns it into airport performance reports.

Commands:
  ingest    Fetch one weekday of arrivals and departures for an airport
  report    Build the metrics document and report artifacts for an airport
  mcp       Start the MCP server for AI agent integration`,
		SilenceErrors: true,
	}

	globals := commands.RegisterGlobalFlags(rootCmd)

	// Add commands.
	rootCmd.AddCommand(commands.NewIngestCommand(globals))
	rootCmd.AddCommand(commands.NewReportCommand(globals))
	rootCmd.AddCommand(commands.NewMCPCommand(globals))
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "flightpulse %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
