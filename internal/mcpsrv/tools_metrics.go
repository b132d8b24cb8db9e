package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
	"github.com/skyward-analytics/flightpulse/internal/report"
	"github.com/skyward-analytics/flightpulse/internal/schedule"
)

// handleAirportMetrics processes airport_metrics tool calls. It loads the
// newest stored day for both schedule directions, assembles the metrics
// document and returns it as JSON.
func (s *Server) handleAirportMetrics(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input AirportMetricsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateAirport(input.Airport)
	if err != nil {
		return errorResult(err)
	}

	arrivals, err := s.loadFlights(input.Airport, aeroapi.DirectionArrivals)
	if err != nil {
		return errorResult(err)
	}

	departures, err := s.loadFlights(input.Airport, aeroapi.DirectionDepartures)
	if err != nil {
		return errorResult(err)
	}

	doc, _ := report.Assemble(input.Airport, arrivals, departures, report.AssembleConfig{
		TopRoutes:       input.TopRoutes,
		TopDestinations: input.TopDestinations,
	})

	data, _, err := report.MarshalDocument(doc)
	if err != nil {
		return errorResult(fmt.Errorf("encode metrics: %w", err))
	}

	var parsed any

	err = json.Unmarshal(data, &parsed)
	if err != nil {
		return errorResult(fmt.Errorf("decode metrics: %w", err))
	}

	return jsonResult(parsed)
}

// loadFlights reads the newest stored file for one direction and keeps the
// dominant-date rows.
func (s *Server) loadFlights(airport string, direction aeroapi.Direction) ([]schedule.Flight, error) {
	records, err := s.store.LoadLatest(airport, direction)
	if err != nil {
		return nil, err
	}

	return schedule.Normalize(records, direction)
}
