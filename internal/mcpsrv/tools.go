package mcpsrv

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameAirportMetrics = "airport_metrics"
	ToolNameListAirports   = "list_airports"
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyAirport indicates the airport parameter is empty.
	ErrEmptyAirport = errors.New("airport parameter is required and must not be empty")
	// ErrInvalidAirport indicates the airport code is not a 3 or 4 character code.
	ErrInvalidAirport = errors.New("airport must be a 3 or 4 character ICAO or IATA code")
)

// airportCodePattern matches ICAO and IATA airport codes.
var airportCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{3,4}$`)

// Input types (auto-generate JSON schemas via struct tags).

// AirportMetricsInput is the input schema for the airport_metrics tool.
type AirportMetricsInput struct {
	Airport         string `json:"airport"                    jsonschema:"ICAO or IATA airport code (e.g. LPPT)"`
	TopDestinations int    `json:"top_destinations,omitempty" jsonschema:"how many busiest destinations to keep (default: 10)"`
	TopRoutes       int    `json:"top_routes,omitempty"       jsonschema:"how many airline route rows to keep (default: 5)"`
}

// ListAirportsInput is the input schema for the list_airports tool.
type ListAirportsInput struct{}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateAirport checks the airport code constraints.
func validateAirport(airport string) error {
	if airport == "" {
		return ErrEmptyAirport
	}

	if !airportCodePattern.MatchString(airport) {
		return fmt.Errorf("%w: %q", ErrInvalidAirport, airport)
	}

	return nil
}
