package mcpsrv

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// airportInventory is the list_airports tool result.
type airportInventory struct {
	Airports []string `json:"airports"`
	Count    int      `json:"count"`
}

// handleListAirports processes list_airports tool calls.
func (s *Server) handleListAirports(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ ListAirportsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	airports, err := s.store.ListAirports()
	if err != nil {
		return errorResult(fmt.Errorf("list airports: %w", err))
	}

	if airports == nil {
		airports = []string{}
	}

	return jsonResult(airportInventory{Airports: airports, Count: len(airports)})
}
