package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteSummary prints a terminal summary of a finished report run: the
// headline counts, the top destinations and the artifact paths.
func WriteSummary(w io.Writer, doc Document, artifacts Artifacts) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(w, "Flight report for %s\n\n", doc.Airport)

	fmt.Fprintf(w, "Arrivals:   %s flights, %.2f%% completed, avg delay %.2f min\n",
		humanize.Comma(int64(doc.General.Arrivals.Total)),
		doc.General.Arrivals.PercentCompleted,
		doc.General.ArrivalDelays.AvgDelayMin)
	fmt.Fprintf(w, "Departures: %s flights, %.2f%% completed, avg delay %.2f min\n",
		humanize.Comma(int64(doc.General.Departures.Total)),
		doc.General.Departures.PercentCompleted,
		doc.General.DepartureDelays.AvgDelayMin)
	fmt.Fprintf(w, "Network:    %s destinations\n\n",
		humanize.Comma(int64(doc.Destination.TotalDestinations)))

	if len(doc.Destination.Top10Destinations) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Airport", "City", "Flights"})
		for i, dest := range doc.Destination.Top10Destinations {
			t.AppendRow(table.Row{i + 1, dest.AirportICAO, dest.City, dest.NumFlights})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	wrote := color.New(color.FgGreen)
	for _, path := range artifacts.Paths() {
		wrote.Fprintf(w, "wrote %s\n", path)
	}
}
