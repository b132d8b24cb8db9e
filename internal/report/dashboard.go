package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	departureSeriesColor = "lightblue"
	arrivalSeriesColor   = "#0d3d69"
)

// WriteDashboard renders an interactive HTML page with the hourly
// distribution, the hourly delay curves and the top destination share.
func WriteDashboard(path string, doc Document) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		hourlyBarChart(doc),
		delayLineChart(doc),
		destinationPieChart(doc),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}
	return nil
}

func hourlyBarChart(doc Document) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Flights per Hour", Subtitle: doc.Airport}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Flights"}),
	)

	hours := make([]string, 0, len(doc.General.FlightsPerHour))
	departures := make([]opts.BarData, 0, len(doc.General.FlightsPerHour))
	arrivals := make([]opts.BarData, 0, len(doc.General.FlightsPerHour))
	for _, slot := range doc.General.FlightsPerHour {
		hours = append(hours, slot.HourHHMM)
		departures = append(departures, opts.BarData{Value: slot.NumDepartures})
		arrivals = append(arrivals, opts.BarData{Value: slot.NumArrivals})
	}

	bar.SetXAxis(hours).
		AddSeries("Departures", departures,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: departureSeriesColor})).
		AddSeries("Arrivals", arrivals,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: arrivalSeriesColor}))
	return bar
}

func delayLineChart(doc Document) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Average Delay per Hour (min)", Subtitle: doc.Airport}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Delay (min)"}),
	)

	hours := make([]string, 0, len(doc.General.FlightsPerHour))
	departureDelays := make([]opts.LineData, 0, len(doc.General.FlightsPerHour))
	arrivalDelays := make([]opts.LineData, 0, len(doc.General.FlightsPerHour))
	for _, slot := range doc.General.FlightsPerHour {
		hours = append(hours, slot.HourHHMM)
		departureDelays = append(departureDelays, opts.LineData{Value: slot.AvgDepartureDelayMin})
		arrivalDelays = append(arrivalDelays, opts.LineData{Value: slot.AvgArrivalDelayMin})
	}

	line.SetXAxis(hours).
		AddSeries("Departure delay", departureDelays,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: departureSeriesColor})).
		AddSeries("Arrival delay", arrivalDelays,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: arrivalSeriesColor})).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func destinationPieChart(doc Document) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Top Destinations", Subtitle: doc.Airport}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	rows := make([]opts.PieData, 0, len(doc.Destination.Top10Destinations))
	for _, dest := range doc.Destination.Top10Destinations {
		rows = append(rows, opts.PieData{Name: dest.AirportICAO, Value: dest.NumFlights})
	}

	pie.AddSeries("Destinations", rows).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
		)
	return pie
}
