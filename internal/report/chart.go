package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skyward-analytics/flightpulse/internal/metrics"
)

var (
	departureBarColor = color.RGBA{R: 0xAD, G: 0xD8, B: 0xE6, A: 0xFF}
	arrivalBarColor   = color.RGBA{R: 0x0D, G: 0x3D, B: 0x69, A: 0xFF}
)

// WriteHourlyChart renders departures and arrivals as grouped bars per
// scheduled hour and saves the result as a PNG.
func WriteHourlyChart(path string, slots []metrics.HourlySlot) error {
	departures := make(plotter.Values, len(slots))
	arrivals := make(plotter.Values, len(slots))
	labels := make([]string, len(slots))
	for i, slot := range slots {
		departures[i] = float64(slot.NumDepartures)
		arrivals[i] = float64(slot.NumArrivals)
		labels[i] = slot.HourHHMM
	}

	p := plot.New()
	p.Title.Text = "Flights per Hour"
	p.X.Label.Text = "Hour"
	p.Y.Label.Text = "Number of Flights"

	barWidth := vg.Points(8)
	depBars, err := plotter.NewBarChart(departures, barWidth)
	if err != nil {
		return fmt.Errorf("building departure bars: %w", err)
	}
	depBars.Color = departureBarColor
	depBars.LineStyle.Width = 0
	depBars.Offset = -barWidth / 2

	arrBars, err := plotter.NewBarChart(arrivals, barWidth)
	if err != nil {
		return fmt.Errorf("building arrival bars: %w", err)
	}
	arrBars.Color = arrivalBarColor
	arrBars.LineStyle.Width = 0
	arrBars.Offset = barWidth / 2

	p.Add(depBars, arrBars)
	p.Legend.Add("Departures", depBars)
	p.Legend.Add("Arrivals", arrBars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(labels...)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving hourly chart: %w", err)
	}
	return nil
}
