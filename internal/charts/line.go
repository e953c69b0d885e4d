package charts

import (
	"bytes"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"sales-dashboard/internal/models"
)

// Line draws the daily sales trend with a marker on every point.
func Line(points []models.TrendPoint, f Frame) ([]byte, error) {
	if len(points) == 0 {
		return Empty(f, "No dated sales to plot")
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	lo, hi := points[0].TotalSales, points[0].TotalSales
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.TotalSales
		lo = min(lo, p.TotalSales)
		hi = max(hi, p.TotalSales)
	}

	colour := paletteColor(qualitativePalette, 0)
	series := chart.TimeSeries{
		Name:    "Total_Sales",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: colour,
			StrokeWidth: 2,
			DotColor:    colour,
			DotWidth:    4,
		},
	}

	xName, yName := f.axisNames(labelDate, labelTotalSales)
	xAxis := chart.XAxis{Name: xName, ValueFormatter: dateFormatter(points)}
	if len(points) == 1 {
		// A single timestamp has no extent; centre it in a one-day window.
		t := points[0].Date
		xAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(t.Add(-12 * time.Hour)),
			Max: chart.TimeToFloat64(t.Add(12 * time.Hour)),
		}
	}

	yAxis := chart.YAxis{Name: yName, ValueFormatter: tickFormatter}
	if hi == lo {
		yAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	padding := background()
	if f.Panel {
		padding = chart.Style{Padding: chart.Box{Top: 16, Left: 10, Right: 20, Bottom: 10}}
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      f.Size.Width,
		Height:     f.Size.Height,
		Background: padding,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []chart.Series{series},
	}
	return render("line", func(buf *bytes.Buffer) error { return ch.Render(chart.PNG, buf) })
}
