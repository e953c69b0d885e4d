package charts

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"sales-dashboard/internal/models"
)

// Bar draws region totals. Standalone bars are coloured on a continuous
// scale by value and labelled with the value in SI notation.
func Bar(sales []models.CategorySales, f Frame) ([]byte, error) {
	if len(sales) == 0 {
		return Empty(f, "No sales to plot")
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sales {
		lo = math.Min(lo, s.TotalSales)
		hi = math.Max(hi, s.TotalSales)
	}

	bars := make([]chart.Value, len(sales))
	for i, s := range sales {
		fill := paletteColor(qualitativePalette, 0)
		label := s.Category
		if !f.Panel {
			t := 1.0
			if hi > lo {
				t = (s.TotalSales - lo) / (hi - lo)
			}
			fill = scaleColor(plasmaScale, t)
			label = fmt.Sprintf("%s (%s)", s.Category, FormatSI(s.TotalSales, 2))
		}
		bars[i] = chart.Value{
			Value: s.TotalSales,
			Label: label,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
	}

	ticks := niceTicks(math.Min(0, lo), math.Max(0, hi), 6)
	yRange := &chart.ContinuousRange{Min: ticks[0], Max: ticks[len(ticks)-1]}

	slot := (f.Size.Width - 120) / len(sales)
	barWidth := max(4, slot*3/5)
	barSpacing := max(2, slot-barWidth)

	padding := background()
	if f.Panel {
		padding = chart.Style{Padding: chart.Box{Top: 16, Left: 10, Right: 10, Bottom: 10}}
	}

	bc := chart.BarChart{
		Title:        f.Title,
		Width:        f.Size.Width,
		Height:       f.Size.Height,
		Background:   padding,
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: lo < 0,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range:          yRange,
			ValueFormatter: tickFormatter,
		},
		Bars: bars,
	}
	return render("bar", func(buf *bytes.Buffer) error { return bc.Render(chart.PNG, buf) })
}

func tickFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatTick(f)
	}
	return ""
}
