package charts

import (
	"bytes"
	"fmt"
	"slices"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sales-dashboard/internal/models"
)

// Pie draws product shares, largest slice first. Standalone figures are
// drawn as a donut; dashboard panels as a full pie.
func Pie(sales []models.CategorySales, f Frame) ([]byte, error) {
	shares := positive(sales)
	if len(shares) == 0 {
		return Empty(f, "No positive sales to plot")
	}

	total := 0.0
	for _, s := range shares {
		total += s.TotalSales
	}

	values := make([]chart.Value, len(shares))
	for i, s := range shares {
		values[i] = chart.Value{
			Value: s.TotalSales,
			Label: fmt.Sprintf("%s %.1f%%", s.Category, 100*s.TotalSales/total),
			Style: chart.Style{
				FillColor:   paletteColor(qualitativePalette, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontSize:    labelFontSize,
			},
		}
	}

	if f.Panel {
		pc := chart.PieChart{
			Width:  f.Size.Width,
			Height: f.Size.Height,
			Values: values,
		}
		return render("pie", func(buf *bytes.Buffer) error { return pc.Render(chart.PNG, buf) })
	}

	dc := chart.DonutChart{
		Title:      f.Title,
		Width:      f.Size.Width,
		Height:     f.Size.Height,
		Background: background(),
		Values:     values,
	}
	return render("donut", func(buf *bytes.Buffer) error { return dc.Render(chart.PNG, buf) })
}

// positive drops non-positive totals and orders the rest by value,
// descending; ties keep their input order.
func positive(sales []models.CategorySales) []models.CategorySales {
	out := make([]models.CategorySales, 0, len(sales))
	for _, s := range sales {
		if s.TotalSales > 0 {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b models.CategorySales) int {
		switch {
		case a.TotalSales > b.TotalSales:
			return -1
		case a.TotalSales < b.TotalSales:
			return 1
		}
		return 0
	})
	return out
}
