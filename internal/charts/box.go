package charts

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"sales-dashboard/internal/models"
)

// BoxPlot draws one box per distribution, whiskers at the Tukey fences and
// outliers as dots.
func BoxPlot(dists []models.Distribution, f Frame) ([]byte, error) {
	if len(dists) == 0 {
		return Empty(f, "No sales to plot")
	}

	c, err := newCanvas(f.Size, f.Title)
	if err != nil {
		return nil, err
	}

	xName, yName := f.axisNames(labelProduct, labelTotalSales)
	lo, hi := distributionRange(dists)
	pad := math.Max((hi-lo)*0.05, 1e-9)
	scale := c.valueAxis(lo-pad, hi+pad, yName)
	centres, slot := c.categoryAxis(categories(dists), xName)

	half := int(float64(slot) * 0.4)
	palette := deepPalette
	if f.Panel {
		palette = qualitativePalette
	}

	for i, d := range dists {
		b := d.Box
		if math.IsNaN(b.Median) {
			continue
		}
		x := centres[i]
		fill := paletteColor(palette, i)
		edge := colorAxis
		if f.Panel {
			edge = darken(fill, 0.7)
		}
		capHalf := half / 2

		c.line(x, scale(b.LowerWhisker), x, scale(b.Q1), edge, 1.5)
		c.line(x, scale(b.Q3), x, scale(b.UpperWhisker), edge, 1.5)
		c.line(x-capHalf, scale(b.LowerWhisker), x+capHalf, scale(b.LowerWhisker), edge, 1.5)
		c.line(x-capHalf, scale(b.UpperWhisker), x+capHalf, scale(b.UpperWhisker), edge, 1.5)

		box := boxRect(x, half, scale(b.Q3), scale(b.Q1))
		c.rect(box, fill, edge, 1.5)
		c.line(x-half, scale(b.Median), x+half, scale(b.Median), edge, 2)

		for _, o := range b.Outliers {
			c.circle(x, scale(o), 3, colorMuted, edge)
		}
	}

	return c.png()
}

func boxRect(x, half, top, bottom int) chart.Box {
	return chart.Box{Top: top, Left: x - half, Right: x + half, Bottom: bottom}
}
