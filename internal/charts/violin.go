package charts

import (
	"math"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/stats"
)

const (
	violinPoints = 100
	violinCut    = 2
)

// Violin draws a mirrored kernel density per distribution with dashed
// lines at the quartiles.
func Violin(dists []models.Distribution, f Frame) ([]byte, error) {
	if len(dists) == 0 {
		return Empty(f, "No sales to plot")
	}

	densities := make([]stats.Density, len(dists))
	lo, hi := distributionRange(dists)
	peak := 0.0
	for i, d := range dists {
		densities[i] = stats.KDE(d.Values, violinPoints, violinCut)
		if n := len(densities[i].X); n > 0 {
			lo = math.Min(lo, densities[i].X[0])
			hi = math.Max(hi, densities[i].X[n-1])
			peak = math.Max(peak, densities[i].Max())
		}
	}

	c, err := newCanvas(f.Size, f.Title)
	if err != nil {
		return nil, err
	}

	xName, yName := f.axisNames(labelRegion, labelTotalSales)
	scale := c.valueAxis(lo, hi, yName)
	centres, slot := c.categoryAxis(categories(dists), xName)
	half := float64(slot) * 0.4

	for i, d := range dists {
		x := centres[i]
		fill := paletteColor(set2Palette, i)
		dens := densities[i]

		if len(dens.X) == 0 {
			// Too few distinct values for a density: mark them instead.
			for _, v := range d.Values {
				c.line(x-int(half), scale(v), x+int(half), scale(v), colorAxis, 1.5)
			}
			continue
		}

		width := func(v float64) int {
			return int(math.Round(dens.At(v) / peak * half))
		}

		n := len(dens.X)
		xs := make([]int, 0, 2*n)
		ys := make([]int, 0, 2*n)
		for j := 0; j < n; j++ {
			xs = append(xs, x+width(dens.X[j]))
			ys = append(ys, scale(dens.X[j]))
		}
		for j := n - 1; j >= 0; j-- {
			xs = append(xs, x-width(dens.X[j]))
			ys = append(ys, scale(dens.X[j]))
		}
		c.polygon(xs, ys, fill, colorAxis, 1.2)

		b := d.Box
		for _, q := range []struct {
			value float64
			dash  []float64
		}{
			{b.Q1, []float64{3, 3}},
			{b.Median, []float64{8, 4}},
			{b.Q3, []float64{3, 3}},
		} {
			w := width(q.value)
			y := scale(q.value)
			c.line(x-w, y, x+w, y, colorAxis, 1.2, q.dash...)
		}
	}

	return c.png()
}
