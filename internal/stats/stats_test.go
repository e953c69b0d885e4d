package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 3.25, Quantile(sorted, 0.75), 1e-12)

	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.3))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestBox(t *testing.T) {
	box := Box([]float64{5, 1, 3, 2, 4, 100, math.NaN()})

	assert.Equal(t, 1.0, box.Min)
	assert.Equal(t, 100.0, box.Max)
	assert.InDelta(t, 3.5, box.Median, 1e-12)
	assert.InDelta(t, 2.25, box.Q1, 1e-12)
	assert.InDelta(t, 4.75, box.Q3, 1e-12)
	assert.Equal(t, 1.0, box.LowerWhisker)
	assert.Equal(t, 5.0, box.UpperWhisker)
	assert.Equal(t, []float64{100}, box.Outliers)
}

func TestBox_Empty(t *testing.T) {
	box := Box([]float64{math.NaN()})
	assert.True(t, math.IsNaN(box.Median))
	assert.Empty(t, box.Outliers)
}

func TestBox_SingleValue(t *testing.T) {
	box := Box([]float64{42})
	assert.Equal(t, 42.0, box.Q1)
	assert.Equal(t, 42.0, box.Q3)
	assert.Equal(t, 42.0, box.LowerWhisker)
	assert.Equal(t, 42.0, box.UpperWhisker)
}

func TestKDE(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	d := KDE(values, 200, 3)

	require.Len(t, d.X, 200)
	require.Len(t, d.Y, 200)
	assert.InDelta(t, 1-3*d.Bandwidth, d.X[0], 1e-9)
	assert.InDelta(t, 5+3*d.Bandwidth, d.X[199], 1e-9)

	// Riemann sum of a density over a wide grid is close to one.
	step := d.X[1] - d.X[0]
	area := 0.0
	for _, y := range d.Y {
		area += y * step
	}
	assert.InDelta(t, 1.0, area, 0.01)

	peak := 0
	for i, y := range d.Y {
		if y > d.Y[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 3.0, d.X[peak], 0.1)
	assert.Equal(t, d.Y[peak], d.Max())

	assert.InDelta(t, d.Y[10], d.At(d.X[10]), 1e-12)
	mid := (d.X[10] + d.X[11]) / 2
	assert.InDelta(t, (d.Y[10]+d.Y[11])/2, d.At(mid), 1e-12)
	assert.Zero(t, d.At(d.X[0]-1))
}

func TestKDE_Degenerate(t *testing.T) {
	assert.Empty(t, KDE([]float64{3}, 50, 2).X)
	assert.Empty(t, KDE([]float64{3, 3, 3}, 50, 2).X)
	assert.Empty(t, KDE([]float64{1, 2}, 1, 2).X)
}

func TestCorrelation(t *testing.T) {
	nan := math.NaN()
	columns := map[string][]float64{
		"Quantity":    {1, 2, 3, 4},
		"Price":       {8, 6, 4, 2},
		"Total_Sales": {2, 4, nan, 8},
		"Flat":        {5, 5, 5, 5},
	}
	labels := []string{"Quantity", "Price", "Total_Sales", "Flat"}

	m := Correlation(labels, columns)

	require.Len(t, m.Values, 4)
	assert.Equal(t, labels, m.Labels)
	assert.InDelta(t, 1.0, m.Values[0][0], 1e-12)
	assert.InDelta(t, -1.0, m.Values[0][1], 1e-12)
	assert.InDelta(t, -1.0, m.Values[1][0], 1e-12)
	assert.InDelta(t, 1.0, m.Values[0][2], 1e-12, "NaN rows are dropped pairwise")
	assert.True(t, math.IsNaN(m.Values[3][0]))
	assert.True(t, math.IsNaN(m.Values[3][3]))
}

func TestFinite(t *testing.T) {
	got := Finite([]float64{1, math.NaN(), math.Inf(1), 2})
	assert.Equal(t, []float64{1, 2}, got)
}
