// Package stats holds the descriptive statistics behind the distribution
// and correlation charts.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"sales-dashboard/internal/models"
)

// whiskerReach is the IQR multiple used for box plot whiskers.
const whiskerReach = 1.5

// Finite returns the values that are neither NaN nor infinite.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Box computes box plot statistics over the finite values.
func Box(values []float64) models.BoxStats {
	sorted := Finite(values)
	if len(sorted) == 0 {
		nan := math.NaN()
		return models.BoxStats{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, LowerWhisker: nan, UpperWhisker: nan}
	}
	slices.Sort(sorted)

	box := models.BoxStats{
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}

	iqr := box.Q3 - box.Q1
	lowLimit := box.Q1 - whiskerReach*iqr
	highLimit := box.Q3 + whiskerReach*iqr

	box.LowerWhisker = box.Q1
	box.UpperWhisker = box.Q3
	for _, v := range sorted {
		if v >= lowLimit {
			box.LowerWhisker = math.Min(v, box.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highLimit {
			box.UpperWhisker = math.Max(sorted[i], box.Q3)
			break
		}
	}

	for _, v := range sorted {
		if v < box.LowerWhisker || v > box.UpperWhisker {
			box.Outliers = append(box.Outliers, v)
		}
	}

	return box
}

// Density is a kernel density estimate sampled on a regular grid.
type Density struct {
	X         []float64
	Y         []float64
	Bandwidth float64
}

// Max returns the largest density value.
func (d Density) Max() float64 {
	m := 0.0
	for _, y := range d.Y {
		m = math.Max(m, y)
	}
	return m
}

// ScottBandwidth is the normal-reference bandwidth n^(-1/5) * stddev.
func ScottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil) * math.Pow(float64(len(values)), -0.2)
}

// KDE estimates a Gaussian kernel density over the finite values. The grid
// spans the data extended by cut bandwidths on each side. A degenerate
// sample (fewer than two values or zero spread) yields an empty Density.
func KDE(values []float64, points int, cut float64) Density {
	data := Finite(values)
	bw := ScottBandwidth(data)
	if bw == 0 || math.IsNaN(bw) || points < 2 {
		return Density{}
	}

	lo, hi := slices.Min(data)-cut*bw, slices.Max(data)+cut*bw
	step := (hi - lo) / float64(points-1)
	norm := 1 / (float64(len(data)) * bw * math.Sqrt(2*math.Pi))

	d := Density{
		X:         make([]float64, points),
		Y:         make([]float64, points),
		Bandwidth: bw,
	}
	for i := range points {
		x := lo + float64(i)*step
		sum := 0.0
		for _, v := range data {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		d.X[i] = x
		d.Y[i] = sum * norm
	}
	return d
}

// Correlation returns the Pearson correlation matrix of the given columns.
// Each pair uses only the rows where both values are present; cells with
// fewer than two such rows or zero variance are NaN.
func Correlation(labels []string, columns map[string][]float64) models.CorrelationMatrix {
	m := models.CorrelationMatrix{
		Labels: slices.Clone(labels),
		Values: make([][]float64, len(labels)),
	}
	for i := range labels {
		m.Values[i] = make([]float64, len(labels))
	}

	for i, a := range labels {
		for j := i; j < len(labels); j++ {
			r := pairwisePearson(columns[a], columns[labels[j]])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwisePearson(a, b []float64) float64 {
	n := min(len(a), len(b))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := range n {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r))
}

// At linearly interpolates the density at x; zero outside the grid.
func (d Density) At(x float64) float64 {
	n := len(d.X)
	if n == 0 || x < d.X[0] || x > d.X[n-1] {
		return 0
	}
	i, _ := slices.BinarySearch(d.X, x)
	if i == 0 {
		return d.Y[0]
	}
	if i >= n {
		return d.Y[n-1]
	}
	x0, x1 := d.X[i-1], d.X[i]
	if x1 == x0 {
		return d.Y[i]
	}
	frac := (x - x0) / (x1 - x0)
	return d.Y[i-1] + frac*(d.Y[i]-d.Y[i-1])
}
