package charts

import (
	"fmt"
	"math"
	"strconv"
)

var siPrefixes = map[int]string{
	-24: "y", -21: "z", -18: "a", -15: "f", -12: "p", -9: "n", -6: "µ", -3: "m",
	0: "", 3: "k", 6: "M", 9: "G", 12: "T", 15: "P", 18: "E", 21: "Z", 24: "Y",
}

// FormatSI renders v with the given number of significant digits and an SI
// prefix, e.g. 1234 → "1.2k", 12345 → "12k", 0.5 → "500m".
func FormatSI(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if digits < 1 {
		digits = 1
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', digits-1, 64)
	}

	rounded := roundSignificant(v, digits)
	exp := int(math.Floor(math.Log10(math.Abs(rounded))))
	k := int(math.Floor(float64(exp)/3)) * 3
	k = max(-24, min(24, k))

	mantissa := rounded / math.Pow(10, float64(k))
	decimals := max(0, digits-1-(exp-k))
	return strconv.FormatFloat(mantissa, 'f', decimals, 64) + siPrefixes[k]
}

func roundSignificant(v float64, digits int) float64 {
	exp := math.Floor(math.Log10(math.Abs(v)))
	scale := math.Pow(10, float64(digits)-1-exp)
	return math.Round(v*scale) / scale
}

// formatTick keeps axis labels short: integers for large magnitudes,
// a couple of decimals for small ones.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100_000:
		return FormatSI(v, 3)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// niceTicks returns about n evenly spaced values covering [lo, hi] using
// 1, 2, 2.5 or 5 times a power of ten as the step.
func niceTicks(lo, hi float64, n int) []float64 {
	if n < 2 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if hi <= lo {
		hi = lo + 1
	}
	span := hi - lo
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Max(2, math.Ceil(span/step))
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}

	start := math.Floor(lo/bestStep) * bestStep
	end := math.Ceil(hi/bestStep) * bestStep
	var ticks []float64
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > end+bestStep/2 || len(ticks) > n+2 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}
