package charts

import (
	"math"

	"sales-dashboard/internal/models"
)

// Frame says where a chart is drawn. A panel is a chart embedded in the
// dashboard grid: it has no title of its own and uses the trace palette.
type Frame struct {
	Size  Size
	Title string
	Panel bool
}

func (f Frame) axisNames(x, y string) (string, string) {
	if f.Panel {
		return "", ""
	}
	return x, y
}

// Empty draws a blank figure with a short message.
func Empty(f Frame, message string) ([]byte, error) {
	c, err := newCanvas(f.Size, f.Title)
	if err != nil {
		return nil, err
	}
	c.text(message, f.Size.Width/2, f.Size.Height/2, labelFontSize, colorMuted, alignCenter)
	return c.png()
}

func distributionRange(dists []models.Distribution) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range dists {
		for _, v := range d.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}

func categories(dists []models.Distribution) []string {
	out := make([]string, len(dists))
	for i, d := range dists {
		out[i] = d.Category
	}
	return out
}
