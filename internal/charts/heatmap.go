package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"sales-dashboard/internal/models"
)

const (
	heatmapGap      = 1
	colorbarWidth   = 18
	colorbarSteps   = 64
	heatmapLabelPad = 110
)

// Heatmap draws the correlation matrix as annotated coloured cells with a
// colour bar spanning the matrix range.
func Heatmap(m models.CorrelationMatrix, f Frame) ([]byte, error) {
	n := len(m.Labels)
	if n == 0 {
		return Empty(f, "No numeric columns")
	}

	c, err := newCanvas(f.Size, f.Title)
	if err != nil {
		return nil, err
	}

	vmin, vmax := matrixRange(m)
	norm := func(v float64) float64 { return (v - vmin) / (vmax - vmin) }

	area := chart.Box{
		Top:    c.plot.Top,
		Left:   heatmapLabelPad,
		Right:  c.width - 90,
		Bottom: c.height - 50,
	}
	cell := min(area.Width(), area.Height()) / n
	left := area.Left + (area.Width()-cell*n)/2
	top := area.Top

	for i := range n {
		for j := range n {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			fill := scaleColor(coolwarmScale, norm(v))
			box := chart.Box{
				Top:    top + i*cell + heatmapGap,
				Left:   left + j*cell + heatmapGap,
				Right:  left + (j+1)*cell - heatmapGap,
				Bottom: top + (i+1)*cell - heatmapGap,
			}
			c.fillRect(box, fill)
			c.text(fmt.Sprintf("%.2f", v), (box.Left+box.Right)/2, (box.Top+box.Bottom)/2+4,
				labelFontSize, contrastText(fill), alignCenter)
		}
	}

	for i, label := range m.Labels {
		c.text(label, left-8, top+i*cell+cell/2+4, tickFontSize, colorText, alignRight)
		c.text(label, left+i*cell+cell/2, top+n*cell+16, tickFontSize, colorText, alignCenter)
	}

	bar := chart.Box{
		Top:    top,
		Left:   left + n*cell + 24,
		Bottom: top + n*cell,
	}
	bar.Right = bar.Left + colorbarWidth
	c.colorbar(bar, vmin, vmax)

	return c.png()
}

func (c *canvas) colorbar(b chart.Box, vmin, vmax float64) {
	step := float64(b.Height()) / colorbarSteps
	for s := 0; s < colorbarSteps; s++ {
		t := 1 - (float64(s)+0.5)/colorbarSteps
		c.fillRect(chart.Box{
			Top:    b.Top + int(math.Floor(float64(s)*step)),
			Left:   b.Left,
			Right:  b.Right,
			Bottom: b.Top + int(math.Ceil(float64(s+1)*step)),
		}, scaleColor(coolwarmScale, t))
	}

	for _, v := range niceTicks(vmin, vmax, 5) {
		if v < vmin-1e-9 || v > vmax+1e-9 {
			continue
		}
		y := b.Bottom - int(math.Round((v-vmin)/(vmax-vmin)*float64(b.Height())))
		c.line(b.Right, y, b.Right+4, y, colorAxis, 1)
		c.text(fmt.Sprintf("%.2f", v), b.Right+7, y+4, tickFontSize, colorText, alignLeft)
	}
}

// matrixRange returns the finite extent of the matrix, widened when the
// matrix holds a single value.
func matrixRange(m models.CorrelationMatrix) (float64, float64) {
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, row := range m.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			vmin = math.Min(vmin, v)
			vmax = math.Max(vmax, v)
		}
	}
	if math.IsInf(vmin, 1) {
		return -1, 1
	}
	if vmin == vmax {
		return vmin - 1, vmax + 1
	}
	return vmin, vmax
}
