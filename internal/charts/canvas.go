package charts

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

const (
	titleFontSize = 14
	labelFontSize = 10
	tickFontSize  = 9
)

// canvas draws the statistical charts go-chart has no series type for.
// It wraps a PNG renderer and tracks the plotting area.
type canvas struct {
	r      chart.Renderer
	width  int
	height int
	plot   chart.Box
}

func newCanvas(size Size, title string) (*canvas, error) {
	r, err := chart.PNG(size.Width, size.Height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)

	c := &canvas{r: r, width: size.Width, height: size.Height}
	c.fillRect(chart.Box{Top: 0, Left: 0, Right: size.Width, Bottom: size.Height}, drawing.ColorWhite)

	top := 20
	if title != "" {
		c.text(title, size.Width/2, 30, titleFontSize, colorText, alignCenter)
		top = 50
	}
	c.plot = chart.Box{Top: top, Left: 80, Right: size.Width - 30, Bottom: size.Height - 60}
	return c, nil
}

func (c *canvas) fillRect(b chart.Box, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeWidth(0)
	c.path([]int{b.Left, b.Right, b.Right, b.Left}, []int{b.Top, b.Top, b.Bottom, b.Bottom})
	c.r.Fill()
}

func (c *canvas) rect(b chart.Box, fill, stroke drawing.Color, width float64) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.path([]int{b.Left, b.Right, b.Right, b.Left}, []int{b.Top, b.Top, b.Bottom, b.Bottom})
	c.r.FillStroke()
}

func (c *canvas) polygon(xs, ys []int, fill, stroke drawing.Color, width float64) {
	if len(xs) < 3 {
		return
	}
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.path(xs, ys)
	c.r.FillStroke()
}

func (c *canvas) path(xs, ys []int) {
	c.r.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		c.r.LineTo(xs[i], ys[i])
	}
	c.r.Close()
}

func (c *canvas) line(x1, y1, x2, y2 int, stroke drawing.Color, width float64, dash ...float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.SetStrokeDashArray(dash)
	c.r.MoveTo(x1, y1)
	c.r.LineTo(x2, y2)
	c.r.Stroke()
	c.r.SetStrokeDashArray(nil)
}

func (c *canvas) circle(x, y int, radius float64, fill, stroke drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.Circle(radius, x, y)
	c.r.FillStroke()
}

func (c *canvas) text(s string, x, y int, size float64, col drawing.Color, a align) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	switch a {
	case alignCenter:
		x -= c.r.MeasureText(s).Width() / 2
	case alignRight:
		x -= c.r.MeasureText(s).Width()
	}
	c.r.Text(s, x, y)
}

// valueAxis draws a left-hand numeric axis with grid lines and returns the
// value-to-pixel mapping.
func (c *canvas) valueAxis(lo, hi float64, name string) func(float64) int {
	ticks := niceTicks(lo, hi, 6)
	if len(ticks) >= 2 {
		lo, hi = ticks[0], ticks[len(ticks)-1]
	}
	if hi == lo {
		hi = lo + 1
	}
	scale := func(v float64) int {
		frac := (v - lo) / (hi - lo)
		return c.plot.Bottom - int(math.Round(frac*float64(c.plot.Height())))
	}

	for _, t := range ticks {
		y := scale(t)
		c.line(c.plot.Left, y, c.plot.Right, y, colorGrid, 1)
		c.line(c.plot.Left-4, y, c.plot.Left, y, colorAxis, 1)
		c.text(formatTick(t), c.plot.Left-8, y+4, tickFontSize, colorText, alignRight)
	}
	c.line(c.plot.Left, c.plot.Top, c.plot.Left, c.plot.Bottom, colorAxis, 1)

	if name != "" {
		// Measure before rotating; the rotated string runs bottom to top.
		c.r.SetFontSize(labelFontSize)
		c.r.SetFontColor(colorText)
		w := c.r.MeasureText(name).Width()
		c.r.SetTextRotation(-math.Pi / 2)
		c.r.Text(name, 20, (c.plot.Top+c.plot.Bottom)/2+w/2)
		c.r.ClearTextRotation()
	}
	return scale
}

// categoryAxis draws the bottom axis with one slot per label and returns the
// slot centres and width.
func (c *canvas) categoryAxis(labels []string, name string) ([]int, int) {
	c.line(c.plot.Left, c.plot.Bottom, c.plot.Right, c.plot.Bottom, colorAxis, 1)
	if len(labels) == 0 {
		return nil, 0
	}

	slot := c.plot.Width() / len(labels)
	centres := make([]int, len(labels))
	for i, l := range labels {
		x := c.plot.Left + slot*i + slot/2
		centres[i] = x
		c.line(x, c.plot.Bottom, x, c.plot.Bottom+4, colorAxis, 1)
		c.text(l, x, c.plot.Bottom+18, tickFontSize, colorText, alignCenter)
	}
	if name != "" {
		c.text(name, (c.plot.Left+c.plot.Right)/2, c.height-16, labelFontSize, colorText, alignCenter)
	}
	return centres, slot
}

func (c *canvas) png() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
