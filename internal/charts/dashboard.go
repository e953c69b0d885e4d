package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sales-dashboard/internal/models"
)

const (
	dashboardTitleHeight = 48
	dashboardTitleGap    = 22
	dashboardMargin      = 16
)

// DashboardData is what the four dashboard panels plot.
type DashboardData struct {
	ProductSales []models.CategorySales
	RegionSales  []models.CategorySales
	Products     []models.Distribution
	Trend        []models.TrendPoint
	HasTrend     bool
}

// Dashboard lays the product pie, region bars, product boxes and the sales
// trend out on a 2x2 grid. Without a trend the last cell stays empty.
func Dashboard(d DashboardData, size Size) ([]byte, error) {
	cellW := (size.Width - 3*dashboardMargin) / 2
	cellH := (size.Height - dashboardTitleHeight - 2*dashboardTitleGap - dashboardMargin) / 2
	panel := Frame{Size: Size{Width: cellW, Height: cellH}, Panel: true}

	renderers := [4]func() ([]byte, error){
		func() ([]byte, error) { return Pie(d.ProductSales, panel) },
		func() ([]byte, error) { return Bar(d.RegionSales, panel) },
		func() ([]byte, error) { return BoxPlot(d.Products, panel) },
		nil,
	}
	if d.HasTrend {
		renderers[3] = func() ([]byte, error) { return Line(d.Trend, panel) }
	}

	canvas := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	drawCentered(canvas, TitleDashboard, size.Width/2, 30)

	for i, renderPanel := range renderers {
		row, col := i/2, i%2
		x := dashboardMargin + col*(cellW+dashboardMargin)
		y := dashboardTitleHeight + row*(cellH+dashboardTitleGap) + dashboardTitleGap

		drawCentered(canvas, DashboardPanels[i], x+cellW/2, y-6)
		cell := image.Rect(x, y, x+cellW, y+cellH)

		if renderPanel == nil {
			draw.Draw(canvas, cell, image.NewUniform(colorPanel), image.Point{}, draw.Src)
			continue
		}

		data, err := renderPanel()
		if err != nil {
			return nil, fmt.Errorf("dashboard panel %q: %w", DashboardPanels[i], err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode panel %q: %w", DashboardPanels[i], err)
		}
		draw.Draw(canvas, cell, img, img.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered writes text with its baseline at y, centred on x.
func drawCentered(dst draw.Image, text string, x, y int) {
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorText),
		Face: basicfont.Face7x13,
	}
	w := dr.MeasureString(text).Ceil()
	dr.Dot = fixed.Point26_6{X: fixed.I(x - w/2), Y: fixed.I(y)}
	dr.DrawString(text)
}
