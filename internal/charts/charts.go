// Package charts renders the sales figures as PNG images with go-chart.
package charts

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"sales-dashboard/internal/models"
)

// Size is a figure size in pixels.
type Size struct {
	Width  int
	Height int
}

var (
	// FigureSize matches an 8x6 inch figure at 100 dpi.
	FigureSize    = Size{Width: 800, Height: 600}
	DashboardSize = Size{Width: 1000, Height: 800}
)

// Titles and axis labels shared by the standalone figures and the dashboard.
const (
	TitleBox       = "Total Sales Distribution by Product"
	TitleViolin    = "Total Sales Distribution by Region"
	TitleHeatmap   = "Correlation Heatmap"
	TitlePie       = "Total Sales by Product"
	TitleBar       = "Total Sales by Region"
	TitleLine      = "Sales Trend Over Time"
	TitleDashboard = "Interactive Sales Dashboard"

	labelProduct    = "Product"
	labelRegion     = "Region"
	labelTotalSales = "Total Sales"
	labelDate       = "Date"
)

// Dashboard subplot titles, row by row.
var DashboardPanels = [4]string{
	"Sales by Product",
	"Sales by Region",
	"Sales Distribution by Product",
	"Sales Trend Over Time",
}

func render(name string, fn func(*bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}}
}

func dateFormatter(points []models.TrendPoint) chart.ValueFormatter {
	layout := "2006-01-02"
	if len(points) > 1 {
		span := points[len(points)-1].Date.Sub(points[0].Date)
		if span > 2*365*24*time.Hour {
			layout = "2006-01"
		}
	}
	return chart.TimeValueFormatterWithFormat(layout)
}
