package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/charts"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// Gallery renders and holds the figures shown by the viewer.
type Gallery struct {
	mu      sync.RWMutex
	figures []models.Figure
	index   map[string]int
	builtAt time.Time

	workers int
	logger  *slog.Logger
}

type figureJob struct {
	kind   models.FigureKind
	title  string
	size   charts.Size
	table  *models.Table
	render func() ([]byte, error)
}

func NewGallery(workers int, logger *slog.Logger) *Gallery {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gallery{
		index:   make(map[string]int),
		workers: workers,
		logger:  logger,
	}
}

// Build renders every figure for the analytics data. Figures render
// concurrently but are kept in display order; the first failure cancels the
// rest and nothing is replaced.
func (g *Gallery) Build(ctx context.Context, a *Analytics) error {
	ctx, span := observability.StartSpan(ctx, "gallery.build")
	defer span.End(g.logger)

	jobs := plan(a)
	span.SetTag("figures", fmt.Sprint(len(jobs)))

	results := make([]models.Figure, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, job := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, figSpan := observability.StartSpan(ctx, "figure.render")
			figSpan.SetTag("figure", string(job.kind))
			defer figSpan.End(g.logger)

			png, err := job.render()
			if err != nil {
				figSpan.SetError(err)
				return errors.RenderWrap(err, string(job.kind))
			}

			results[i] = models.Figure{
				Name:   string(job.kind),
				Title:  job.title,
				Kind:   job.kind,
				Width:  job.size.Width,
				Height: job.size.Height,
				PNG:    png,
				Table:  job.table,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		span.SetError(err)
		return err
	}

	index := make(map[string]int, len(results))
	for i, f := range results {
		index[f.Name] = i
	}

	g.mu.Lock()
	g.figures = results
	g.index = index
	g.builtAt = time.Now()
	g.mu.Unlock()

	g.logger.Info("figures rendered", "count", len(results))
	return nil
}

// Figures returns the rendered figures in display order.
func (g *Gallery) Figures() []models.Figure {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]models.Figure, len(g.figures))
	copy(out, g.figures)
	return out
}

func (g *Gallery) Figure(name string) (models.Figure, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.index[name]
	if !ok {
		return models.Figure{}, false
	}
	return g.figures[i], true
}

func (g *Gallery) BuiltAt() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.builtAt
}

// plan reads every aggregate up front so the render jobs share no state
// with the analytics service.
func plan(a *Analytics) []figureJob {
	products := a.ProductSales()
	regions := a.RegionSales()
	productDists := a.ProductDistributions()
	regionDists := a.RegionDistributions()
	matrix := a.Correlation()
	trend, hasTrend := a.SalesTrend()

	frame := func(title string) charts.Frame {
		return charts.Frame{Size: charts.FigureSize, Title: title}
	}

	jobs := []figureJob{
		{
			kind: models.KindBox, title: charts.TitleBox, size: charts.FigureSize,
			render: func() ([]byte, error) { return charts.BoxPlot(productDists, frame(charts.TitleBox)) },
		},
		{
			kind: models.KindViolin, title: charts.TitleViolin, size: charts.FigureSize,
			render: func() ([]byte, error) { return charts.Violin(regionDists, frame(charts.TitleViolin)) },
		},
		{
			kind: models.KindHeatmap, title: charts.TitleHeatmap, size: charts.FigureSize,
			render: func() ([]byte, error) { return charts.Heatmap(matrix, frame(charts.TitleHeatmap)) },
		},
		{
			kind: models.KindPie, title: charts.TitlePie, size: charts.FigureSize,
			table:  salesTable(models.ColumnProduct, products),
			render: func() ([]byte, error) { return charts.Pie(products, frame(charts.TitlePie)) },
		},
		{
			kind: models.KindBar, title: charts.TitleBar, size: charts.FigureSize,
			table:  salesTable(models.ColumnRegion, regions),
			render: func() ([]byte, error) { return charts.Bar(regions, frame(charts.TitleBar)) },
		},
	}

	if hasTrend {
		jobs = append(jobs, figureJob{
			kind: models.KindLine, title: charts.TitleLine, size: charts.FigureSize,
			table:  trendTable(trend),
			render: func() ([]byte, error) { return charts.Line(trend, frame(charts.TitleLine)) },
		})
	}

	dashboard := charts.DashboardData{
		ProductSales: products,
		RegionSales:  regions,
		Products:     productDists,
		Trend:        trend,
		HasTrend:     hasTrend,
	}
	jobs = append(jobs, figureJob{
		kind: models.KindDashboard, title: charts.TitleDashboard, size: charts.DashboardSize,
		render: func() ([]byte, error) { return charts.Dashboard(dashboard, charts.DashboardSize) },
	})
	return jobs
}

func salesTable(key string, sales []models.CategorySales) *models.Table {
	total := 0.0
	for _, s := range sales {
		total += s.TotalSales
	}

	t := &models.Table{Headers: []string{key, models.ColumnTotalSales, "Share"}}
	for _, s := range sales {
		share := "-"
		if total != 0 {
			share = fmt.Sprintf("%.1f%%", 100*s.TotalSales/total)
		}
		t.Rows = append(t.Rows, []string{s.Category, fmt.Sprintf("%.2f", s.TotalSales), share})
	}
	return t
}

func trendTable(points []models.TrendPoint) *models.Table {
	t := &models.Table{Headers: []string{models.ColumnDate, models.ColumnTotalSales}}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{formatDate(p.Date), fmt.Sprintf("%.2f", p.TotalSales)})
	}
	return t
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
