package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/stats"
)

type Analytics struct {
	mu       sync.RWMutex
	data     *models.Dataset
	csvPath  string
	loadedAt time.Time
	logger   *slog.Logger
}

func NewAnalytics(logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		data:   &models.Dataset{Numeric: map[string][]float64{}},
		logger: logger,
	}
}

func (a *Analytics) SetData(ds *models.Dataset) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data = ds
	a.loadedAt = time.Now()
}

func (a *Analytics) Dataset() *models.Dataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	ctx, span := observability.StartSpan(ctx, "dataset.load")
	span.SetTag("filename", filename)
	defer span.End(a.logger)

	start := time.Now()
	a.logger.Info("loading CSV file", "filename", filename)

	ds, err := dataset.Load(ctx, filename)
	if err != nil {
		span.SetError(err)
		return fmt.Errorf("load csv: %w", err)
	}

	a.mu.Lock()
	a.data = ds
	a.csvPath = filename
	a.loadedAt = time.Now()
	a.mu.Unlock()

	a.logger.Info("csv loaded",
		"records", ds.Len(),
		"columns", len(ds.Columns),
		"numeric_columns", ds.NumericColumns,
		"has_date", ds.HasDate,
		"duration", time.Since(start))

	return nil
}

// HasDate reports whether the dataset carries a Date column.
func (a *Analytics) HasDate() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data.HasDate
}

// ProductSales sums Total_Sales per product, ordered by product name.
func (a *Analytics) ProductSales() []models.CategorySales {
	return a.sumBy(func(s models.Sale) string { return s.Product })
}

// RegionSales sums Total_Sales per region, ordered by region name.
func (a *Analytics) RegionSales() []models.CategorySales {
	return a.sumBy(func(s models.Sale) string { return s.Region })
}

func (a *Analytics) sumBy(key func(models.Sale) string) []models.CategorySales {
	a.mu.RLock()
	defer a.mu.RUnlock()

	groups := make(map[string]float64)
	for _, sale := range a.data.Records {
		k := key(sale)
		if k == "" {
			continue
		}
		total := groups[k]
		if !math.IsNaN(sale.TotalSales) {
			total += sale.TotalSales
		}
		groups[k] = total
	}

	result := make([]models.CategorySales, 0, len(groups))
	for k, v := range groups {
		result = append(result, models.CategorySales{Category: k, TotalSales: v})
	}
	slices.SortFunc(result, func(a, b models.CategorySales) int {
		return strings.Compare(a.Category, b.Category)
	})
	return result
}

// SalesTrend sums Total_Sales per timestamp in ascending order. The second
// result is false when the dataset has no Date column.
func (a *Analytics) SalesTrend() ([]models.TrendPoint, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.data.HasDate {
		return nil, false
	}

	// Keyed by instant: time.Time equality also compares the *Location,
	// and every parsed non-hour offset gets its own zone.
	index := make(map[int64]int)
	result := make([]models.TrendPoint, 0)
	for _, sale := range a.data.Records {
		if !sale.HasDate {
			continue
		}
		key := sale.Date.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(result)
			index[key] = i
			result = append(result, models.TrendPoint{Date: sale.Date})
		}
		if !math.IsNaN(sale.TotalSales) {
			result[i].TotalSales += sale.TotalSales
		}
	}

	slices.SortFunc(result, func(a, b models.TrendPoint) int {
		return a.Date.Compare(b.Date)
	})
	return result, true
}

// ProductDistributions groups Total_Sales values by product in order of
// first appearance.
func (a *Analytics) ProductDistributions() []models.Distribution {
	return a.distributionsBy(func(s models.Sale) string { return s.Product })
}

// RegionDistributions groups Total_Sales values by region in order of
// first appearance.
func (a *Analytics) RegionDistributions() []models.Distribution {
	return a.distributionsBy(func(s models.Sale) string { return s.Region })
}

func (a *Analytics) distributionsBy(key func(models.Sale) string) []models.Distribution {
	a.mu.RLock()
	defer a.mu.RUnlock()

	index := make(map[string]int)
	var result []models.Distribution
	for _, sale := range a.data.Records {
		k := key(sale)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(result)
			index[k] = i
			result = append(result, models.Distribution{Category: k})
		}
		if !math.IsNaN(sale.TotalSales) {
			result[i].Values = append(result[i].Values, sale.TotalSales)
		}
	}

	for i := range result {
		result[i].Box = stats.Box(result[i].Values)
	}
	return result
}

// Correlation is the Pearson matrix over every numeric column.
func (a *Analytics) Correlation() models.CorrelationMatrix {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return stats.Correlation(a.data.NumericColumns, a.data.Numeric)
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	products := make(map[string]struct{})
	regions := make(map[string]struct{})
	for _, sale := range a.data.Records {
		products[sale.Product] = struct{}{}
		regions[sale.Region] = struct{}{}
	}
	delete(products, "")
	delete(regions, "")

	return map[string]any{
		"csv_path":        a.csvPath,
		"record_count":    a.data.Len(),
		"last_loaded":     a.loadedAt,
		"columns":         a.data.Columns,
		"numeric_columns": a.data.NumericColumns,
		"has_date":        a.data.HasDate,
		"products":        len(products),
		"regions":         len(regions),
	}
}
