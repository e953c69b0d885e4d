package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const testCSV = `Product,Region,Date,Quantity,Price,Total_Sales
Laptop,North,2024-01-05,2,500,1000
Mouse,South,2024-01-05,10,20,200
Laptop,South,2024-01-06,1,550,550
Keyboard,North,2024-01-07,3,40,120
Mouse,East,2024-01-07,5,20,
`

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDataset(t testing.TB, content string) *models.Dataset {
	t.Helper()
	ds, err := dataset.Read(context.Background(), strings.NewReader(content))
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	return ds
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics(nil)
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.data == nil {
		t.Error("data should be initialized")
	}
	if a.logger == nil {
		t.Error("logger should be initialized")
	}
}

func TestAnalytics_LoadFromCSV_ValidData(t *testing.T) {
	a := NewAnalytics(nil)
	path := createTempCSV(t, testCSV)

	if err := a.LoadFromCSV(context.Background(), path); err != nil {
		t.Fatalf("LoadFromCSV() error = %v", err)
	}
	if got := a.Dataset().Len(); got != 5 {
		t.Errorf("expected 5 records, got %d", got)
	}
	if !a.HasDate() {
		t.Error("expected dataset to carry a Date column")
	}

	stats := a.Stats()
	if stats["csv_path"] != path {
		t.Errorf("csv_path = %v, want %s", stats["csv_path"], path)
	}
	if stats["products"] != 3 || stats["regions"] != 3 {
		t.Errorf("unexpected category counts: products=%v regions=%v", stats["products"], stats["regions"])
	}
}

func TestAnalytics_LoadFromCSV_InvalidData(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{
			name:    "missing total sales column",
			content: "Product,Region\nLaptop,North\n",
			code:    errors.CodeMissingColumn,
		},
		{
			name:    "non-numeric total sales",
			content: "Product,Region,Total_Sales\nLaptop,North,lots\n",
			code:    errors.CodeInvalidValue,
		},
		{
			name:    "header only",
			content: "Product,Region,Total_Sales\n",
			code:    errors.CodeEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalytics(nil)
			err := a.LoadFromCSV(context.Background(), createTempCSV(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected code %s, got %v", tt.code, err)
			}
			if a.Dataset().Len() != 0 {
				t.Error("failed load must not replace the dataset")
			}
		})
	}
}

func TestAnalytics_LoadFromCSV_MissingFile(t *testing.T) {
	a := NewAnalytics(nil)
	err := a.LoadFromCSV(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.HasCode(err, errors.CodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestAnalytics_ProductSales(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	got := a.ProductSales()
	want := []models.CategorySales{
		{Category: "Keyboard", TotalSales: 120},
		{Category: "Laptop", TotalSales: 1550},
		{Category: "Mouse", TotalSales: 200},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ProductSales()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAnalytics_RegionSales(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	got := a.RegionSales()
	want := map[string]float64{"East": 0, "North": 1120, "South": 750}
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(got))
	}
	for _, r := range got {
		if r.TotalSales != want[r.Category] {
			t.Errorf("region %s: got %v, want %v", r.Category, r.TotalSales, want[r.Category])
		}
	}
	if got[0].Category != "East" || got[2].Category != "South" {
		t.Error("RegionSales() should be ordered by region name")
	}
}

func TestAnalytics_GroupSumsMatchTotal(t *testing.T) {
	a := NewAnalytics(nil)
	ds := mustDataset(t, testCSV)
	a.SetData(ds)

	total := 0.0
	for _, s := range ds.Records {
		if !math.IsNaN(s.TotalSales) {
			total += s.TotalSales
		}
	}

	for name, groups := range map[string][]models.CategorySales{
		"product": a.ProductSales(),
		"region":  a.RegionSales(),
	} {
		sum := 0.0
		for _, g := range groups {
			sum += g.TotalSales
		}
		if math.Abs(sum-total) > 1e-9 {
			t.Errorf("%s sums to %v, want %v", name, sum, total)
		}
	}
}

func TestAnalytics_SalesTrend(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	trend, ok := a.SalesTrend()
	if !ok {
		t.Fatal("expected a trend for a dataset with dates")
	}

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	want := []models.TrendPoint{
		{Date: day(5), TotalSales: 1200},
		{Date: day(6), TotalSales: 550},
		{Date: day(7), TotalSales: 120},
	}
	if len(trend) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(trend))
	}
	for i := range want {
		if !trend[i].Date.Equal(want[i].Date) || trend[i].TotalSales != want[i].TotalSales {
			t.Errorf("trend[%d] = %+v, want %+v", i, trend[i], want[i])
		}
	}
}

func TestAnalytics_SalesTrend_NoDateColumn(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, "Product,Region,Total_Sales\nLaptop,North,10\n"))

	trend, ok := a.SalesTrend()
	if ok || trend != nil {
		t.Errorf("expected no trend, got %v %v", trend, ok)
	}
}

func TestAnalytics_SalesTrend_SameInstantDifferentZones(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, `Product,Region,Date,Total_Sales
Laptop,North,2024-01-05T10:00:00+05:30,10
Mouse,South,2024-01-05T04:30:00Z,1
Laptop,South,2024-01-05T10:00:00+05:30,5
`))

	trend, ok := a.SalesTrend()
	if !ok {
		t.Fatal("expected a trend for a dataset with dates")
	}
	if len(trend) != 1 {
		t.Fatalf("expected 1 point, got %d: %v", len(trend), trend)
	}
	want := time.Date(2024, 1, 5, 4, 30, 0, 0, time.UTC)
	if !trend[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", trend[0].Date, want)
	}
	if trend[0].TotalSales != 16 {
		t.Errorf("total = %v, want 16", trend[0].TotalSales)
	}
}

func TestAnalytics_Distributions(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	products := a.ProductDistributions()
	order := []string{"Laptop", "Mouse", "Keyboard"}
	if len(products) != len(order) {
		t.Fatalf("expected %d products, got %d", len(order), len(products))
	}
	for i, name := range order {
		if products[i].Category != name {
			t.Errorf("products[%d] = %s, want %s (first appearance order)", i, products[i].Category, name)
		}
	}
	if got := products[0].Values; len(got) != 2 || got[0] != 1000 || got[1] != 550 {
		t.Errorf("unexpected laptop values %v", got)
	}
	// The empty Total_Sales cell is not a value.
	if got := products[1].Values; len(got) != 1 {
		t.Errorf("expected one mouse value, got %v", got)
	}
	if products[0].Box.Median != 775 {
		t.Errorf("laptop median = %v, want 775", products[0].Box.Median)
	}

	regions := a.RegionDistributions()
	if len(regions) != 3 || regions[0].Category != "North" {
		t.Errorf("unexpected regions %+v", regions)
	}
}

func TestAnalytics_Correlation(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	m := a.Correlation()
	want := []string{"Quantity", "Price", "Total_Sales"}
	if len(m.Labels) != len(want) {
		t.Fatalf("labels = %v, want %v", m.Labels, want)
	}
	for i := range want {
		if m.Labels[i] != want[i] {
			t.Errorf("labels[%d] = %s, want %s", i, m.Labels[i], want[i])
		}
		if math.Abs(m.Values[i][i]-1) > 1e-9 {
			t.Errorf("diagonal[%d] = %v, want 1", i, m.Values[i][i])
		}
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	a := NewAnalytics(nil)
	a.SetData(mustDataset(t, testCSV))

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			_ = a.ProductSales()
			_ = a.RegionSales()
			_, _ = a.SalesTrend()
			_ = a.ProductDistributions()
			_ = a.Correlation()
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestAnalytics_EmptyData(t *testing.T) {
	a := NewAnalytics(nil)

	if got := a.ProductSales(); len(got) != 0 {
		t.Errorf("ProductSales() should be empty, got %d", len(got))
	}
	if got := a.RegionSales(); len(got) != 0 {
		t.Errorf("RegionSales() should be empty, got %d", len(got))
	}
	if _, ok := a.SalesTrend(); ok {
		t.Error("SalesTrend() should report no dates")
	}
	if got := a.ProductDistributions(); len(got) != 0 {
		t.Errorf("ProductDistributions() should be empty, got %d", len(got))
	}
	if got := a.Correlation(); len(got.Labels) != 0 {
		t.Errorf("Correlation() should be empty, got %v", got.Labels)
	}
}

func BenchmarkAnalytics_ProductSales(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Product,Region,Total_Sales\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "Product%d,Region%d,%d\n", i%100, i%7, i*10)
	}

	a := NewAnalytics(nil)
	a.SetData(mustDataset(b, sb.String()))

	b.ResetTimer()
	for b.Loop() {
		_ = a.ProductSales()
	}
}
