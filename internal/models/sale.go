package models

import "time"

// Column names expected in the sales CSV after header trimming.
const (
	ColumnProduct    = "Product"
	ColumnRegion     = "Region"
	ColumnDate       = "Date"
	ColumnQuantity   = "Quantity"
	ColumnPrice      = "Price"
	ColumnTotalSales = "Total_Sales"
)

// RequiredColumns must be present for a dataset to load.
var RequiredColumns = []string{ColumnProduct, ColumnRegion, ColumnTotalSales}

// Sale is one row of the sales CSV. Missing numerics are NaN.
type Sale struct {
	Product    string
	Region     string
	Date       time.Time
	HasDate    bool
	Quantity   float64
	Price      float64
	TotalSales float64
}

type Dataset struct {
	Columns []string
	Rows    [][]string
	Records []Sale

	// NumericColumns keeps header order; Numeric holds the parsed values
	// with NaN for empty cells.
	NumericColumns []string
	Numeric        map[string][]float64

	HasDate bool
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
