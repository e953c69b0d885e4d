// Package dataset reads the sales CSV into a models.Dataset.
package dataset

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// checkEvery is how many rows are read between context checks.
const checkEvery = 1024

// naValues are the cell spellings treated as missing. Matching is exact.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var dateLayouts = []string{
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006/1/2",
	"2006/01/02 15:04:05",
	"2006.01.02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2006-01",
}

func isNA(cell string) bool {
	_, ok := naValues[cell]
	return ok
}

// Load opens path and reads it with Read.
func Load(ctx context.Context, path string) (*models.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.InternalWrap(err, "open dataset")
	}
	defer file.Close()

	return Read(ctx, file)
}

// Read parses CSV data with a header row. Column names are trimmed of
// surrounding whitespace; cells are kept as written.
func Read(ctx context.Context, r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.EmptyDataset("file has no header row")
	}
	if err != nil {
		return nil, errors.InvalidValue(err, "read header")
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}
	for _, required := range models.RequiredColumns {
		if _, ok := index[required]; !ok {
			return nil, errors.MissingColumn(required).WithDetails("columns: %v", columns)
		}
	}

	var rows [][]string
	for line := 2; ; line++ {
		if line%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.InvalidValue(err, "read row")
		}
		if len(row) > len(columns) {
			return nil, errors.New(errors.CodeInvalidValue, "too many fields").
				WithDetails("line %d: expected %d fields, saw %d", line, len(columns), len(row))
		}
		for len(row) < len(columns) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.EmptyDataset("no data rows")
	}

	ds := &models.Dataset{
		Columns: columns,
		Rows:    rows,
		Numeric: make(map[string][]float64),
	}

	for i, c := range columns {
		if index[c] != i {
			continue
		}
		if values, ok := parseNumericColumn(rows, i); ok {
			ds.NumericColumns = append(ds.NumericColumns, c)
			ds.Numeric[c] = values
		}
	}

	if _, ok := ds.Numeric[models.ColumnTotalSales]; !ok {
		row, cell := firstNonNumeric(rows, index[models.ColumnTotalSales])
		return nil, errors.New(errors.CodeInvalidValue, "Total_Sales is not numeric").
			WithDetails("row %d: %q", row, cell)
	}

	dateIdx, hasDate := index[models.ColumnDate]
	ds.HasDate = hasDate

	ds.Records = make([]models.Sale, len(rows))
	for i, row := range rows {
		sale := models.Sale{
			Product:    category(row[index[models.ColumnProduct]]),
			Region:     category(row[index[models.ColumnRegion]]),
			TotalSales: ds.Numeric[models.ColumnTotalSales][i],
			Quantity:   optionalNumeric(ds, models.ColumnQuantity, i),
			Price:      optionalNumeric(ds, models.ColumnPrice, i),
		}

		if hasDate && !isNA(row[dateIdx]) {
			t, err := ParseDate(row[dateIdx])
			if err != nil {
				return nil, errors.InvalidValue(err, "parse Date").WithDetails("row %d: %q", i, row[dateIdx])
			}
			sale.Date = t
			sale.HasDate = true
		}

		ds.Records[i] = sale
	}

	return ds, nil
}

// ParseDate accepts the common date spellings found in sales exports.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// parseNumericColumn succeeds when every non-missing cell is a number.
// A column with no values at all is numeric.
func parseNumericColumn(rows [][]string, col int) ([]float64, bool) {
	values := make([]float64, len(rows))
	for i, row := range rows {
		cell := row[col]
		if isNA(cell) {
			values[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, false
		}
		values[i] = f
	}
	return values, true
}

func firstNonNumeric(rows [][]string, col int) (int, string) {
	for i, row := range rows {
		if isNA(row[col]) {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err != nil {
			return i, row[col]
		}
	}
	return -1, ""
}

func category(cell string) string {
	if isNA(cell) {
		return ""
	}
	return cell
}

func optionalNumeric(ds *models.Dataset, column string, row int) float64 {
	values, ok := ds.Numeric[column]
	if !ok {
		return math.NaN()
	}
	return values[row]
}
