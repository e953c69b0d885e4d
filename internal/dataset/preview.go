package dataset

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sales-dashboard/internal/models"
)

// Preview prints the column index followed by the first n rows, each
// prefixed with its zero-based index.
func Preview(w io.Writer, ds *models.Dataset, n int) error {
	if _, err := fmt.Fprintln(w, columnIndex(ds.Columns)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(ds.Columns, "\t"))

	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	for i := 0; i < n; i++ {
		cells := make([]string, len(ds.Rows[i]))
		for j, cell := range ds.Rows[i] {
			if isNA(cell) {
				cell = "NaN"
			}
			cells[j] = cell
		}
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// columnIndex spells the header the way a pandas column Index prints.
func columnIndex(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		c = strings.ReplaceAll(c, `\`, `\\`)
		quoted[i] = "'" + strings.ReplaceAll(c, "'", `\'`) + "'"
	}
	return fmt.Sprintf("Index([%s], dtype='object')", strings.Join(quoted, ", "))
}
