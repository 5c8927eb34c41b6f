package features

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// dateLayout is the calendar-date format used as the feature table row index.
const dateLayout = "2006-01-02"

// Table is a date-indexed feature table for one plant: one row per calendar
// day, one column per feature. The date index is not a numeric column and is
// never touched by normalization. NaN cells are rendered as empty strings on
// output, matching the convention of the upstream differences files.
type Table struct {
	Columns []string
	Dates   []string
	Rows    [][]float64
}

// NewTable returns an empty table with the given feature columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// AddRow appends one feature row keyed by date. The number of values must
// match the table's columns.
func (t *Table) AddRow(date string, values []float64) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("table %d columns, row has %d values", len(t.Columns), len(values)))
	}
	t.Dates = append(t.Dates, date)
	t.Rows = append(t.Rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the values of the named column, or nil if absent.
func (t *Table) Column(name string) []float64 {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			out[i] = row[j]
		}
		return out
	}
	return nil
}

// DropNaNRows returns a new table containing only the rows with no NaN cell.
func (t *Table) DropNaNRows() *Table {
	clean := NewTable(t.Columns)
	for i, row := range t.Rows {
		keep := true
		for _, v := range row {
			if math.IsNaN(v) {
				keep = false
				break
			}
		}
		if keep {
			clean.AddRow(t.Dates[i], row)
		}
	}
	return clean
}

// WriteCSV writes the table to path: a header of "date" plus the feature
// columns, then one row per date. NaN cells are written empty.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating feature file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"date"}, t.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(t.Columns)+1)
	for i, row := range t.Rows {
		record[0] = t.Dates[i]
		for j, v := range row {
			if math.IsNaN(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
