package features

import "math"

// Normalize rescales every feature column of t independently to the [0, 1]
// range using (value - min) / (max - min), returning a new table. The input
// table is not modified. Column min and max ignore NaN cells, and NaN cells
// stay NaN. A column with zero range, including an all-NaN or single-value
// column, becomes the constant 0.0. The date index is left untouched.
//
// Normalizing an already-normalized table is a no-op modulo floating-point
// rounding: a [0, 1] column has min 0 and max 1 and maps onto itself.
func Normalize(t *Table) *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Dates:   append([]string(nil), t.Dates...),
		Rows:    make([][]float64, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]float64(nil), row...)
	}

	for j := range out.Columns {
		col := make([]float64, len(out.Rows))
		for i, row := range out.Rows {
			col[i] = row[j]
		}

		min, max, ok := nanMinMax(col)
		if !ok || max == min {
			for _, row := range out.Rows {
				row[j] = 0.0
			}
			continue
		}

		span := max - min
		for _, row := range out.Rows {
			if math.IsNaN(row[j]) {
				continue
			}
			row[j] = (row[j] - min) / span
		}
	}

	return out
}
