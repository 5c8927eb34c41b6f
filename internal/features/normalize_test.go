package features

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= epsilon
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		rows     [][]float64
		expected [][]float64
		epsilon  float64
	}{
		{
			name:    "rescales to unit range",
			columns: []string{"a", "b"},
			rows: [][]float64{
				{10, 1},
				{20, 3},
				{30, 2},
			},
			expected: [][]float64{
				{0, 0},
				{0.5, 1},
				{1, 0.5},
			},
			epsilon: 1e-12,
		},
		{
			name:    "constant column becomes zero",
			columns: []string{"a", "b"},
			rows: [][]float64{
				{7, 1},
				{7, 2},
			},
			expected: [][]float64{
				{0, 0},
				{0, 1},
			},
			epsilon: 1e-12,
		},
		{
			name:    "all NaN column becomes zero",
			columns: []string{"a"},
			rows: [][]float64{
				{math.NaN()},
				{math.NaN()},
			},
			expected: [][]float64{
				{0},
				{0},
			},
			epsilon: 1e-12,
		},
		{
			name:    "NaN cells survive, min and max ignore them",
			columns: []string{"a"},
			rows: [][]float64{
				{1},
				{math.NaN()},
				{3},
			},
			expected: [][]float64{
				{0},
				{math.NaN()},
				{1},
			},
			epsilon: 1e-12,
		},
		{
			name:    "single row becomes zero",
			columns: []string{"a", "b"},
			rows: [][]float64{
				{42, -3},
			},
			expected: [][]float64{
				{0, 0},
			},
			epsilon: 1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.columns)
			for _, row := range tt.rows {
				table.AddRow("2024-01-01", row)
			}

			result := Normalize(table)

			if result.Len() != len(tt.expected) {
				t.Fatalf("expected %d rows, got %d", len(tt.expected), result.Len())
			}
			for i, row := range result.Rows {
				for j, v := range row {
					if !almostEqual(v, tt.expected[i][j], tt.epsilon) {
						t.Errorf("row %d column %s: expected %v, got %v",
							i, tt.columns[j], tt.expected[i][j], v)
					}
				}
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.AddRow("2024-01-01", []float64{10, 5})
	table.AddRow("2024-01-02", []float64{20, 5})
	table.AddRow("2024-01-03", []float64{15, 5})

	once := Normalize(table)
	twice := Normalize(once)

	for i := range once.Rows {
		for j := range once.Rows[i] {
			if !almostEqual(once.Rows[i][j], twice.Rows[i][j], 1e-12) {
				t.Errorf("row %d column %d: %v changed to %v on second normalization",
					i, j, once.Rows[i][j], twice.Rows[i][j])
			}
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	table := NewTable([]string{"a"})
	table.AddRow("2024-01-01", []float64{10})
	table.AddRow("2024-01-02", []float64{20})

	Normalize(table)

	if table.Rows[0][0] != 10 || table.Rows[1][0] != 20 {
		t.Errorf("input table was mutated: %v", table.Rows)
	}
}

func TestNormalizeLeavesDateIndexUntouched(t *testing.T) {
	table := NewTable([]string{"a"})
	table.AddRow("2024-01-01", []float64{1})
	table.AddRow("2024-01-02", []float64{2})

	result := Normalize(table)

	if result.Dates[0] != "2024-01-01" || result.Dates[1] != "2024-01-02" {
		t.Errorf("date index changed: %v", result.Dates)
	}
}
