package features

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistical helpers shared by the extractors. Missing readings (NaN cells)
// are skipped by every aggregation, so a day with a gap is aggregated over
// its remaining readings. Standard deviations are sample standard deviations
// (n-1 denominator); fewer than two readings yield NaN, which survives into
// the feature table and is rendered as an empty cell.

// dropNaN returns the non-NaN values of xs.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// nanSum returns the sum of the non-NaN values of xs; 0 if there are none.
func nanSum(xs []float64) float64 {
	return floats.Sum(dropNaN(xs))
}

// nanMean returns the mean of the non-NaN values of xs; NaN if there are none.
func nanMean(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// nanStdDev returns the sample standard deviation of the non-NaN values of
// xs; NaN when fewer than two remain.
func nanStdDev(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

// nanMax returns the largest non-NaN value of xs; NaN if there are none.
func nanMax(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Max(v)
}

// nanMin returns the smallest non-NaN value of xs; NaN if there are none.
func nanMin(xs []float64) float64 {
	v := dropNaN(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Min(v)
}

// diff returns the successive-row differences of xs. The first element has
// no predecessor and is treated as 0 rather than omitted; a delta touching a
// missing reading is likewise 0.
func diff(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if math.IsNaN(d) {
			d = 0
		}
		out[i] = d
	}
	return out
}

// argmaxAbs returns the index of the element with the largest absolute value.
func argmaxAbs(xs []float64) int {
	idx := 0
	best := math.Abs(xs[0])
	for i, v := range xs {
		if a := math.Abs(v); a > best {
			best = a
			idx = i
		}
	}
	return idx
}

// nanMinMax returns the minimum and maximum of xs ignoring NaN values.
// ok is false when xs holds no finite-comparable value at all.
func nanMinMax(xs []float64) (min, max float64, ok bool) {
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			min, max = v, v
			ok = true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// timestampLayouts lists the timestamp formats accepted in differences files.
// Inverter exports vary between ISO-style and German day-first forms.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
}

// parseTimestamp parses a differences-file timestamp.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseValue parses a numeric cell. An empty cell is a missing measurement
// and maps to NaN rather than an error.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable value %q", s)
	}
	return v, nil
}
