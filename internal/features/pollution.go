package features

import "math"

// Positions of the pollution schema's numeric fields within Sample.Values.
const (
	pollutionPV = iota
	pollutionBattery
	pollutionSOC
	pollutionLoad
	pollutionDifference
)

// Aggregate columns are named by concatenating the source field and the
// aggregation function.
var pollutionColumns = []string{
	"PV(W)_sum",
	"PV(W)_mean",
	"PV(W)_std",
	"PV(W)_max",
	"Battery(W)_mean",
	"SOC(%)_mean",
	"Load(W)_mean",
	"Difference_mean",
	"Difference_std",
	"Difference_min",
	"diff_mean_30d_avg",
}

const (
	rollingWindow     = 30
	rollingMinPeriods = 15
)

// PollutionExtractor derives daily aggregates of the plant's electrical state
// plus a trailing rolling mean of the daily output/baseline difference. A
// slow drift of that rolling mean is the signature of gradual soiling. Days
// with any missing aggregate, including the rolling mean during the warm-up
// window, are dropped rather than null-filled.
type PollutionExtractor struct{}

func (PollutionExtractor) Name() string { return "pollution" }

func (PollutionExtractor) Schema() Schema {
	return Schema{Fields: []Field{
		{Name: "Timestamp", Kind: FieldTimestamp},
		{Name: "PV(W)", Kind: FieldNumeric},
		{Name: "Battery(W)", Kind: FieldNumeric},
		{Name: "SOC(%)", Kind: FieldNumeric},
		{Name: "Load(W)", Kind: FieldNumeric},
		{Name: "Difference", Kind: FieldNumeric},
	}}
}

func (PollutionExtractor) Build(samples []Sample) (*Table, error) {
	groups := GroupByDate(samples)
	if len(groups) == 0 {
		return nil, nil
	}

	table := NewTable(pollutionColumns)
	diffMeans := make([]float64, 0, len(groups))

	for _, group := range groups {
		n := len(group.Samples)
		pv := make([]float64, n)
		battery := make([]float64, n)
		soc := make([]float64, n)
		load := make([]float64, n)
		difference := make([]float64, n)
		for i, s := range group.Samples {
			pv[i] = s.Values[pollutionPV]
			battery[i] = s.Values[pollutionBattery]
			soc[i] = s.Values[pollutionSOC]
			load[i] = s.Values[pollutionLoad]
			difference[i] = s.Values[pollutionDifference]
		}

		diffMean := nanMean(difference)
		diffMeans = append(diffMeans, diffMean)

		table.AddRow(group.Date, []float64{
			nanSum(pv),
			nanMean(pv),
			nanStdDev(pv),
			nanMax(pv),
			nanMean(battery),
			nanMean(soc),
			nanMean(load),
			diffMean,
			nanStdDev(difference),
			nanMin(difference),
			math.NaN(), // rolling mean filled below
		})
	}

	rolling := rollingMean(diffMeans, rollingWindow, rollingMinPeriods)
	rollingCol := len(pollutionColumns) - 1
	for i := range table.Rows {
		table.Rows[i][rollingCol] = rolling[i]
	}

	clean := table.DropNaNRows()
	if clean.Len() == 0 {
		return nil, nil
	}
	return clean, nil
}

// rollingMean computes a trailing rolling mean over the previous window
// values (the current one included). Positions with fewer than minPeriods
// non-NaN values in the window yield NaN.
func rollingMean(xs []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		var sum float64
		var count int
		for _, v := range xs[start : i+1] {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}

		if count < minPeriods {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(count)
		}
	}
	return out
}
