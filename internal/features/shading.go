package features

import "math"

// Positions of the shading schema's numeric fields within Sample.Values.
const (
	shadingPV = iota
	shadingMPP1A
	shadingMPP2A
	shadingMPP1V
	shadingMPP2V
)

var shadingColumns = []string{
	"energy_yield_kWh",
	"peak_pv_power_W",
	"delta_std",
	"max_delta_hour",
	"morning_afternoon_ratio",
	"mpp1_a_std",
	"mpp2_a_std",
	"mpp1_v_std",
	"mpp2_v_std",
}

// ShadingExtractor derives nine daily statistics capturing power-output
// volatility patterns indicative of shading: rapid power deltas, the hour at
// which the largest delta occurs, morning/afternoon asymmetry, and the spread
// of the per-string MPP currents and voltages.
type ShadingExtractor struct{}

func (ShadingExtractor) Name() string { return "shading" }

func (ShadingExtractor) Schema() Schema {
	return Schema{Fields: []Field{
		{Name: "Timestamp", Kind: FieldTimestamp},
		{Name: "PV(W)", Kind: FieldNumeric},
		{Name: "MPP1(A)", Kind: FieldNumeric},
		{Name: "MPP2(A)", Kind: FieldNumeric},
		{Name: "MPP1(V)", Kind: FieldNumeric},
		{Name: "MPP2(V)", Kind: FieldNumeric},
	}}
}

func (ShadingExtractor) Build(samples []Sample) (*Table, error) {
	table := NewTable(shadingColumns)

	for _, group := range GroupByDate(samples) {
		if len(group.Samples) == 0 {
			continue
		}

		n := len(group.Samples)
		pv := make([]float64, n)
		mpp1a := make([]float64, n)
		mpp2a := make([]float64, n)
		mpp1v := make([]float64, n)
		mpp2v := make([]float64, n)
		for i, s := range group.Samples {
			pv[i] = s.Values[shadingPV]
			mpp1a[i] = s.Values[shadingMPP1A]
			mpp2a[i] = s.Values[shadingMPP2A]
			mpp1v[i] = s.Values[shadingMPP1V]
			mpp2v[i] = s.Values[shadingMPP2V]
		}

		energyYield := nanSum(pv) / 1000.0
		peak := nanMax(pv)

		delta := diff(pv)
		deltaStd := nanStdDev(delta)

		maxDeltaIdx := argmaxAbs(delta)
		maxDeltaHour := 12.0
		if maxDeltaIdx < n {
			maxDeltaHour = float64(group.Samples[maxDeltaIdx].Timestamp.Hour())
		}

		var morning, afternoon float64
		for i, s := range group.Samples {
			if math.IsNaN(pv[i]) {
				continue
			}
			if s.Timestamp.Hour() < 12 {
				morning += pv[i]
			} else {
				afternoon += pv[i]
			}
		}
		ratio := math.NaN()
		if afternoon > 0 {
			ratio = morning / afternoon
		}

		table.AddRow(group.Date, []float64{
			energyYield,
			peak,
			deltaStd,
			maxDeltaHour,
			ratio,
			nanStdDev(mpp1a),
			nanStdDev(mpp2a),
			nanStdDev(mpp1v),
			nanStdDev(mpp2v),
		})
	}

	if table.Len() == 0 {
		return nil, nil
	}
	return table, nil
}
