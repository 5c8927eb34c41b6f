package features

// PlantStatus describes the outcome of processing a single plant within a
// batch run. A per-plant failure never aborts the batch; the status makes
// the reason for a missing output file observable to callers and tests.
type PlantStatus int

const (
	// StatusProcessed means a feature table was computed, normalized and written.
	StatusProcessed PlantStatus = iota

	// StatusCached means the output file already existed and the plant was skipped.
	StatusCached

	// StatusSkippedSchema means the differences file was empty or missing a
	// required column.
	StatusSkippedSchema

	// StatusSkippedEmpty means no day produced a valid feature row, or the
	// cleaning step dropped every row.
	StatusSkippedEmpty

	// StatusFailed means an error occurred while processing the plant
	// (malformed timestamp, unparseable numeric field, write failure).
	StatusFailed
)

func (s PlantStatus) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusCached:
		return "cached"
	case StatusSkippedSchema:
		return "skipped-schema"
	case StatusSkippedEmpty:
		return "skipped-empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// PlantResult records the outcome of one plant in a batch run.
type PlantResult struct {
	PlantID    string
	Status     PlantStatus
	Days       int    // feature rows written (0 unless StatusProcessed)
	OutputPath string // set when the output file exists after the run
	Err        error  // set when Status is StatusFailed
}

// Summary aggregates per-status counts over a batch of plant results.
type Summary struct {
	Processed int
	Cached    int
	Skipped   int
	Failed    int
}

// Summarize tallies a slice of plant results into per-status counts.
func Summarize(results []PlantResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusProcessed:
			s.Processed++
		case StatusCached:
			s.Cached++
		case StatusSkippedSchema, StatusSkippedEmpty:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
