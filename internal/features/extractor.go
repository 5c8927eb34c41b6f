package features

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Sample is one parsed row of a differences file: a timestamp plus the
// numeric values of the extractor's schema, in schema order.
type Sample struct {
	Timestamp time.Time
	Values    []float64
}

// DayGroup holds all samples sharing one calendar date, in file order.
type DayGroup struct {
	Date    string
	Samples []Sample
}

// GroupByDate buckets samples by the date portion of their timestamps,
// dropping time-of-day. Groups are returned in ascending date order; samples
// within a group keep file order.
func GroupByDate(samples []Sample) []DayGroup {
	byDate := make(map[string][]Sample)
	for _, s := range samples {
		d := s.Timestamp.Format(dateLayout)
		byDate[d] = append(byDate[d], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	groups := make([]DayGroup, len(dates))
	for i, d := range dates {
		groups[i] = DayGroup{Date: d, Samples: byDate[d]}
	}
	return groups
}

// Extractor turns one plant's differences samples into an un-normalized
// feature table. A nil table with a nil error means the plant produced no
// usable feature rows and should be skipped without writing output.
type Extractor interface {
	// Name is the feature-set name, used as the output subdirectory.
	Name() string

	// Schema lists the columns the extractor requires from a differences file.
	Schema() Schema

	// Build computes the per-day feature table from the plant's samples.
	Build(samples []Sample) (*Table, error)
}

// Runner executes one extractor over every plant in the input directory,
// one plant at a time. Each plant's table and intermediate groups are
// independent and discarded after writing; a failure in one plant never
// aborts the batch.
type Runner struct {
	InputDir  string
	OutputDir string
	Logger    *zap.SugaredLogger
}

// Run discovers the per-plant differences files, processes each through the
// extractor, and writes one normalized feature file per plant to
// <OutputDir>/feature_vectors/<extractor name>/. Only directory-level
// problems (unreadable input, uncreatable output) are returned as errors;
// per-plant outcomes are reported in the result slice.
func (r *Runner) Run(ext Extractor) ([]PlantResult, error) {
	outDir := filepath.Join(r.OutputDir, "feature_vectors", ext.Name())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	plants, err := DiscoverPlants(r.InputDir)
	if err != nil {
		return nil, err
	}

	r.Logger.Debugf("reading differences from %s", r.InputDir)
	r.Logger.Debugf("writing %s features to %s", ext.Name(), outDir)

	results := make([]PlantResult, 0, len(plants))
	for _, plant := range plants {
		results = append(results, r.processPlant(ext, plant, outDir))
	}
	return results, nil
}

func (r *Runner) processPlant(ext Extractor, plant PlantFile, outDir string) PlantResult {
	result := PlantResult{PlantID: plant.ID}
	outPath := filepath.Join(outDir, "feature_vectors_"+plant.ID+".csv")

	if _, err := os.Stat(outPath); err == nil {
		r.Logger.Debugf("%s: %s features already exist, skipping", plant.ID, ext.Name())
		result.Status = StatusCached
		result.OutputPath = outPath
		return result
	}

	r.Logger.Debugf("processing %s features for plant %s", ext.Name(), plant.ID)

	header, rows, err := readDifferencesFile(plant.Path)
	if err != nil {
		r.Logger.Debugf("%s: %v", plant.ID, err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	schema := ext.Schema()
	validation := schema.Validate(header)
	if !validation.OK() || len(rows) == 0 {
		r.Logger.Debugf("%s: missing required columns or empty file, skipping", plant.ID)
		result.Status = StatusSkippedSchema
		return result
	}

	samples, err := parseSamples(schema, validation, rows)
	if err != nil {
		r.Logger.Debugf("%s: %v", plant.ID, err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	table, err := ext.Build(samples)
	if err != nil {
		r.Logger.Debugf("%s: %v", plant.ID, err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	if table == nil || table.Len() == 0 {
		r.Logger.Debugf("%s: no features generated", plant.ID)
		result.Status = StatusSkippedEmpty
		return result
	}

	normalized := Normalize(table)
	if err := normalized.WriteCSV(outPath); err != nil {
		r.Logger.Debugf("%s: %v", plant.ID, err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	r.Logger.Debugf("%s: saved %d days of %s features to %s",
		plant.ID, normalized.Len(), ext.Name(), outPath)

	result.Status = StatusProcessed
	result.Days = normalized.Len()
	result.OutputPath = outPath
	return result
}

// readDifferencesFile reads a differences CSV into its header and data rows.
// An empty file yields a nil header and no rows.
func readDifferencesFile(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening differences file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading differences file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// parseSamples converts raw CSV rows into samples using the validated column
// index. A malformed timestamp or numeric cell fails the whole plant.
func parseSamples(schema Schema, validation ValidationResult, rows [][]string) ([]Sample, error) {
	numeric := schema.NumericFields()
	tsIdx := -1
	for _, f := range schema.Fields {
		if f.Kind == FieldTimestamp {
			tsIdx = validation.Index[f.Name]
			break
		}
	}
	if tsIdx < 0 {
		return nil, fmt.Errorf("schema has no timestamp field")
	}

	samples := make([]Sample, 0, len(rows))
	for n, row := range rows {
		ts, err := parseTimestamp(row[tsIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}

		values := make([]float64, len(numeric))
		for i, name := range numeric {
			v, err := parseValue(row[validation.Index[name]])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", n+1, name, err)
			}
			values[i] = v
		}
		samples = append(samples, Sample{Timestamp: ts, Values: values})
	}
	return samples, nil
}
