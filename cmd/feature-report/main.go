// Command feature-report summarizes the feature-vector tables produced by
// pv-features into a single XLSX workbook, one sheet per feature set and one
// row per plant. The canonical CSV outputs are never modified.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TUMFTM/pv-diagnostic-tool/internal/log"
	"github.com/xuri/excelize/v2"
)

const (
	outputPrefix = "feature_vectors_"
	outputSuffix = ".csv"
)

type plantSummary struct {
	PlantID   string
	Days      int
	Columns   int
	FirstDate string
	LastDate  string
}

func main() {
	featuresDir := flag.String("features-dir", "feature_vectors", "Directory containing the shading/ and pollution/ output subdirectories")
	output := flag.String("output", "feature_report.xlsx", "Path of the XLSX report to write")
	flag.Parse()

	if err := log.Init(false); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	workbook := excelize.NewFile()
	defer workbook.Close()

	wroteSheet := false
	for _, set := range []string{"shading", "pollution"} {
		summaries, err := summarizeSet(filepath.Join(*featuresDir, set))
		if err != nil {
			log.Fatalf("Failed to summarize %s features: %v", set, err)
		}
		if len(summaries) == 0 {
			log.Infof("No %s feature files found, skipping sheet", set)
			continue
		}

		if err := writeSheet(workbook, set, summaries); err != nil {
			log.Fatalf("Failed to build %s sheet: %v", set, err)
		}
		wroteSheet = true
		log.Infof("Summarized %d plants of %s features", len(summaries), set)
	}

	if !wroteSheet {
		log.Fatalf("No feature files found under %s", *featuresDir)
	}

	// excelize creates a default sheet we never write to
	workbook.DeleteSheet("Sheet1")

	if err := workbook.SaveAs(*output); err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	log.Infof("Report written to %s", *output)
}

func summarizeSet(dir string) ([]plantSummary, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summaries []plantSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, outputPrefix) || !strings.HasSuffix(name, outputSuffix) {
			continue
		}

		summary, err := summarizeFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		summary.PlantID = strings.TrimSuffix(strings.TrimPrefix(name, outputPrefix), outputSuffix)
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].PlantID < summaries[j].PlantID })
	return summaries, nil
}

func summarizeFile(path string) (plantSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return plantSummary{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return plantSummary{}, err
	}
	if len(records) == 0 {
		return plantSummary{}, fmt.Errorf("empty feature file")
	}

	summary := plantSummary{
		Days:    len(records) - 1,
		Columns: len(records[0]) - 1, // minus the date index
	}
	if summary.Days > 0 {
		summary.FirstDate = records[1][0]
		summary.LastDate = records[len(records)-1][0]
	}
	return summary, nil
}

func writeSheet(workbook *excelize.File, name string, summaries []plantSummary) error {
	if _, err := workbook.NewSheet(name); err != nil {
		return err
	}

	header := []interface{}{"Plant", "Days", "Feature columns", "First date", "Last date"}
	for col, v := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := workbook.SetCellValue(name, cell, v); err != nil {
			return err
		}
	}

	for row, s := range summaries {
		values := []interface{}{s.PlantID, s.Days, s.Columns, s.FirstDate, s.LastDate}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := workbook.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
