package features

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const differencesSuffix = "_differences.csv"

// PlantFile is one discovered per-plant differences file.
type PlantFile struct {
	ID   string
	Path string
}

// DiscoverPlants lists the differences files in dir and extracts the plant
// identifier from each filename. Results are sorted by plant ID so batch
// output order is deterministic. An unreadable directory is a fatal,
// batch-level error.
func DiscoverPlants(dir string) ([]PlantFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading differences directory: %w", err)
	}

	var plants []PlantFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), differencesSuffix) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), differencesSuffix)
		if id == "" {
			continue
		}
		plants = append(plants, PlantFile{
			ID:   id,
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(plants, func(i, j int) bool { return plants[i].ID < plants[j].ID })
	return plants, nil
}
