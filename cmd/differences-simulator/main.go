// Command differences-simulator generates synthetic per-plant differences
// files for testing the feature-extraction pipeline without real telemetry.
// The generated files carry the full column set so one file serves both the
// shading and the pollution extractor.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/TUMFTM/pv-diagnostic-tool/internal/log"
)

type simulatorConfig struct {
	OutputDir   string
	Plants      int
	Days        int
	IntervalMin int
	Shading     bool
	Soiling     bool
	Seed        int64
}

// plantSimulator generates a plausible daily PV curve for one plant:
// sinusoidal daylight output between 06:00 and 18:00, optional afternoon
// shading dips, optional slow soiling drift of the difference signal, and
// measurement noise on everything.
type plantSimulator struct {
	rng      *rand.Rand
	peakW    float64
	shading  bool
	soiling  bool
	startDay time.Time
}

func newPlantSimulator(rng *rand.Rand, shading, soiling bool, startDay time.Time) *plantSimulator {
	return &plantSimulator{
		rng:      rng,
		peakW:    3500 + rng.Float64()*3000,
		shading:  shading,
		soiling:  soiling,
		startDay: startDay,
	}
}

func (p *plantSimulator) pvPower(ts time.Time) float64 {
	hour := float64(ts.Hour()) + float64(ts.Minute())/60
	if hour < 6 || hour > 18 {
		return 0
	}

	// Half-sine daylight curve peaking at noon
	output := p.peakW * math.Sin(math.Pi*(hour-6)/12)

	if p.shading && hour >= 14 && hour <= 16 {
		// A nearby obstacle shades the array in mid-afternoon
		output *= 0.35
	}

	output += (p.rng.Float64() - 0.5) * 0.05 * p.peakW
	if output < 0 {
		output = 0
	}
	return output
}

func (p *plantSimulator) row(ts time.Time) []string {
	pv := p.pvPower(ts)

	// Two MPP strings sharing the load, slightly unbalanced
	split := 0.5 + (p.rng.Float64()-0.5)*0.1
	voltage1 := 320 + (p.rng.Float64()-0.5)*20
	voltage2 := 320 + (p.rng.Float64()-0.5)*20
	current1 := pv * split / voltage1
	current2 := pv * (1 - split) / voltage2

	load := 300 + p.rng.Float64()*400
	battery := pv - load + (p.rng.Float64()-0.5)*100
	soc := math.Max(5, math.Min(100, 50+battery/100))

	// Difference between expected and actual output; soiling adds a slow
	// drift proportional to elapsed days
	difference := (p.rng.Float64() - 0.5) * 0.04 * p.peakW
	if p.soiling {
		elapsedDays := ts.Sub(p.startDay).Hours() / 24
		difference += elapsedDays * 0.002 * p.peakW
	}

	return []string{
		ts.Format("2006-01-02 15:04:05"),
		formatFloat(pv),
		formatFloat(current1),
		formatFloat(current2),
		formatFloat(voltage1),
		formatFloat(voltage2),
		formatFloat(battery),
		formatFloat(soc),
		formatFloat(load),
		formatFloat(difference),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func main() {
	var cfg simulatorConfig
	flag.StringVar(&cfg.OutputDir, "output", "differences", "Directory to write <plant>_differences.csv files to")
	flag.IntVar(&cfg.Plants, "plants", 3, "Number of plants to simulate")
	flag.IntVar(&cfg.Days, "days", 45, "Number of days of telemetry per plant")
	flag.IntVar(&cfg.IntervalMin, "interval", 15, "Sampling interval in minutes")
	flag.BoolVar(&cfg.Shading, "shading", true, "Simulate afternoon shading dips")
	flag.BoolVar(&cfg.Soiling, "soiling", true, "Simulate gradual soiling drift in the difference signal")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed")
	flag.Parse()

	if err := log.Init(false); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Plants < 1 || cfg.Days < 1 || cfg.IntervalMin < 1 {
		log.Fatalf("plants, days and interval must all be positive")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	startDay := time.Now().AddDate(0, 0, -cfg.Days).Truncate(24 * time.Hour)

	for i := 0; i < cfg.Plants; i++ {
		plantID := fmt.Sprintf("plant%02d", i+1)
		path := filepath.Join(cfg.OutputDir, plantID+"_differences.csv")

		if err := writePlantFile(path, newPlantSimulator(rng, cfg.Shading, cfg.Soiling, startDay), startDay, cfg); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Infof("Wrote %s (%d days at %d-minute intervals)", path, cfg.Days, cfg.IntervalMin)
	}
}

func writePlantFile(path string, sim *plantSimulator, startDay time.Time, cfg simulatorConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"Timestamp", "PV(W)", "MPP1(A)", "MPP2(A)", "MPP1(V)", "MPP2(V)",
		"Battery(W)", "SOC(%)", "Load(W)", "Difference",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	interval := time.Duration(cfg.IntervalMin) * time.Minute
	end := startDay.AddDate(0, 0, cfg.Days)
	for ts := startDay; ts.Before(end); ts = ts.Add(interval) {
		if err := w.Write(sim.row(ts)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
