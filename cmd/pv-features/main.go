// Command pv-features converts per-plant differences files into normalized
// daily feature-vector tables for shading and pollution classification.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/TUMFTM/pv-diagnostic-tool/internal/features"
	"github.com/TUMFTM/pv-diagnostic-tool/internal/log"
	"github.com/TUMFTM/pv-diagnostic-tool/pkg/config"
	"github.com/google/uuid"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	inputDir := flag.String("input", "", "Directory containing <plant>_differences.csv files")
	outputDir := flag.String("output", "", "Base output directory; feature_vectors/<set>/ is created beneath it")
	featureSets := flag.String("features", "all", "Feature sets to extract: 'shading', 'pollution', or 'all'")
	cfgFile := flag.String("config", "", "Optional configuration source (YAML file or SQLite database)")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	debug := flag.Bool("debug", false, "Turn on per-plant diagnostic output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pv-features %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Flags override configuration file values
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *featureSets != "all" || len(cfg.Features) == 0 {
		cfg.Features = splitFeatures(*featureSets)
	}
	if cfg.Debug && !*debug {
		// Debug was requested by the config file rather than the flag
		if err := log.Init(true); err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.InputDir == "" || cfg.OutputDir == "" {
		log.Errorf("Both an input and an output directory are required. Run with -h for help.")
		os.Exit(1)
	}

	logger := log.GetSugaredLogger().With("run_id", uuid.New().String())

	runner := &features.Runner{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Logger:    logger,
	}

	extractors, err := selectExtractors(cfg.Features)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	failed := false
	for _, ext := range extractors {
		results, err := runner.Run(ext)
		if err != nil {
			logger.Errorf("%s feature extraction failed: %v", ext.Name(), err)
			failed = true
			continue
		}

		summary := features.Summarize(results)
		logger.Infof("%s feature extraction complete: %d processed, %d cached, %d skipped, %d failed",
			ext.Name(), summary.Processed, summary.Cached, summary.Skipped, summary.Failed)
	}

	if failed {
		os.Exit(1)
	}
}

func loadConfig(cfgFile, cfgBackend string) (*config.Data, error) {
	if cfgFile == "" {
		return &config.Data{}, nil
	}

	filename, _ := filepath.Abs(cfgFile)

	var provider config.Provider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	log.Debugf("configuration loaded from %s (read-only backend: %v)", filename, provider.IsReadOnly())
	return cfgData, nil
}

func splitFeatures(s string) []string {
	if s == "all" {
		return []string{"shading", "pollution"}
	}
	var sets []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			sets = append(sets, f)
		}
	}
	return sets
}

func selectExtractors(sets []string) ([]features.Extractor, error) {
	var extractors []features.Extractor
	for _, name := range sets {
		switch name {
		case "shading":
			extractors = append(extractors, features.ShadingExtractor{})
		case "pollution":
			extractors = append(extractors, features.PollutionExtractor{})
		default:
			return nil, fmt.Errorf("unknown feature set %q. Use 'shading', 'pollution', or 'all'", name)
		}
	}
	return extractors, nil
}
