package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/TUMFTM/pv-diagnostic-tool/internal/features"
	"github.com/TUMFTM/pv-diagnostic-tool/internal/log"
)

func TestLoadConfig(t *testing.T) {
	if err := log.Init(true); err != nil {
		t.Fatalf("could not initialize logger: %v", err)
	}

	t.Run("no config file yields empty defaults", func(t *testing.T) {
		cfg, err := loadConfig("", "yaml")
		if err != nil {
			t.Fatalf("loadConfig returned error: %v", err)
		}
		if cfg.InputDir != "" || cfg.OutputDir != "" || len(cfg.Features) != 0 {
			t.Errorf("expected empty defaults, got %+v", cfg)
		}
	})

	t.Run("yaml backend", func(t *testing.T) {
		cfgFile := filepath.Join(t.TempDir(), "pipeline.yaml")
		content := "input_dir: /data/in\noutput_dir: /data/out\nfeatures:\n  - shading\ndebug: true\n"
		if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
			t.Fatalf("could not write config file: %v", err)
		}

		cfg, err := loadConfig(cfgFile, "yaml")
		if err != nil {
			t.Fatalf("loadConfig returned error: %v", err)
		}
		if cfg.InputDir != "/data/in" {
			t.Errorf("InputDir = %q, want /data/in", cfg.InputDir)
		}
		if cfg.OutputDir != "/data/out" {
			t.Errorf("OutputDir = %q, want /data/out", cfg.OutputDir)
		}
		if !reflect.DeepEqual(cfg.Features, []string{"shading"}) {
			t.Errorf("Features = %v, want [shading]", cfg.Features)
		}
		if !cfg.Debug {
			t.Error("Debug = false, want true")
		}
	})

	t.Run("unsupported backend", func(t *testing.T) {
		if _, err := loadConfig("pipeline.toml", "toml"); err == nil {
			t.Fatal("expected error for unsupported backend")
		}
	})

	t.Run("missing yaml file", func(t *testing.T) {
		if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "yaml"); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}

func TestSplitFeatures(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"all expands to both sets", "all", []string{"shading", "pollution"}},
		{"single set", "pollution", []string{"pollution"}},
		{"comma separated with spaces", "shading, pollution", []string{"shading", "pollution"}},
		{"empty entries dropped", "shading,,", []string{"shading"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitFeatures(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitFeatures(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelectExtractors(t *testing.T) {
	extractors, err := selectExtractors([]string{"shading", "pollution"})
	if err != nil {
		t.Fatalf("selectExtractors returned error: %v", err)
	}
	if len(extractors) != 2 {
		t.Fatalf("expected 2 extractors, got %d", len(extractors))
	}
	if _, ok := extractors[0].(features.ShadingExtractor); !ok {
		t.Errorf("first extractor has type %T, want ShadingExtractor", extractors[0])
	}
	if _, ok := extractors[1].(features.PollutionExtractor); !ok {
		t.Errorf("second extractor has type %T, want PollutionExtractor", extractors[1])
	}

	if _, err := selectExtractors([]string{"snow"}); err == nil {
		t.Fatal("expected error for unknown feature set")
	}
}
