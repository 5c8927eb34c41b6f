package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from a YAML file
func (y *YAMLProvider) LoadConfig() (*Data, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		InputDir  string   `yaml:"input_dir"`
		OutputDir string   `yaml:"output_dir"`
		Features  []string `yaml:"features,omitempty"`
		Debug     bool     `yaml:"debug,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	return &Data{
		InputDir:  yamlConfig.InputDir,
		OutputDir: yamlConfig.OutputDir,
		Features:  yamlConfig.Features,
		Debug:     yamlConfig.Debug,
	}, nil
}

// IsReadOnly returns true; YAML files are not written by the pipeline
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
