// Package config provides pipeline configuration loading from YAML files or
// SQLite databases.
package config

// Provider defines the interface for configuration data sources
type Provider interface {
	// LoadConfig loads the complete pipeline configuration
	LoadConfig() (*Data, error)

	// IsReadOnly reports whether the backend can persist changes
	IsReadOnly() bool

	Close() error
}

// Data represents the complete pipeline configuration. Command-line flags
// override any value loaded from a provider.
type Data struct {
	// InputDir is the directory holding the per-plant differences files
	InputDir string `json:"input_dir"`

	// OutputDir is the base directory under which feature_vectors/<set>/
	// subdirectories are created
	OutputDir string `json:"output_dir"`

	// Features lists the enabled feature sets ("shading", "pollution")
	Features []string `json:"features,omitempty"`

	// Debug enables per-plant diagnostic logging
	Debug bool `json:"debug,omitempty"`
}
