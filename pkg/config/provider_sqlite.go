package config

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the pipeline_config table,
// a simple key/value store with keys input_dir, output_dir, features
// (comma-separated) and debug.
func (s *SQLiteProvider) LoadConfig() (*Data, error) {
	rows, err := s.db.Query(`SELECT key, value FROM pipeline_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline_config: %w", err)
	}
	defer rows.Close()

	config := &Data{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline_config row: %w", err)
		}

		switch key {
		case "input_dir":
			config.InputDir = value
		case "output_dir":
			config.OutputDir = value
		case "features":
			for _, f := range strings.Split(value, ",") {
				if f = strings.TrimSpace(f); f != "" {
					config.Features = append(config.Features, f)
				}
			}
		case "debug":
			config.Debug, _ = strconv.ParseBool(value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipeline_config rows: %w", err)
	}

	return config, nil
}

// IsReadOnly returns false; SQLite configs can be managed in place
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
