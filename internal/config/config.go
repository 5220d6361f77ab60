package config

import (
	"fmt"
	"os"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration. Environment
// variables (TALLY_*) override file values.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Git    GitConfig    `yaml:"git"`
	Import ImportConfig `yaml:"import"`
}

// LedgerConfig controls where ledger data lives inside the ledger directory.
type LedgerConfig struct {
	DataFile string `yaml:"data_file" env:"TALLY_DATA_FILE"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" env:"TALLY_GIT_AUTO_COMMIT"`
	AuthorName  string `yaml:"author_name" env:"TALLY_GIT_AUTHOR_NAME"`
	AuthorEmail string `yaml:"author_email" env:"TALLY_GIT_AUTHOR_EMAIL"`
}

// ImportConfig controls bank CSV imports.
type ImportConfig struct {
	DefaultFormat string `yaml:"default_format" env:"TALLY_IMPORT_FORMAT"`
}

// Load reads a tally.yaml file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DataFile: "budget.json",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
		Import: ImportConfig{
			DefaultFormat: "chase",
		},
	}
}
