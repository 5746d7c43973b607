// Package file loads FlowAtlas configuration from a TOML file.
// Configuration covers the tunable scoring weights, entity aliases, and
// server settings. Missing files fall back to defaults; invalid weight
// orderings are rejected at load time.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

// Config is the full file configuration.
type Config struct {
	// Dataset is the path to the XML dataset to index.
	Dataset string `toml:"dataset"`

	// Listen is the HTTP API listen address.
	Listen string `toml:"listen"`

	// RateLimit is the sustained query rate (requests/second) allowed on
	// the HTTP query endpoint. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit"`

	// RateBurst is the burst capacity of the query rate limiter.
	RateBurst int `toml:"rate_burst"`

	// Scoring holds the pipeline weights.
	Scoring domain.ScoringConfig `toml:"scoring"`

	// Aliases maps alternative spellings to canonical entity names,
	// e.g. "gasx" -> "GAS-X". Aliases extend the recognition vocabulary.
	Aliases map[string]string `toml:"aliases"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dataset:   "datenfluesse.xml",
		Listen:    ":8080",
		RateLimit: 10,
		RateBurst: 20,
		Scoring:   domain.DefaultScoring(),
		Aliases:   map[string]string{},
	}
}

// DefaultPath returns ~/.flowatlas/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowatlas", "config.toml"), nil
}

// Load reads the configuration at path, filling unset sections with
// defaults and validating the scoring weights. A missing file is not an
// error; it simply yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// An all-zero scoring table means the file left the section out.
	if cfg.Scoring == (domain.ScoringConfig{}) {
		cfg.Scoring = domain.DefaultScoring()
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed. Used by `flowatlas config init`.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
