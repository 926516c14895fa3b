// Package config loads the TOML configuration file for gh-docs-index.
// Every setting has a sensible default; a missing file is not an error,
// and command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/gh-docs-index/internal/index"
)

// Default locations and limits.
const (
	DefaultPath     = "gh-docs-index.toml"
	DefaultOutDir   = "out"
	DefaultCacheDir = ".github-index-cache"
)

// Config holds the settings for a run.
type Config struct {
	// Repo is the target repository as "owner/name".
	Repo string `toml:"repo"`

	// OutDir is where the document and index files are written.
	OutDir string `toml:"out_dir"`

	// CacheDir holds the document snapshot and run state between runs.
	CacheDir string `toml:"cache_dir"`

	// MaxItems caps the total items fetched per source. 0 means no cap.
	MaxItems int `toml:"max_items"`

	// Boosts are the per-field relevance multipliers.
	Boosts index.Boosts `toml:"boosts"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		OutDir:   DefaultOutDir,
		CacheDir: DefaultCacheDir,
		Boosts:   index.DefaultBoosts(),
	}
}

// Load reads the TOML file at path, applying defaults for anything the
// file leaves unset. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Boosts.Title == 0 {
		c.Boosts.Title = 1
	}
	if c.Boosts.Excerpt == 0 {
		c.Boosts.Excerpt = 1
	}
	if c.Boosts.Labels == 0 {
		c.Boosts.Labels = 1
	}
}
