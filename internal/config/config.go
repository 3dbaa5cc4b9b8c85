// Package config loads ewenlp settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the variable holding the config file path.
const PathEnv = "EWENLP_CONFIG"

// Config is the root configuration.
type Config struct {
	Resources ResourceConfig `yaml:"resources"`
	Morph     MorphConfig    `yaml:"morph"`
	Mix       MixConfig      `yaml:"mix"`
	Scan      ScanConfig     `yaml:"scan"`
	Log       LogConfig      `yaml:"log"`
}

// ResourceConfig selects the dialect tables.
type ResourceConfig struct {
	// Dir is a resource directory on disk; empty uses the embedded tables.
	Dir            string `yaml:"dir"             env:"EWENLP_RESOURCE_DIR"`
	DefaultDialect string `yaml:"default_dialect" env:"EWENLP_DEFAULT_DIALECT"`
}

// MorphConfig tunes the morphological analyzer.
type MorphConfig struct {
	CacheSize int `yaml:"cache_size" env:"EWENLP_MORPH_CACHE" env-default:"4096"`
}

// MixConfig holds mixed-dialect synthesis defaults.
type MixConfig struct {
	Seed  uint64  `yaml:"seed"  env:"EWENLP_MIX_SEED"  env-default:"1"`
	Ratio float64 `yaml:"ratio" env:"EWENLP_MIX_RATIO" env-default:"0.3"`
}

// ScanConfig tunes the corpus scanner.
type ScanConfig struct {
	// Workers bounds concurrent file analysis; 0 means GOMAXPROCS.
	Workers int    `yaml:"workers" env:"EWENLP_SCAN_WORKERS" env-default:"0"`
	Pattern string `yaml:"pattern" env:"EWENLP_SCAN_PATTERN" env-default:"*.txt"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"EWENLP_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"EWENLP_LOG_FORMAT" env-default:"text"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Load reads configuration. Priority: ENV > YAML > defaults.
//
// The file is path when non-empty, else the value of EWENLP_CONFIG. With
// neither set, only ENV and defaults apply. A named file must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Morph.CacheSize < 0 {
		return fmt.Errorf("morph.cache_size must be >= 0 (got %d)", c.Morph.CacheSize)
	}
	if !(c.Mix.Ratio >= 0 && c.Mix.Ratio <= 1) {
		return fmt.Errorf("mix.ratio must be in [0, 1] (got %v)", c.Mix.Ratio)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0 (got %d)", c.Scan.Workers)
	}
	if c.Scan.Pattern == "" {
		return errors.New("scan.pattern must not be empty")
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s (got %q)", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %s (got %q)", strings.Join(logFormats, ", "), c.Log.Format)
	}
	if c.Resources.Dir != "" {
		info, err := os.Stat(c.Resources.Dir)
		if err != nil {
			return fmt.Errorf("resources.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("resources.dir: %s: %w", c.Resources.Dir, fs.ErrInvalid)
		}
	}
	return nil
}

// ScanWorkers returns the effective worker count.
func (c *Config) ScanWorkers() int {
	if c.Scan.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Scan.Workers
}
