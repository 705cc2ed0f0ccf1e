// Package config loads and validates vidsweep configuration. Validation
// failures abort before any scanning or grouping starts; everything
// past this point degrades gracefully instead of raising.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Nomadcxx/vidsweep/internal/dupe"
	"github.com/Nomadcxx/vidsweep/internal/logging"
)

// Config holds all recognized options.
type Config struct {
	// MinSimilarity is the fuzzy clustering threshold in [0, 1].
	MinSimilarity float64 `mapstructure:"min_similarity"`
	// SelectionMode is keep_best, keep_smallest or smart.
	SelectionMode string `mapstructure:"selection_mode"`
	// DryRun previews retention without touching the filesystem.
	DryRun bool `mapstructure:"dry_run"`
	// DestinationDir, when set, moves selected files there instead of
	// deleting them.
	DestinationDir string `mapstructure:"destination_dir"`
	// ProbeWorkers bounds the metadata extraction pool.
	ProbeWorkers int `mapstructure:"probe_workers"`
	// FFProbePath overrides the ffprobe binary location.
	FFProbePath string `mapstructure:"ffprobe_path"`

	Logging logging.Config `mapstructure:"logging"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MinSimilarity: dupe.DefaultMinSimilarity,
		SelectionMode: dupe.KeepBest.String(),
		DryRun:        false,
		ProbeWorkers:  4,
		FFProbePath:   "ffprobe",
		Logging:       logging.DefaultConfig(),
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to get config dir: %w", err)
	}
	return filepath.Join(dir, "vidsweep", "config.toml"), nil
}

// Load reads configuration from path (or the default location when path
// is empty), layered over defaults, and validates it. A missing file is
// fine; a malformed or invalid one is not.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		defaultPath, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on out-of-range or unknown options. This is the
// only error class allowed to abort a run.
func (c *Config) Validate() error {
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("min_similarity %.2f out of range [0, 1]", c.MinSimilarity)
	}
	if _, err := dupe.ParseMode(c.SelectionMode); err != nil {
		return fmt.Errorf("selection_mode: %w", err)
	}
	if c.ProbeWorkers <= 0 {
		c.ProbeWorkers = 4
	}
	return nil
}

// Mode returns the parsed selection mode. Validate must have accepted
// the config first.
func (c *Config) Mode() dupe.Mode {
	mode, _ := dupe.ParseMode(c.SelectionMode)
	return mode
}
