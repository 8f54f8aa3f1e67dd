// Package config holds the run configuration: who participates, which
// pairs are off-limits, and where the output goes. Configuration lives in
// a YAML file; a handful of deploy-varying values can be overridden from
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure so callers can treat
// configuration problems uniformly.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "santa.yaml"

// Config holds all generator configuration.
type Config struct {
	// Participants is the ordered list of unique gift-exchange members.
	Participants []string `yaml:"participants"`

	// ForbiddenPairs lists unordered name pairs that may not be matched
	// in either direction (couples, households, last year's pairings).
	ForbiddenPairs [][2]string `yaml:"forbidden_pairs"`

	// AllowReciprocal permits A->B and B->A in the same run.
	AllowReciprocal bool `yaml:"allow_reciprocal"`

	// BaseURL is the reveal page location; tokens are appended as ?data=...
	BaseURL string `yaml:"base_url"`

	// Output configures the CSV and QR sinks.
	Output OutputConfig `yaml:"output"`

	// Matcher configures the assignment search.
	Matcher MatcherConfig `yaml:"matcher"`
}

// OutputConfig configures where artifacts are written.
type OutputConfig struct {
	CSVPath   string `yaml:"csv_path"`
	QREnabled bool   `yaml:"qr_enabled"`
	QRDir     string `yaml:"qr_dir"`
	QRSize    int    `yaml:"qr_size"`
}

// MatcherConfig configures the backtracking search.
type MatcherConfig struct {
	// MaxAttempts bounds how many fresh-randomness searches run before the
	// constraints are reported unsatisfiable. Each search is already
	// exhaustive, so 1 is sufficient and the default.
	MaxAttempts int `yaml:"max_attempts"`

	// Seed fixes the random source for reproducible runs; 0 seeds from
	// the current time.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Participants:    []string{},
		ForbiddenPairs:  [][2]string{},
		AllowReciprocal: true,
		BaseURL:         "https://example.github.io/secret-santa/index.html",
		Output: OutputConfig{
			CSVPath:   "assignments.csv",
			QREnabled: false,
			QRDir:     "qr_codes",
			QRSize:    256,
		},
		Matcher: MatcherConfig{
			MaxAttempts: 1,
			Seed:        0,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SANTA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SANTA_CSV_PATH"); v != "" {
		c.Output.CSVPath = v
	}
	if v := os.Getenv("SANTA_QR_DIR"); v != "" {
		c.Output.QRDir = v
		c.Output.QREnabled = true
	}
	if v := os.Getenv("SANTA_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Matcher.Seed = seed
		}
	}
}

// Validate checks the configuration before any matching starts. Every
// failure identifies the offending value.
func (c *Config) Validate() error {
	if len(c.Participants) < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d",
			ErrInvalidConfig, len(c.Participants))
	}

	seen := make(map[string]bool, len(c.Participants))
	for _, p := range c.Participants {
		if p == "" {
			return fmt.Errorf("%w: empty participant name", ErrInvalidConfig)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate participant %q", ErrInvalidConfig, p)
		}
		seen[p] = true
	}

	for _, pair := range c.ForbiddenPairs {
		for _, name := range pair {
			if !seen[name] {
				return fmt.Errorf("%w: forbidden pair %v references unknown participant %q",
					ErrInvalidConfig, pair, name)
			}
		}
		if pair[0] == pair[1] {
			return fmt.Errorf("%w: forbidden pair %v names the same participant twice",
				ErrInvalidConfig, pair)
		}
	}

	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url must be set", ErrInvalidConfig)
	}
	if c.Output.CSVPath == "" {
		return fmt.Errorf("%w: output.csv_path must be set", ErrInvalidConfig)
	}
	if c.Matcher.MaxAttempts < 1 {
		return fmt.Errorf("%w: matcher.max_attempts must be >= 1, got %d",
			ErrInvalidConfig, c.Matcher.MaxAttempts)
	}
	return nil
}
