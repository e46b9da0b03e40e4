// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (Search, Quantum, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Quantum QuantumConfig `yaml:"quantum"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SearchConfig holds the symbol alphabet shared by the classical and quantum
// matchers.
type SearchConfig struct {
	Alphabet string `yaml:"alphabet"`
}

// QuantumConfig controls the amplitude-amplification engine: how many
// independent trials to run, the iteration cap used when the marked set may
// be empty, the sampling seed, and the trial worker pool size.
type QuantumConfig struct {
	Trials        int   `yaml:"trials"`
	MaxIterations int   `yaml:"maxIterations"`
	Seed          int64 `yaml:"seed"`
	Workers       int   `yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls whether operation counters are dumped after a run.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns a Config with defaults suitable for the bundled DNA
// demonstrations.
func defaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Alphabet: "ACGT",
		},
		Quantum: QuantumConfig{
			Trials:        200,
			MaxIterations: 64,
			Seed:          1,
			Workers:       runtime.NumCPU(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Search.Alphabet == "" {
		return fmt.Errorf("search.alphabet must not be empty")
	}
	if c.Quantum.Trials < 1 {
		return fmt.Errorf("quantum.trials must be >= 1, got %d", c.Quantum.Trials)
	}
	if c.Quantum.MaxIterations < 1 {
		return fmt.Errorf("quantum.maxIterations must be >= 1, got %d", c.Quantum.MaxIterations)
	}
	if c.Quantum.Workers < 1 {
		return fmt.Errorf("quantum.workers must be >= 1, got %d", c.Quantum.Workers)
	}
	return nil
}

// applyEnvOverrides reads QS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QS_SEARCH_ALPHABET"); v != "" {
		cfg.Search.Alphabet = v
	}
	if v := os.Getenv("QS_QUANTUM_TRIALS"); v != "" {
		if trials, err := strconv.Atoi(v); err == nil {
			cfg.Quantum.Trials = trials
		}
	}
	if v := os.Getenv("QS_QUANTUM_MAX_ITERATIONS"); v != "" {
		if iters, err := strconv.Atoi(v); err == nil {
			cfg.Quantum.MaxIterations = iters
		}
	}
	if v := os.Getenv("QS_QUANTUM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Quantum.Seed = seed
		}
	}
	if v := os.Getenv("QS_QUANTUM_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Quantum.Workers = workers
		}
	}
	if v := os.Getenv("QS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
