package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.Alphabet != "ACGT" {
		t.Errorf("Search.Alphabet = %q, want ACGT", cfg.Search.Alphabet)
	}
	if cfg.Quantum.Trials != 200 {
		t.Errorf("Quantum.Trials = %d, want 200", cfg.Quantum.Trials)
	}
	if cfg.Quantum.MaxIterations != 64 {
		t.Errorf("Quantum.MaxIterations = %d, want 64", cfg.Quantum.MaxIterations)
	}
	if cfg.Quantum.Workers < 1 {
		t.Errorf("Quantum.Workers = %d, want >= 1", cfg.Quantum.Workers)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
search:
  alphabet: "ACGTN"
quantum:
  trials: 50
  maxIterations: 10
  seed: 7
  workers: 2
logging:
  level: debug
  format: text
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.Alphabet != "ACGTN" {
		t.Errorf("Search.Alphabet = %q, want ACGTN", cfg.Search.Alphabet)
	}
	if cfg.Quantum.Trials != 50 || cfg.Quantum.MaxIterations != 10 || cfg.Quantum.Seed != 7 || cfg.Quantum.Workers != 2 {
		t.Errorf("Quantum = %+v", cfg.Quantum)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file returned nil error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QS_QUANTUM_TRIALS", "17")
	t.Setenv("QS_QUANTUM_SEED", "99")
	t.Setenv("QS_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Quantum.Trials != 17 {
		t.Errorf("Quantum.Trials = %d, want 17", cfg.Quantum.Trials)
	}
	if cfg.Quantum.Seed != 99 {
		t.Errorf("Quantum.Seed = %d, want 99", cfg.Quantum.Seed)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Quantum.Trials = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted zero trials")
	}
	cfg = defaultConfig()
	cfg.Search.Alphabet = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted empty alphabet")
	}
}
