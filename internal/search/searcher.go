// Package search wires the classical baseline and the quantum engine into a
// single entry point and cross-checks their results.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/qdna-labs/quantum-pattern-search/internal/classical"
	"github.com/qdna-labs/quantum-pattern-search/internal/grover"
	"github.com/qdna-labs/quantum-pattern-search/internal/sequence"
	"github.com/qdna-labs/quantum-pattern-search/pkg/config"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// Result holds the exact classical positions and the sampled quantum
// outcome for one (text, pattern) pair.
type Result struct {
	Text               string          `json:"text"`
	Pattern            string          `json:"pattern"`
	ClassicalPositions []int           `json:"classical_positions"`
	Quantum            *grover.Outcome `json:"quantum"`
	Agreement          bool            `json:"agreement"`
	NoMatch            bool            `json:"no_match"`
}

// Searcher runs both matchers over in-memory sequences.
type Searcher struct {
	alphabet *sequence.Alphabet
	matcher  *classical.Matcher
	quantum  config.QuantumConfig
	logger   *slog.Logger
}

// New builds a Searcher from the application configuration.
func New(cfg *config.Config) (*Searcher, error) {
	alphabet, err := sequence.NewAlphabet(cfg.Search.Alphabet)
	if err != nil {
		return nil, err
	}
	return &Searcher{
		alphabet: alphabet,
		matcher:  classical.NewMatcher(alphabet),
		quantum:  cfg.Quantum,
		logger:   slog.Default().With("component", "searcher"),
	}, nil
}

// Search validates the inputs, runs the KMP baseline, builds the pattern
// oracle, runs amplitude amplification, and cross-checks the quantum
// majority against the exact positions. Construction errors surface
// immediately; a measured majority outside the marked set surfaces as
// ErrTrialBudgetExhausted alongside the partial result.
func (s *Searcher) Search(ctx context.Context, text, pattern string) (*Result, error) {
	oracle, err := grover.NewPatternOracle(text, pattern, s.alphabet)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	positions, err := s.matcher.Search(text, pattern)
	if err != nil {
		return nil, err
	}
	metrics.Default().SearchDuration.WithLabelValues("classical").Observe(time.Since(start).Seconds())

	result := &Result{
		Text:               text,
		Pattern:            pattern,
		ClassicalPositions: positions,
	}

	engine := grover.NewEngine(oracle, s.quantum)
	start = time.Now()
	outcome, runErr := engine.Run(ctx)
	metrics.Default().SearchDuration.WithLabelValues("quantum").Observe(time.Since(start).Seconds())
	if outcome == nil {
		return nil, runErr
	}
	if !outcome.NoMatch {
		outcome.Distribution = engine.Distribution()
	}
	result.Quantum = outcome

	if outcome.NoMatch {
		result.NoMatch = true
		result.Agreement = len(positions) == 0
		s.logger.Info("no match found", "pattern", pattern, "text_length", len(text))
		return result, runErr
	}

	result.Agreement = oracle.IsMarked(outcome.BestPosition) && containsInt(positions, outcome.BestPosition)
	if !result.Agreement {
		s.logger.Warn("quantum majority disagrees with classical matcher",
			"best_position", outcome.BestPosition,
			"classical_positions", positions,
		)
	}
	s.logger.Info("search finished",
		"pattern", pattern,
		"text_length", len(text),
		"classical_hits", len(positions),
		"quantum_best", outcome.BestPosition,
		"confidence", outcome.Confidence,
		"agreement", result.Agreement,
	)
	return result, runErr
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
