package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/qdna-labs/quantum-pattern-search/pkg/config"
	apperrors "github.com/qdna-labs/quantum-pattern-search/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{Alphabet: "ACGT"},
		Quantum: config.QuantumConfig{
			Trials:        100,
			MaxIterations: 64,
			Seed:          1,
			Workers:       4,
		},
	}
}

func TestSearchAgreement(t *testing.T) {
	searcher, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := searcher.Search(context.Background(), "ACGTACGTACGT", "ACGT")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if want := []int{0, 4, 8}; !reflect.DeepEqual(result.ClassicalPositions, want) {
		t.Errorf("ClassicalPositions = %v, want %v", result.ClassicalPositions, want)
	}
	if result.Quantum == nil {
		t.Fatal("Quantum outcome is nil")
	}
	if !result.Agreement {
		t.Errorf("Agreement = false, quantum best %d vs classical %v",
			result.Quantum.BestPosition, result.ClassicalPositions)
	}
	if len(result.Quantum.Distribution) != 9 {
		t.Errorf("len(Distribution) = %d, want 9", len(result.Quantum.Distribution))
	}
}

func TestSearchNoMatch(t *testing.T) {
	searcher, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := searcher.Search(context.Background(), "ACGTACGTACGT", "TTTT")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !result.NoMatch {
		t.Error("NoMatch = false, want true")
	}
	if len(result.ClassicalPositions) != 0 {
		t.Errorf("ClassicalPositions = %v, want empty", result.ClassicalPositions)
	}
	if !result.Quantum.NoMatch {
		t.Error("Quantum.NoMatch = false, want true")
	}
	if result.Quantum.Iterations != 0 {
		t.Errorf("Quantum.Iterations = %d, want 0 (amplification short-circuited)", result.Quantum.Iterations)
	}
	if !result.Agreement {
		t.Error("Agreement = false, want true when both matchers find nothing")
	}
}

func TestSearchInvalidInput(t *testing.T) {
	searcher, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		text    string
		pattern string
	}{
		{"pattern longer than text", "ACG", "ACGTA"},
		{"empty pattern", "ACGT", ""},
		{"bad symbol", "ACGT", "AZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := searcher.Search(context.Background(), tt.text, tt.pattern)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
			if result != nil {
				t.Errorf("result = %+v, want nil before any computation", result)
			}
		})
	}
}

func TestSearchSingleCandidate(t *testing.T) {
	// Pattern as long as the text: one candidate position.
	searcher, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := searcher.Search(context.Background(), "ACGT", "ACGT")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if want := []int{0}; !reflect.DeepEqual(result.ClassicalPositions, want) {
		t.Errorf("ClassicalPositions = %v, want %v", result.ClassicalPositions, want)
	}
	if result.Quantum.BestPosition != 0 {
		t.Errorf("BestPosition = %d, want 0", result.Quantum.BestPosition)
	}
}
