// Package classical implements the Knuth-Morris-Pratt exact matcher used as
// the correctness and performance baseline for the quantum search engine.
package classical

import (
	"github.com/qdna-labs/quantum-pattern-search/internal/sequence"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// BuildFailureTable computes the longest-proper-prefix-which-is-also-a-suffix
// table for pattern. failure[0] is always 0 and failure[i] < i+1.
func BuildFailureTable(pattern string) []int {
	n := len(pattern)
	failure := make([]int, n)
	length := 0
	for i := 1; i < n; i++ {
		for length > 0 && pattern[i] != pattern[length] {
			length = failure[length-1]
		}
		if pattern[i] == pattern[length] {
			length++
		}
		failure[i] = length
	}
	return failure
}

// Matcher scans texts for exact occurrences of a pattern in O(n+m) time.
type Matcher struct {
	alphabet *sequence.Alphabet
}

// NewMatcher returns a Matcher that validates inputs against the given
// alphabet.
func NewMatcher(alphabet *sequence.Alphabet) *Matcher {
	return &Matcher{alphabet: alphabet}
}

// Search returns every position where pattern occurs in text, in ascending
// order. It fails fast on an empty pattern, a pattern longer than the text,
// or symbols outside the alphabet.
func (m *Matcher) Search(text, pattern string) ([]int, error) {
	if err := sequence.ValidateSearchInput(text, pattern, m.alphabet); err != nil {
		return nil, err
	}
	return Search(text, pattern), nil
}

// Search runs the KMP scan without input validation. Exposed for callers
// that have already validated (and for the brute-force cross-check tests).
func Search(text, pattern string) []int {
	n := len(text)
	m := len(pattern)
	failure := BuildFailureTable(pattern)

	var positions []int
	comparisons := 0
	j := 0
	for i := 0; i < n; i++ {
		for j > 0 && text[i] != pattern[j] {
			comparisons++
			j = failure[j-1]
		}
		comparisons++
		if text[i] == pattern[j] {
			j++
		}
		if j == m {
			positions = append(positions, i-m+1)
			j = failure[j-1]
		}
	}
	metrics.Default().KMPComparisonsTotal.Add(float64(comparisons))
	return positions
}
