// Package sequence provides validation and utility functions for symbol
// sequences over a fixed alphabet (by default the DNA nucleotides ACGT).
package sequence

import (
	"fmt"
	"math/rand"
	"strings"

	apperrors "github.com/qdna-labs/quantum-pattern-search/pkg/errors"
)

// DefaultAlphabet is the nucleotide alphabet used by the bundled
// demonstrations.
const DefaultAlphabet = "ACGT"

// Alphabet is the set of symbols a text or pattern may contain.
type Alphabet struct {
	symbols map[byte]struct{}
	name    string
}

// NewAlphabet builds an Alphabet from the distinct bytes of symbols.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if symbols == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, 2, "alphabet must not be empty")
	}
	a := &Alphabet{
		symbols: make(map[byte]struct{}, len(symbols)),
		name:    symbols,
	}
	for i := 0; i < len(symbols); i++ {
		a.symbols[symbols[i]] = struct{}{}
	}
	return a, nil
}

// Contains reports whether b is a symbol of the alphabet.
func (a *Alphabet) Contains(b byte) bool {
	_, ok := a.symbols[b]
	return ok
}

// Size returns the number of distinct symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

func (a *Alphabet) String() string {
	return a.name
}

// Validate checks that every byte of seq is a symbol of the alphabet.
func (a *Alphabet) Validate(seq string) error {
	for i := 0; i < len(seq); i++ {
		if !a.Contains(seq[i]) {
			return apperrors.Newf(apperrors.ErrInvalidInput, 2,
				"symbol %q at position %d is not in alphabet %s", seq[i], i, a.name)
		}
	}
	return nil
}

// ValidateSearchInput checks a (text, pattern) pair before any matcher runs:
// the pattern must be non-empty, no longer than the text, and both sequences
// must stay inside the alphabet (when one is given).
func ValidateSearchInput(text, pattern string, alphabet *Alphabet) error {
	if len(pattern) == 0 {
		return apperrors.New(apperrors.ErrInvalidInput, 2, "pattern must not be empty")
	}
	if len(pattern) > len(text) {
		return apperrors.Newf(apperrors.ErrInvalidInput, 2,
			"pattern length %d exceeds text length %d", len(pattern), len(text))
	}
	if alphabet != nil {
		if err := alphabet.Validate(text); err != nil {
			return err
		}
		if err := alphabet.Validate(pattern); err != nil {
			return err
		}
	}
	return nil
}

// GCContent returns the fraction of G and C nucleotides in seq.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0.0
	}
	gcCount := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			gcCount++
		}
	}
	return float64(gcCount) / float64(len(seq))
}

// ReverseComplement returns the reverse complement of a DNA sequence.
// Unknown bases map to N.
func ReverseComplement(seq string) string {
	complement := map[byte]byte{
		'A': 'T', 'T': 'A',
		'C': 'G', 'G': 'C',
		'N': 'N',
	}
	var sb strings.Builder
	sb.Grow(len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		if comp, ok := complement[seq[i]]; ok {
			sb.WriteByte(comp)
		} else {
			sb.WriteByte('N')
		}
	}
	return sb.String()
}

// Random returns a random sequence of length n drawn uniformly from the
// alphabet, using the provided random source.
func Random(n int, alphabet string, rng *rand.Rand) string {
	if alphabet == "" {
		panic(fmt.Sprintf("sequence.Random: empty alphabet (n=%d)", n))
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return sb.String()
}
