// Package grover implements the quantum pattern-search core: a phase-flip
// oracle over candidate alignment positions, the diffusion operator, and the
// amplitude-amplification engine that drives them.
package grover

import (
	"math"
	"math/bits"

	"github.com/qdna-labs/quantum-pattern-search/internal/qsim"
	"github.com/qdna-labs/quantum-pattern-search/internal/sequence"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// Oracle is a phase-flip unitary over an address register. Applying it twice
// is the identity.
type Oracle interface {
	// Apply flips the sign of every marked basis state. Pure unitary: no
	// measurement, no collapse.
	Apply(st *qsim.State)
	// TotalQubits is the full register width the circuit needs.
	TotalQubits() int
	// AddressWires are the wires encoding candidate positions.
	AddressWires() []int
	// Marked is the classically precomputed solution set, ascending.
	Marked() []int
	// Candidates is the number of valid positions N; address states >= N
	// are padding and never marked.
	Candidates() int
	// IsMarked reports whether a measured position is a solution.
	IsMarked(pos int) bool
}

// PatternOracle marks every alignment position p where text[p:p+m] equals
// the pattern. The marked set is determined classically before circuit
// synthesis and baked directly into the gate network; no lookup structure is
// consulted during the unitary steps.
type PatternOracle struct {
	marked     []int
	markedSet  map[int]struct{}
	candidates int
	addrQubits int
}

// NewPatternOracle validates the inputs and synthesizes the oracle for the
// (text, pattern) pair. The position register is padded to the next power of
// two; padding states are never marked and are excluded from valid output.
func NewPatternOracle(text, pattern string, alphabet *sequence.Alphabet) (*PatternOracle, error) {
	if err := sequence.ValidateSearchInput(text, pattern, alphabet); err != nil {
		return nil, err
	}
	n := len(text) - len(pattern) + 1
	o := &PatternOracle{
		markedSet:  make(map[int]struct{}),
		candidates: n,
		addrQubits: addressQubits(n),
	}
	for p := 0; p < n; p++ {
		if text[p:p+len(pattern)] == pattern {
			o.marked = append(o.marked, p)
			o.markedSet[p] = struct{}{}
		}
	}
	return o, nil
}

// Apply flips the phase of each marked position via an X-conjugated
// multi-controlled Z on the address register, one gate group per marked
// state.
func (o *PatternOracle) Apply(st *qsim.State) {
	wires := o.AddressWires()
	for _, p := range o.marked {
		flipPhase(st, wires, p)
	}
	metrics.Default().OracleApplicationsTotal.Inc()
}

func (o *PatternOracle) TotalQubits() int {
	return o.addrQubits
}

func (o *PatternOracle) AddressWires() []int {
	return addressWires(o.addrQubits)
}

func (o *PatternOracle) Marked() []int {
	return o.marked
}

func (o *PatternOracle) Candidates() int {
	return o.candidates
}

func (o *PatternOracle) IsMarked(pos int) bool {
	_, ok := o.markedSet[pos]
	return ok
}

// flipPhase negates the amplitude of the single basis state p of the given
// wires: X on every wire where p has a 0 bit, a multi-controlled Z across
// all wires, then the X conjugation undone.
func flipPhase(st *qsim.State, wires []int, p int) {
	n := len(wires)
	for j, w := range wires {
		if p&(1<<(n-1-j)) == 0 {
			st.PauliX(w)
		}
	}
	st.MultiControlledZ(wires)
	for j, w := range wires {
		if p&(1<<(n-1-j)) == 0 {
			st.PauliX(w)
		}
	}
}

// addressQubits returns ceil(log2(n)), with a minimum of one qubit.
func addressQubits(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

func addressWires(addrQubits int) []int {
	wires := make([]int, addrQubits)
	for i := range wires {
		wires[i] = i
	}
	return wires
}

// successAngle returns theta = arcsin(sqrt(m/paddedN)).
func successAngle(m, paddedN int) float64 {
	return math.Asin(math.Sqrt(float64(m) / float64(paddedN)))
}

var _ Oracle = (*PatternOracle)(nil)
