// Package qsim is a small state-vector simulator: a normalized complex
// amplitude vector over a register of qubits, evolved by unitary gates and
// collapsed only at an explicit measurement boundary.
//
// Wire 0 is the most significant bit of a basis-state index, matching the
// usual textbook labelling of |q0 q1 ... qn-1⟩.
package qsim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// State is a normalized amplitude vector over numQubits wires. All gate
// methods are pure unitaries: they never measure or renormalize.
type State struct {
	amps      []complex128
	numQubits int
}

// NewState returns the register initialized to |0...0⟩.
func NewState(numQubits int) *State {
	if numQubits < 1 {
		panic(fmt.Sprintf("qsim: register needs at least one qubit, got %d", numQubits))
	}
	s := &State{
		amps:      make([]complex128, 1<<numQubits),
		numQubits: numQubits,
	}
	s.amps[0] = 1
	return s
}

// NumQubits returns the register width.
func (s *State) NumQubits() int {
	return s.numQubits
}

// Amplitude returns the amplitude of basis state i.
func (s *State) Amplitude(i int) complex128 {
	return s.amps[i]
}

func (s *State) mask(wire int) int {
	if wire < 0 || wire >= s.numQubits {
		panic(fmt.Sprintf("qsim: wire %d out of range for %d qubits", wire, s.numQubits))
	}
	return 1 << (s.numQubits - 1 - wire)
}

// Hadamard applies H to a single wire.
func (s *State) Hadamard(wire int) {
	m := s.mask(wire)
	invSqrt2 := complex(1/math.Sqrt2, 0)
	for i := range s.amps {
		if i&m == 0 {
			a0, a1 := s.amps[i], s.amps[i|m]
			s.amps[i] = (a0 + a1) * invSqrt2
			s.amps[i|m] = (a0 - a1) * invSqrt2
		}
	}
	metrics.Default().GateOpsTotal.WithLabelValues("hadamard").Inc()
}

// PauliX applies the bit-flip gate to a single wire.
func (s *State) PauliX(wire int) {
	m := s.mask(wire)
	for i := range s.amps {
		if i&m == 0 {
			s.amps[i], s.amps[i|m] = s.amps[i|m], s.amps[i]
		}
	}
	metrics.Default().GateOpsTotal.WithLabelValues("pauli_x").Inc()
}

// PauliZ applies the phase-flip gate to a single wire.
func (s *State) PauliZ(wire int) {
	m := s.mask(wire)
	for i := range s.amps {
		if i&m != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
	metrics.Default().GateOpsTotal.WithLabelValues("pauli_z").Inc()
}

// MultiControlledX flips target when every control wire is |1⟩.
func (s *State) MultiControlledX(controls []int, target int) {
	ctrl := 0
	for _, w := range controls {
		ctrl |= s.mask(w)
	}
	t := s.mask(target)
	for i := range s.amps {
		if i&ctrl == ctrl && i&t == 0 {
			s.amps[i], s.amps[i|t] = s.amps[i|t], s.amps[i]
		}
	}
	metrics.Default().GateOpsTotal.WithLabelValues("mcx").Inc()
}

// MultiControlledZ flips the phase of the basis states where every listed
// wire is |1⟩. With a single wire it degenerates to PauliZ.
func (s *State) MultiControlledZ(wires []int) {
	m := 0
	for _, w := range wires {
		m |= s.mask(w)
	}
	for i := range s.amps {
		if i&m == m {
			s.amps[i] = -s.amps[i]
		}
	}
	metrics.Default().GateOpsTotal.WithLabelValues("mcz").Inc()
}

// Probabilities returns the marginal distribution over the listed wires,
// ordered with the first wire as the most significant bit of the result
// index.
func (s *State) Probabilities(wires []int) []float64 {
	masks := make([]int, len(wires))
	for i, w := range wires {
		masks[i] = s.mask(w)
	}
	probs := make([]float64, 1<<len(wires))
	for i, amp := range s.amps {
		sub := 0
		for j, m := range masks {
			if i&m != 0 {
				sub |= 1 << (len(wires) - 1 - j)
			}
		}
		probs[sub] += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return probs
}

// TotalProbability returns the sum of squared amplitude magnitudes. It is 1
// (within floating-point error) for any state reached purely by unitaries.
func (s *State) TotalProbability() float64 {
	sq := make([]float64, len(s.amps))
	for i, amp := range s.amps {
		sq[i] = real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return floats.Sum(sq)
}

// Measure samples a basis state of the listed wires with probability equal
// to its squared amplitude magnitude. The outcome is a pure function of the
// provided random source, so trials are reproducible given a fixed seed.
func (s *State) Measure(wires []int, rng *rand.Rand) int {
	probs := s.Probabilities(wires)
	r := rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	// Rounding can leave cumulative slightly below 1.
	return len(probs) - 1
}
