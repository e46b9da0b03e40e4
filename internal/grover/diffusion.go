package grover

import (
	"github.com/qdna-labs/quantum-pattern-search/internal/qsim"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// Diffuse applies the Grover diffusion operator 2|ψ⟩⟨ψ| − I (up to global
// phase) to the given wires: Hadamard and X on every wire, a
// multi-controlled Z across them, then the conjugation undone. It reflects
// the state about the mean amplitude and preserves total probability.
func Diffuse(st *qsim.State, wires []int) {
	for _, w := range wires {
		st.Hadamard(w)
		st.PauliX(w)
	}
	st.MultiControlledZ(wires)
	for _, w := range wires {
		st.PauliX(w)
		st.Hadamard(w)
	}
	metrics.Default().DiffusionApplicationsTotal.Inc()
}
