package grover

import (
	"math/bits"

	"github.com/qdna-labs/quantum-pattern-search/internal/qsim"
	"github.com/qdna-labs/quantum-pattern-search/internal/sequence"
	"github.com/qdna-labs/quantum-pattern-search/pkg/errors"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// ValueOracle marks every address whose stored value equals the target. It
// works on two registers: the address register in superposition, and a data
// register that a QROM network loads with the value at each address. The
// phase flip is applied to the data register while it holds the loaded
// value, then the QROM load is uncomputed so the data register returns to
// |0...0⟩ before diffusion.
type ValueOracle struct {
	values     []int
	target     int
	marked     []int
	markedSet  map[int]struct{}
	addrQubits int
	dataQubits int
}

// NewValueOracle validates the database and target and precomputes the
// marked address set.
func NewValueOracle(values []int, target int) (*ValueOracle, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, 2, "value database must not be empty")
	}
	maxVal := 0
	for i, v := range values {
		if v < 0 {
			return nil, errors.Newf(errors.ErrInvalidInput, 2, "negative value %d at address %d", v, i)
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if target < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, 2, "negative target value %d", target)
	}
	o := &ValueOracle{
		values:     values,
		target:     target,
		markedSet:  make(map[int]struct{}),
		addrQubits: addressQubits(len(values)),
		dataQubits: dataQubitsFor(maxVal, target),
	}
	// Padding addresses leave the data register at zero, so a zero target
	// would mark them too when the database is padded.
	if target == 0 && 1<<o.addrQubits > len(values) {
		return nil, errors.New(errors.ErrInvalidInput, 2,
			"target 0 is ambiguous with a padded address register; encode values starting at 1")
	}
	for addr, v := range values {
		if v == target {
			o.marked = append(o.marked, addr)
			o.markedSet[addr] = struct{}{}
		}
	}
	return o, nil
}

// EncodeNucleotides maps a DNA sequence to the value encoding used by the
// single-nucleotide search demonstration: A=1, C=2, G=3, T=4. Starting at 1
// keeps value 0 free for the padding addresses.
func EncodeNucleotides(seq string) ([]int, error) {
	codes := map[byte]int{'A': 1, 'C': 2, 'G': 3, 'T': 4}
	values := make([]int, len(seq))
	for i := 0; i < len(seq); i++ {
		code, ok := codes[seq[i]]
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, 2,
				"symbol %q at position %d is not in alphabet %s", seq[i], i, sequence.DefaultAlphabet)
		}
		values[i] = code
	}
	return values, nil
}

// Apply runs QROM load, the phase flip on the data register, and the QROM
// uncomputation. The load network is its own inverse, so unloading replays
// it in reverse address order.
func (o *ValueOracle) Apply(st *qsim.State) {
	for addr, v := range o.values {
		o.encodeValue(st, addr, v)
	}
	o.phaseFlipData(st)
	for addr := len(o.values) - 1; addr >= 0; addr-- {
		o.encodeValue(st, addr, o.values[addr])
	}
	metrics.Default().OracleApplicationsTotal.Inc()
}

// encodeValue XORs value into the data register for the single address
// state addr: the address wires are X-conjugated so the controls fire only
// on that address, and each set bit of the value gets a multi-controlled X.
func (o *ValueOracle) encodeValue(st *qsim.State, addr, value int) {
	addrWires := o.AddressWires()
	for j, w := range addrWires {
		if addr&(1<<(o.addrQubits-1-j)) == 0 {
			st.PauliX(w)
		}
	}
	for j := 0; j < o.dataQubits; j++ {
		if value&(1<<(o.dataQubits-1-j)) != 0 {
			st.MultiControlledX(addrWires, o.addrQubits+j)
		}
	}
	for j, w := range addrWires {
		if addr&(1<<(o.addrQubits-1-j)) == 0 {
			st.PauliX(w)
		}
	}
}

// phaseFlipData flips the sign of states whose data register equals the
// target bit pattern.
func (o *ValueOracle) phaseFlipData(st *qsim.State) {
	dataWires := make([]int, o.dataQubits)
	for j := range dataWires {
		dataWires[j] = o.addrQubits + j
	}
	flipPhase(st, dataWires, o.target)
}

func (o *ValueOracle) TotalQubits() int {
	return o.addrQubits + o.dataQubits
}

func (o *ValueOracle) AddressWires() []int {
	return addressWires(o.addrQubits)
}

func (o *ValueOracle) Marked() []int {
	return o.marked
}

func (o *ValueOracle) Candidates() int {
	return len(o.values)
}

func (o *ValueOracle) IsMarked(pos int) bool {
	_, ok := o.markedSet[pos]
	return ok
}

// dataQubitsFor returns enough qubits to hold both the largest stored value
// and the target, with a minimum of one.
func dataQubitsFor(maxVal, target int) int {
	v := maxVal
	if target > v {
		v = target
	}
	n := bits.Len(uint(v))
	if n < 1 {
		n = 1
	}
	return n
}

var _ Oracle = (*ValueOracle)(nil)
