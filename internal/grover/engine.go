package grover

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/qdna-labs/quantum-pattern-search/internal/qsim"
	"github.com/qdna-labs/quantum-pattern-search/pkg/config"
	"github.com/qdna-labs/quantum-pattern-search/pkg/errors"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

// Outcome is the aggregated result of running the amplification engine.
type Outcome struct {
	NoMatch      bool        `json:"no_match"`
	BestPosition int         `json:"best_position"`
	Confidence   float64     `json:"confidence"`
	Theoretical  float64     `json:"theoretical_probability"`
	Iterations   int         `json:"iterations"`
	Trials       int         `json:"trials"`
	Frequencies  map[int]int `json:"frequencies"`
	Distribution []float64   `json:"distribution,omitempty"`
}

// Engine runs Grover amplitude amplification over an oracle's address
// register: uniform superposition, a fixed number of oracle+diffusion
// rounds, then a terminal measurement. Measurement is the only
// nondeterministic step, so the engine repeats independent trials and
// aggregates a frequency result.
type Engine struct {
	oracle     Oracle
	cfg        config.QuantumConfig
	logger     *slog.Logger
	iterations int
	theta      float64
}

// NewEngine derives the iteration count floor(π/4·√(N'/M)) from the
// oracle's padded register size N' and marked-set size M, capped at the
// configured maximum. An empty marked set yields zero iterations; Run then
// short-circuits to a NoMatch outcome.
func NewEngine(oracle Oracle, cfg config.QuantumConfig) *Engine {
	e := &Engine{
		oracle: oracle,
		cfg:    cfg,
		logger: slog.Default().With("component", "grover-engine"),
	}
	m := len(oracle.Marked())
	if m > 0 {
		paddedN := 1 << len(oracle.AddressWires())
		e.theta = successAngle(m, paddedN)
		e.iterations = int(math.Floor(math.Pi / 4 * math.Sqrt(float64(paddedN)/float64(m))))
		if e.iterations > cfg.MaxIterations {
			e.iterations = cfg.MaxIterations
		}
	}
	metrics.Default().GroverIterations.Observe(float64(e.iterations))
	return e
}

// Iterations returns the number of oracle+diffusion rounds per trial.
func (e *Engine) Iterations() int {
	return e.iterations
}

// TheoreticalSuccess returns sin²((2k+1)θ), the closed-form probability of
// measuring a marked position after k rounds.
func (e *Engine) TheoreticalSuccess() float64 {
	if len(e.oracle.Marked()) == 0 {
		return 0
	}
	s := math.Sin(float64(2*e.iterations+1) * e.theta)
	return s * s
}

// prepare evolves a fresh register through the full circuit: uniform
// superposition on the address wires, then the oracle+diffusion rounds. No
// measurement happens here.
func (e *Engine) prepare() *qsim.State {
	st := qsim.NewState(e.oracle.TotalQubits())
	wires := e.oracle.AddressWires()
	for _, w := range wires {
		st.Hadamard(w)
	}
	for i := 0; i < e.iterations; i++ {
		e.oracle.Apply(st)
		Diffuse(st, wires)
	}
	return st
}

// Distribution returns the pre-measurement probability of each valid
// candidate position after amplification.
func (e *Engine) Distribution() []float64 {
	st := e.prepare()
	return st.Probabilities(e.oracle.AddressWires())[:e.oracle.Candidates()]
}

// RunTrial runs one independent init-iterate-measure cycle and returns the
// sampled position. The trial owns its state and random source; nothing is
// shared with concurrent trials.
func (e *Engine) RunTrial(rng *rand.Rand) int {
	st := e.prepare()
	return st.Measure(e.oracle.AddressWires(), rng)
}

// Run repeats RunTrial according to the configured trial budget, in
// parallel, and aggregates a majority result. A sampled position outside the
// marked set is recorded as a possible false negative, not a failure; the
// error ErrTrialBudgetExhausted is returned only when the whole budget
// produced no marked majority.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	if len(e.oracle.Marked()) == 0 {
		e.logger.Info("marked set empty, skipping amplification")
		return &Outcome{NoMatch: true}, nil
	}

	samples := make([]int, e.cfg.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for t := 0; t < e.cfg.Trials; t++ {
		t := t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(e.cfg.Seed + int64(t)))
			samples[t] = e.RunTrial(rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := e.aggregate(samples)
	e.logger.Info("amplification finished",
		"iterations", outcome.Iterations,
		"trials", outcome.Trials,
		"best_position", outcome.BestPosition,
		"confidence", outcome.Confidence,
		"theoretical", outcome.Theoretical,
	)
	if !e.oracle.IsMarked(outcome.BestPosition) {
		return outcome, errors.Newf(errors.ErrTrialBudgetExhausted, 3,
			"%d trials produced no majority on a marked position", outcome.Trials)
	}
	return outcome, nil
}

// aggregate turns raw trial samples into frequencies, a best position, and
// an empirical confidence.
func (e *Engine) aggregate(samples []int) *Outcome {
	freq := make(map[int]int)
	hits := make([]float64, len(samples))
	m := metrics.Default()
	for i, pos := range samples {
		switch {
		case e.oracle.IsMarked(pos):
			hits[i] = 1
			m.TrialsTotal.WithLabelValues("hit").Inc()
		case pos >= e.oracle.Candidates():
			m.TrialsTotal.WithLabelValues("padding").Inc()
		default:
			m.TrialsTotal.WithLabelValues("miss").Inc()
		}
		if pos < e.oracle.Candidates() {
			freq[pos]++
		}
	}

	best, bestCount := 0, -1
	for pos, count := range freq {
		if count > bestCount || (count == bestCount && pos < best) {
			best, bestCount = pos, count
		}
	}

	return &Outcome{
		BestPosition: best,
		Confidence:   stat.Mean(hits, nil),
		Theoretical:  e.TheoreticalSuccess(),
		Iterations:   e.iterations,
		Trials:       len(samples),
		Frequencies:  freq,
	}
}
