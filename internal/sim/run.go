package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/phobologic/qprefix/internal/circuit"
	"github.com/phobologic/qprefix/internal/model"
)

// Result is the outcome of simulating one circuit.
type Result struct {
	Qubits   int     `json:"qubits" yaml:"qubits"`
	Shots    int     `json:"shots" yaml:"shots"`
	Seed     uint64  `json:"seed" yaml:"seed"`
	Counts   Counts  `json:"counts" yaml:"counts"`
	Measured []int   `json:"measured" yaml:"measured"` // qubits with a measure gate
	Norm     float64 `json:"norm" yaml:"norm"`
}

// NewRand returns the generator used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run applies c's gates to a fresh register and samples every qubit once at
// the end. Measure gates only mark their qubit, so gates after them still
// apply, matching the deferred measurement of circuit.QASM. A circuit over no
// qubits runs on a single idle qubit.
func Run(c *model.Circuit, shots int, seed uint64) (*Result, error) {
	s, err := New(max(c.Qubits, 1))
	if err != nil {
		return nil, err
	}

	marked := make(map[int]struct{})
	for _, g := range c.Gates {
		if g.Gate == circuit.GateMeasure {
			if err := s.check(g.Qubit); err != nil {
				return nil, fmt.Errorf("step %d: %w", g.Step, err)
			}
			marked[g.Qubit] = struct{}{}
			continue
		}
		if err := s.gate(g); err != nil {
			return nil, fmt.Errorf("step %d (line %d, %s): %w", g.Step, g.Line, g.Gate, err)
		}
	}

	norm := s.Norm()
	if shots <= 0 {
		shots = DefaultShots
	}
	counts, err := s.Measure(shots, NewRand(seed))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Qubits:   s.Qubits(),
		Shots:    shots,
		Seed:     seed,
		Counts:   counts,
		Measured: make([]int, 0, len(marked)),
		Norm:     norm,
	}
	for q := range marked {
		res.Measured = append(res.Measured, q)
	}
	sort.Ints(res.Measured)
	return res, nil
}

func (s *State) gate(g model.CircuitGate) error {
	switch g.Gate {
	case circuit.GateID:
		return s.check(g.Qubit)
	case circuit.GateH:
		return s.Apply(H, g.Qubit)
	case circuit.GateX:
		return s.Apply(X, g.Qubit)
	case circuit.GateS:
		return s.Apply(S, g.Qubit)
	case circuit.GateT:
		return s.Apply(T, g.Qubit)
	case circuit.GateRZ:
		return s.Apply(RZ(g.Param), g.Qubit)
	case circuit.GateCX:
		return s.CNOT(g.Qubit, g.Target)
	case circuit.GateCZ:
		return s.CZ(g.Qubit, g.Target)
	case circuit.GateSwap:
		return s.SWAP(g.Qubit, g.Target)
	}
	return fmt.Errorf("sim: unknown gate %q", g.Gate)
}

// RunBatch simulates independent circuits concurrently, at most workers at
// a time (unbounded when workers <= 0). seeds[i] seeds circuits[i]. The
// first failure cancels the remaining runs.
func RunBatch(ctx context.Context, circuits []*model.Circuit, shots int, seeds []uint64, workers int) ([]*Result, error) {
	if len(seeds) != len(circuits) {
		return nil, fmt.Errorf("sim: %d seeds for %d circuits", len(seeds), len(circuits))
	}
	results := make([]*Result, len(circuits))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range circuits {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(c, shots, seeds[i])
			if err != nil {
				return fmt.Errorf("circuit %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Fidelity returns the Hellinger fidelity (sum_i sqrt(p_i q_i))^2 of two
// histograms, each normalized by its own total. It is 0 when either is empty.
func Fidelity(a, b Counts) float64 {
	ta, tb := a.Total(), b.Total()
	if ta == 0 || tb == 0 {
		return 0
	}
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	p := make([]float64, 0, len(keys))
	q := make([]float64, 0, len(keys))
	for k := range keys {
		p = append(p, float64(a[k])/float64(ta))
		q = append(q, float64(b[k])/float64(tb))
	}
	// Bhattacharyya distance is -ln(sum sqrt(p q)).
	return math.Exp(-2 * stat.Bhattacharyya(p, q))
}
