// Package sim is a dense statevector simulator for the small circuits built
// from classified documents.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	// MaxQubits bounds the register so the amplitude array stays at 4096 entries.
	MaxQubits = 12

	// DefaultShots is the sample count used when none is given.
	DefaultShots = 1024
)

var (
	// ErrQubitCount is returned for a register size outside [1, MaxQubits].
	ErrQubitCount = errors.New("sim: qubit count out of range")

	// ErrQubitIndex is returned when a gate names a qubit outside the
	// register, or the same qubit twice.
	ErrQubitIndex = errors.New("sim: qubit index out of range")

	// ErrMeasured is returned for any operation after the terminal measurement.
	ErrMeasured = errors.New("sim: state already measured")
)

// Matrix is a single-qubit gate.
type Matrix [2][2]complex128

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Standard single-qubit gates.
var (
	I = Matrix{{1, 0}, {0, 1}}
	X = Matrix{{0, 1}, {1, 0}}
	Y = Matrix{{0, -1i}, {1i, 0}}
	Z = Matrix{{1, 0}, {0, -1}}
	H = Matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}
	S = Matrix{{1, 0}, {0, 1i}}
	T = Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
)

// RZ returns a rotation about Z by theta.
func RZ(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// State holds 2^n amplitudes indexed by the basis state, qubit 0 being the
// least significant bit. It starts in |0...0> and is mutated in place by
// each gate until the terminal Measure. Amplitudes are never renormalized.
type State struct {
	n        int
	amp      []complex128
	measured bool
}

// New returns an n-qubit register in the all-zero state.
func New(n int) (*State, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrQubitCount, n, MaxQubits)
	}
	amp := make([]complex128, 1<<n)
	amp[0] = 1
	return &State{n: n, amp: amp}, nil
}

// Qubits returns the register size.
func (s *State) Qubits() int { return s.n }

// Amplitudes returns a copy of the amplitudes.
func (s *State) Amplitudes() []complex128 {
	return append([]complex128(nil), s.amp...)
}

// Norm returns the total probability, 1 up to rounding.
func (s *State) Norm() float64 {
	var sum float64
	for _, a := range s.amp {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}

// Probabilities returns |amplitude|^2 per basis state.
func (s *State) Probabilities() []float64 {
	p := make([]float64, len(s.amp))
	for i, a := range s.amp {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}

func (s *State) check(qs ...int) error {
	if s.measured {
		return ErrMeasured
	}
	for i, q := range qs {
		if q < 0 || q >= s.n {
			return fmt.Errorf("%w: %d (register has %d)", ErrQubitIndex, q, s.n)
		}
		for _, r := range qs[:i] {
			if r == q {
				return fmt.Errorf("%w: qubit %d used twice", ErrQubitIndex, q)
			}
		}
	}
	return nil
}

// Apply applies m to qubit q. Every pair of indices differing only in bit q
// is visited once, from the index with the bit clear.
func (s *State) Apply(m Matrix, q int) error {
	if err := s.check(q); err != nil {
		return err
	}
	bit := 1 << q
	for i := range s.amp {
		if i&bit != 0 {
			continue
		}
		a0, a1 := s.amp[i], s.amp[i|bit]
		s.amp[i] = m[0][0]*a0 + m[0][1]*a1
		s.amp[i|bit] = m[1][0]*a0 + m[1][1]*a1
	}
	return nil
}

// CNOT flips target wherever control is set.
func (s *State) CNOT(control, target int) error {
	if err := s.check(control, target); err != nil {
		return err
	}
	cb, tb := 1<<control, 1<<target
	for i := range s.amp {
		if i&cb != 0 && i&tb == 0 {
			s.amp[i], s.amp[i|tb] = s.amp[i|tb], s.amp[i]
		}
	}
	return nil
}

// CZ negates amplitudes where both qubits are set.
func (s *State) CZ(control, target int) error {
	if err := s.check(control, target); err != nil {
		return err
	}
	mask := 1<<control | 1<<target
	for i := range s.amp {
		if i&mask == mask {
			s.amp[i] = -s.amp[i]
		}
	}
	return nil
}

// SWAP exchanges two qubits.
func (s *State) SWAP(a, b int) error {
	if err := s.check(a, b); err != nil {
		return err
	}
	ab, bb := 1<<a, 1<<b
	for i := range s.amp {
		if i&ab != 0 && i&bb == 0 {
			j := i&^ab | bb
			s.amp[i], s.amp[j] = s.amp[j], s.amp[i]
		}
	}
	return nil
}

// Counts maps zero-padded binary basis states to shot counts.
type Counts map[string]int

// Total returns the number of shots recorded.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Measure draws shots samples from the basis-state distribution by
// inverse-CDF selection and ends the state's life. shots <= 0 selects
// DefaultShots.
func (s *State) Measure(shots int, rng *rand.Rand) (Counts, error) {
	if s.measured {
		return nil, ErrMeasured
	}
	s.measured = true
	if shots <= 0 {
		shots = DefaultShots
	}

	cdf := floats.CumSum(make([]float64, len(s.amp)), s.Probabilities())
	total := cdf[len(cdf)-1]
	counts := make(Counts)
	for range shots {
		r := rng.Float64() * total
		i := sort.Search(len(cdf), func(i int) bool { return cdf[i] > r })
		if i == len(cdf) {
			i--
		}
		counts[s.key(i)]++
	}
	return counts, nil
}

func (s *State) key(i int) string {
	return fmt.Sprintf("%0*b", s.n, i)
}
