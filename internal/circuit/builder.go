package circuit

import (
	"github.com/phobologic/qprefix/internal/model"
)

// DefaultWidth is the register width used when a Builder has none.
const DefaultWidth = 8

// Builder lays classified lines out as gates. The pointer rule is a fixed
// convention kept stable so that a document always yields the same circuit.
type Builder struct {
	// Width is the register size the pointer wraps at. Values below 2
	// select DefaultWidth, since two-qubit gates need a distinct target.
	Width int
}

func (b Builder) width() int {
	if b.Width < 2 {
		return DefaultWidth
	}
	return b.Width
}

// Build emits one gate per line on the current pointer, then moves the
// pointer: declaration, logic and assignment advance it (wrapping at the
// width), loop, exit and comment retreat it (never below 0). Two-qubit
// gates target the next qubit around the register.
func (b Builder) Build(lines []model.LineClassification) *model.Circuit {
	w := b.width()
	c := &model.Circuit{
		Gates: make([]model.CircuitGate, 0, len(lines)),
		Width: w,
		Trace: make([]int, 0, len(lines)),
	}

	p, top := 0, -1
	for i, lc := range lines {
		d := Gate(lc.Symbol)
		g := model.CircuitGate{
			Step:   i,
			Gate:   d.Name,
			Qubit:  p,
			Target: -1,
			Param:  d.Param,
			Line:   lc.Line,
			Symbol: lc.Symbol,
		}
		top = max(top, p)
		if d.Arity == 2 {
			g.Target = (p + 1) % w
			top = max(top, g.Target)
		}
		c.Gates = append(c.Gates, g)
		c.Trace = append(c.Trace, p)

		switch Step(lc.Symbol) {
		case 1:
			p = (p + 1) % w
		case -1:
			p = max(p-1, 0)
		}
	}
	c.Qubits = top + 1
	c.Depth = Depth(c.Gates, c.Qubits)
	return c
}

// Depth returns the number of layers when every non-identity gate is placed
// as early as the qubits it touches allow.
func Depth(gates []model.CircuitGate, qubits int) int {
	level := make([]int, qubits)
	depth := 0
	for _, g := range gates {
		if g.Gate == GateID {
			continue
		}
		l := level[g.Qubit]
		if g.Target >= 0 {
			l = max(l, level[g.Target])
		}
		l++
		level[g.Qubit] = l
		if g.Target >= 0 {
			level[g.Target] = l
		}
		depth = max(depth, l)
	}
	return depth
}
