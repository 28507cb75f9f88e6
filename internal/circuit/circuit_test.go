package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/qprefix/internal/model"
)

func classified(syms ...model.Symbol) []model.LineClassification {
	out := make([]model.LineClassification, len(syms))
	for i, s := range syms {
		out[i] = model.LineClassification{Line: i + 1, Symbol: s}
	}
	return out
}

func TestGateTableIsTotal(t *testing.T) {
	t.Parallel()

	for _, s := range model.Symbols {
		d := Gate(s)
		assert.NotEmpty(t, d.Name, "symbol %s", s)
		assert.Contains(t, []int{1, 2}, d.Arity, "symbol %s", s)
	}
	assert.Equal(t, GateMeasure, Gate(model.Default.Symbol()).Name)
	assert.Equal(t, GateH, Gate(model.Declaration.Symbol()).Name)
	assert.Equal(t, GateCX, Gate(model.Logic.Symbol()).Name)
	assert.InDelta(t, math.Pi/4, Gate(model.PlusZero).Param, 1e-12)
	assert.True(t, Gate(model.PlusZero).Parametric)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	c := Builder{}.Build(classified(model.PlusOne, model.One, model.MinusOne, model.PlusN, model.PlusZero))

	assert.Equal(t, DefaultWidth, c.Width)
	assert.Equal(t, 3, c.Qubits)
	assert.Equal(t, 3, c.Depth)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, c.Trace)

	want := []model.CircuitGate{
		{Step: 0, Gate: GateH, Qubit: 0, Target: -1, Line: 1, Symbol: model.PlusOne},
		{Step: 1, Gate: GateCX, Qubit: 1, Target: 2, Line: 2, Symbol: model.One},
		{Step: 2, Gate: GateX, Qubit: 2, Target: -1, Line: 3, Symbol: model.MinusOne},
		{Step: 3, Gate: GateMeasure, Qubit: 2, Target: -1, Line: 4, Symbol: model.PlusN},
		{Step: 4, Gate: GateRZ, Qubit: 1, Target: -1, Param: math.Pi / 4, Line: 5, Symbol: model.PlusZero},
	}
	assert.Equal(t, want, c.Gates)
}

func TestBuildPointer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		syms   []model.Symbol
		trace  []int
		qubits int
	}{
		{"empty", 0, nil, []int{}, 0},
		{"retreat clamps at zero", 0, []model.Symbol{model.MinusZero, model.PlusTwo, model.PlusOne}, []int{0, 0, 0}, 2},
		{"neutral stays", 0, []model.Symbol{model.Zero, model.Zero, model.N}, []int{0, 0, 0}, 1},
		{"wraps at width", 2, []model.Symbol{model.PlusOne, model.PlusOne, model.PlusOne}, []int{0, 1, 0}, 2},
		{"target wraps", 2, []model.Symbol{model.PlusOne, model.One}, []int{0, 1}, 2},
		{"width below two uses default", 1, []model.Symbol{model.PlusOne, model.PlusOne}, []int{0, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Builder{Width: tt.width}.Build(classified(tt.syms...))
			assert.Equal(t, tt.trace, c.Trace)
			assert.Equal(t, tt.qubits, c.Qubits)
			for _, g := range c.Gates {
				assert.Less(t, g.Qubit, c.Qubits)
				assert.Less(t, g.Target, c.Qubits)
				assert.NotEqual(t, g.Qubit, g.Target)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	lines := classified(model.Symbols...)
	assert.Equal(t, Builder{}.Build(lines), Builder{}.Build(lines))
}

func TestDepthIgnoresIdentity(t *testing.T) {
	t.Parallel()

	c := Builder{}.Build(classified(model.Zero, model.Zero, model.Zero))
	assert.Equal(t, 0, c.Depth)

	// h on q0 then h on q1 share a layer
	c = Builder{}.Build(classified(model.PlusOne, model.PlusOne))
	assert.Equal(t, 1, c.Depth)
}

func TestDiagram(t *testing.T) {
	t.Parallel()

	c := Builder{}.Build(classified(model.PlusOne, model.One))
	want := "q0: -[H]--------\n" +
		"q1: -------*----\n" +
		"q2: -------(+)--\n"
	assert.Equal(t, want, Diagram(c))
	assert.Equal(t, "", Diagram(&model.Circuit{}))
}

func TestDiagramSpansWrappedTarget(t *testing.T) {
	t.Parallel()

	c := Builder{Width: 3}.Build(classified(model.PlusOne, model.PlusOne, model.PlusThree))
	want := "q0: -[H]---------x----\n" +
		"q1: -------[H]---|----\n" +
		"q2: -------------x----\n"
	assert.Equal(t, want, Diagram(c))
}

func TestQASM(t *testing.T) {
	t.Parallel()

	c := Builder{}.Build(classified(model.PlusOne, model.One, model.PlusZero, model.Zero, model.MinusN))
	got := QASM(c)
	want := "OPENQASM 2.0;\n" +
		"include \"qelib1.inc\";\n" +
		"qreg q[4];\n" +
		"creg c[4];\n" +
		"h q[0];\n" +
		"cx q[1],q[2];\n" +
		"rz(0.7853981633974483) q[2];\n" +
		"measure q -> c;\n"
	require.Equal(t, want, got)
	assert.NotContains(t, got, "id q")
}

// TestQASMDefersMeasure checks that gates after a measure line stay ahead of
// the single terminal measurement.
func TestQASMDefersMeasure(t *testing.T) {
	t.Parallel()

	c := Builder{}.Build(classified(model.PlusOne, model.MinusZero, model.PlusN, model.Zero, model.PlusOne))
	want := "OPENQASM 2.0;\n" +
		"include \"qelib1.inc\";\n" +
		"qreg q[2];\n" +
		"creg c[2];\n" +
		"h q[0];\n" +
		"s q[1];\n" +
		"h q[0];\n" +
		"measure q -> c;\n"
	assert.Equal(t, want, QASM(c))
	assert.Equal(t, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n", QASM(&model.Circuit{}))
}
