package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phobologic/qprefix/internal/model"
)

// QASM exports c as OpenQASM 2.0. Measure gates are deferred: the program
// applies every other gate in order and then reads the whole register into
// a classical register of the same size, which is the distribution sim.Run
// samples. Identity gates are left out.
func QASM(c *model.Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\ninclude \"qelib1.inc\";\n")
	if c.Qubits == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "qreg q[%d];\ncreg c[%d];\n", c.Qubits, c.Qubits)
	for _, g := range c.Gates {
		switch {
		case g.Gate == GateMeasure || g.Gate == GateID:
			continue
		case g.Target >= 0:
			fmt.Fprintf(&b, "%s q[%d],q[%d];\n", g.Gate, g.Qubit, g.Target)
		case g.Gate == GateRZ:
			fmt.Fprintf(&b, "rz(%s) q[%d];\n", strconv.FormatFloat(g.Param, 'g', -1, 64), g.Qubit)
		default:
			fmt.Fprintf(&b, "%s q[%d];\n", g.Gate, g.Qubit)
		}
	}
	b.WriteString("measure q -> c;\n")
	return b.String()
}
