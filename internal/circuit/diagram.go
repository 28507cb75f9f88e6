package circuit

import (
	"fmt"
	"strings"

	"github.com/phobologic/qprefix/internal/model"
)

const cellWidth = 6

var gateLabels = map[string]string{
	GateH:       "[H]",
	GateX:       "[X]",
	GateRZ:      "[Rz]",
	GateS:       "[S]",
	GateT:       "[T]",
	GateMeasure: "[M]",
}

// Diagram draws c as ASCII wires, one line per qubit, with each gate in the
// column of its step. Two-qubit gates draw a control "*" and a target ("(+)"
// for cx, "*" for cz, "x" for swap) joined by "|" on the wires between them.
func Diagram(c *model.Circuit) string {
	if c.Qubits == 0 {
		return ""
	}
	label := len(fmt.Sprintf("q%d: ", c.Qubits-1))
	rows := make([]strings.Builder, c.Qubits)
	for q := range rows {
		fmt.Fprintf(&rows[q], "%-*s", label, fmt.Sprintf("q%d:", q))
	}

	for _, g := range c.Gates {
		cells := make([]string, c.Qubits)
		switch {
		case g.Target >= 0:
			ctl, tgt := "*", "*"
			switch g.Gate {
			case GateCX:
				tgt = "(+)"
			case GateSwap:
				ctl, tgt = "x", "x"
			}
			cells[g.Qubit] = ctl
			cells[g.Target] = tgt
			for q := min(g.Qubit, g.Target) + 1; q < max(g.Qubit, g.Target); q++ {
				cells[q] = "|"
			}
		case g.Gate != GateID:
			cells[g.Qubit] = gateLabels[g.Gate]
		}
		for q, s := range cells {
			rows[q].WriteString(cell(s))
		}
	}

	var b strings.Builder
	for q := range rows {
		b.WriteString(rows[q].String())
		b.WriteByte('\n')
	}
	return b.String()
}

func cell(s string) string {
	if s == "" {
		return strings.Repeat("-", cellWidth)
	}
	return "-" + s + strings.Repeat("-", cellWidth-1-len(s))
}
