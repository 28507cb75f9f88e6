package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/circuit"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/sim"
	"github.com/phobologic/qprefix/internal/toon"
)

func (a *app) circuitCommand() *cobra.Command {
	var (
		width int
		qasm  bool
	)
	cmd := &cobra.Command{
		Use:   "circuit [file]",
		Short: "Build the gate circuit of a source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			md := a.analyze(d)
			c := a.builder(cmd, width).Build(md.Lines)
			return a.emit(c, func(w io.Writer) error {
				if qasm {
					_, err := io.WriteString(w, circuit.QASM(c))
					return err
				}
				_, err := fmt.Fprintf(w, "qubits: %d  depth: %d  gates: %d\n\n%s",
					c.Qubits, c.Depth, len(c.Gates), circuit.Diagram(c))
				return err
			}, func() string { return toon.EncodeCircuit(c) })
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "register width (default circuit.register_width)")
	cmd.Flags().BoolVar(&qasm, "qasm", false, "print OpenQASM 2.0 instead of the diagram")
	return cmd
}

// builder returns the circuit builder for the configured or flagged width.
func (a *app) builder(cmd *cobra.Command, width int) circuit.Builder {
	if !cmd.Flags().Changed("width") {
		width = a.cfg.Circuit.RegisterWidth
	}
	return circuit.Builder{Width: width}
}

// simulation is the outcome of simulating one source.
type simulation struct {
	Path     string      `json:"path,omitempty" yaml:"path,omitempty"`
	Language string      `json:"language" yaml:"language"`
	Depth    int         `json:"depth" yaml:"depth"`
	Result   *sim.Result `json:"result" yaml:"result"`
}

type simulationReport struct {
	Runs     []simulation `json:"runs" yaml:"runs"`
	Fidelity *float64     `json:"fidelity,omitempty" yaml:"fidelity,omitempty"` // set for exactly two runs
}

func (a *app) simulateCommand() *cobra.Command {
	var (
		width int
		shots int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate [file...]",
		Short: "Sample the circuit of each source on the statevector simulator",
		Long: `Build each source's circuit and sample it. Without a seed, each run is
seeded from its document fingerprint, so the same source always yields the same
counts. With two sources the Hellinger fidelity of their distributions is
reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{stdinName}
			}
			if !cmd.Flags().Changed("shots") {
				shots = a.cfg.Simulation.Shots
			}
			if shots < 1 {
				return fmt.Errorf("shots must be positive, got %d", shots)
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Simulation.Seed
			}
			b := a.builder(cmd, width)

			runs := make([]simulation, len(args))
			circuits := make([]*model.Circuit, len(args))
			seeds := make([]uint64, len(args))
			for i, name := range args {
				d, err := a.load(cmd.Context(), name)
				if err != nil {
					return err
				}
				md := a.analyze(d)
				circuits[i] = b.Build(md.Lines)
				seeds[i] = seed
				if seed == 0 {
					seeds[i] = md.Fingerprint
				}
				runs[i] = simulation{Path: d.path(), Language: md.Language, Depth: circuits[i].Depth}
			}

			results, err := sim.RunBatch(cmd.Context(), circuits, shots, seeds, a.cfg.Workers)
			if err != nil {
				return err
			}
			r := &simulationReport{Runs: runs}
			for i, res := range results {
				r.Runs[i].Result = res
			}
			if len(results) == 2 {
				f := sim.Fidelity(results[0].Counts, results[1].Counts)
				r.Fidelity = &f
			}
			return a.emit(r, func(w io.Writer) error {
				return writeSimulation(w, r)
			}, nil)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "register width (default circuit.register_width)")
	cmd.Flags().IntVar(&shots, "shots", sim.DefaultShots, "samples per circuit")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "sampling seed, 0 seeds from the document fingerprint")
	return cmd
}

func writeSimulation(w io.Writer, r *simulationReport) error {
	var b strings.Builder
	for _, run := range r.Runs {
		res := run.Result
		name := run.Path
		if name == "" {
			name = "stdin"
		}
		fmt.Fprintf(&b, "%s (%s): qubits=%d depth=%d shots=%d seed=%d norm=%.6f\n",
			name, run.Language, res.Qubits, run.Depth, res.Shots, res.Seed, res.Norm)
		for _, key := range sortedOutcomes(res.Counts) {
			n := res.Counts[key]
			fmt.Fprintf(&b, "  %s %6d %5.1f%%\n", key, n, float64(n)/float64(res.Shots)*100)
		}
	}
	if r.Fidelity != nil {
		fmt.Fprintf(&b, "fidelity: %.4f\n", *r.Fidelity)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// sortedOutcomes orders outcomes by count, most frequent first, then by key.
func sortedOutcomes(c sim.Counts) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c[keys[i]] != c[keys[j]] {
			return c[keys[i]] > c[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
