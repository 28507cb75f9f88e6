// qprefix classifies source lines with quantum prefixes, maps them to gate
// circuits and simulates the result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/phobologic/qprefix/internal/classify"
	"github.com/phobologic/qprefix/internal/config"
	"github.com/phobologic/qprefix/internal/logging"
)

var version = "dev"

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOON = "toon"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the flags and dependencies shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	backend    string
	language   string
	format     string
	workers    int
	logLevel   string
	pretty     bool

	cfg      *config.Config
	log      zerolog.Logger
	analyzer *classify.Analyzer
	fs       afs.Service
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, fs: afs.New()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "qprefix",
		Short: "Quantum-prefix source classification, circuits and simulation",
		Long: `qprefix tags every line of a source file with one of the quantum prefix
symbols {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3}, turns the tagged document
into a gate circuit and samples that circuit on a statevector simulator.`,
		Version:           version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringVarP(&a.backend, "backend", "b", "", "classifier backend: regex, parallel or ast")
	pf.StringVarP(&a.language, "lang", "l", "", "language hint, overrides detection")
	pf.StringVarP(&a.format, "format", "f", formatText, "output format: text, json, yaml or toon")
	pf.IntVarP(&a.workers, "workers", "w", 0, "worker count, 0 means one per CPU")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.pretty, "pretty-log", false, "human-readable log output")

	root.AddCommand(
		a.annotateCommand(),
		a.analyzeCommand(),
		a.packCommand(),
		a.circuitCommand(),
		a.simulateCommand(),
		a.compareCommand(),
		a.diffCommand(),
		a.scanCommand(),
		a.gapsCommand(),
		a.headerCommand(),
		a.watchCommand(),
		a.langsCommand(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger
// and the analyzer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("lang") {
		cfg.Language = a.language
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("pretty-log") {
		cfg.Log.Pretty = a.pretty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch a.format {
	case formatText, formatJSON, formatYAML, formatTOON:
	default:
		return fmt.Errorf("unknown format %q (want text, json, yaml or toon)", a.format)
	}

	backend, err := classify.New(cfg.Backend, classify.Options{
		Workers:       cfg.Workers,
		MaxLineLength: cfg.MaxLineLength,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, a.stderr)
	a.analyzer = classify.NewAnalyzer(backend, a.log)
	a.log.Debug().
		Str("command", cmd.Name()).
		Str("backend", backend.Name()).
		Int("workers", cfg.Workers).
		Msg("configured")
	return nil
}
