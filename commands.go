package main

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/batch"
	"github.com/phobologic/qprefix/internal/classify"
	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/toon"
)

func (a *app) annotateCommand() *cobra.Command {
	var numbered bool
	cmd := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Print a source with its prefix gutter",
		Long: `Print every line of a source prefixed with its quantum symbol.
The source is a path, an afs URL, or "-" for standard input (the default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			md := a.analyze(d)
			return a.emit(md, func(w io.Writer) error {
				_, err := io.WriteString(w, classify.Annotate(md, d.Source, numbered))
				return err
			}, func() string { return toon.EncodeDocument(md) })
		},
	}
	cmd.Flags().BoolVarP(&numbered, "numbers", "n", false, "include line numbers")
	return cmd
}

func (a *app) packCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Classify with the parallel kernel and write packed 4-bit codes",
		Long: `Classify a source with the parallel kernel and write the packed
result (eight 4-bit symbol codes per word plus the core histogram) as msgpack.
With --format json or yaml the result is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			p := &classify.Parallel{Workers: a.cfg.Workers, MaxLineLength: a.cfg.MaxLineLength}
			res := p.Pack(classify.SplitLines(d.Source), a.languageOf(d))
			a.log.Info().
				Str("language", res.Language).
				Int("lines", res.Lines).
				Int("words", len(res.Packed)).
				Msg("packed")

			if a.format == formatJSON || a.format == formatYAML {
				return a.emit(res, nil, nil)
			}
			var buf bytes.Buffer
			if err := batch.Encode(&buf, res); err != nil {
				return err
			}
			if output == "" {
				_, err := a.stdout.Write(buf.Bytes())
				return err
			}
			location := output
			if !strings.Contains(output, "://") {
				if location, err = filepath.Abs(output); err != nil {
					return err
				}
			}
			if err := a.fs.Upload(cmd.Context(), location, 0o644, &buf); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path or afs URL instead of stdout")
	return cmd
}

func (a *app) compareCommand() *cobra.Command {
	var first, second string
	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Report where two backends classify a source differently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts := classify.Options{Workers: a.cfg.Workers, MaxLineLength: a.cfg.MaxLineLength}
			ba, err := classify.New(first, opts)
			if err != nil {
				return err
			}
			bb, err := classify.New(second, opts)
			if err != nil {
				return err
			}
			r := classify.Compare(ba, bb, classify.SplitLines(d.Source), a.languageOf(d))
			return a.emit(r, func(w io.Writer) error {
				return writeComparison(w, r)
			}, nil)
		},
	}
	cmd.Flags().StringVar(&first, "first", classify.BackendAST, "first backend")
	cmd.Flags().StringVar(&second, "second", classify.BackendRegex, "second backend")
	return cmd
}

func writeComparison(w io.Writer, r *classify.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "language: %s\n", r.Language)
	fmt.Fprintf(&b, "%s vs %s: %d/%d lines agree (%.1f%%)\n", r.A, r.B, r.Agree, r.Lines, r.Agreement)
	fmt.Fprintf(&b, "coverage: %s %d%%, %s %d%%\n", r.A, r.CoverageA, r.B, r.CoverageB)
	for _, d := range r.Disagreements {
		fmt.Fprintf(&b, "%5d  %-12s %-12s %s\n", d.Line, d.A, d.B, strings.TrimSpace(d.Text))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type languageInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Filenames  []string `json:"filenames,omitempty" yaml:"filenames,omitempty"`
	Rules      int      `json:"rules" yaml:"rules"`
	AST        bool     `json:"ast" yaml:"ast"`
}

func (a *app) langsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var infos []languageInfo
			for _, name := range lang.Names() {
				l := lang.Languages[name]
				infos = append(infos, languageInfo{
					Name:       l.Name,
					Aliases:    l.Aliases,
					Extensions: l.Extensions,
					Filenames:  l.Filenames,
					Rules:      len(l.Rules),
					AST:        l.Grammar() != nil,
				})
			}
			return a.emit(infos, func(w io.Writer) error {
				var b strings.Builder
				for _, info := range infos {
					ast := ""
					if info.AST {
						ast = "ast"
					}
					fmt.Fprintf(&b, "%-12s %3d rules  %-4s %s\n", info.Name, info.Rules, ast,
						strings.Join(append(append([]string{}, info.Extensions...), info.Filenames...), " "))
				}
				_, err := io.WriteString(w, b.String())
				return err
			}, nil)
		},
	}
}

// writeCounts writes one row per category with lines, in reporting order.
func writeCounts(b *strings.Builder, counts map[model.Category]int) {
	for _, c := range model.Categories {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(b, "  %3s  %-12s %d\n", c.Symbol(), c, n)
		}
	}
}
