package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/discover"
	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/review"
)

func (a *app) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Diff two versions of a source by their annotated lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldDoc, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newDoc, err := a.load(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			// Both sides use the new version's language.
			l := a.languageOf(newDoc)
			r, err := review.Diff(args[0], args[1], oldDoc.Source, newDoc.Source, l, a.analyzer.Backend())
			if err != nil {
				return err
			}
			return a.emit(r, func(w io.Writer) error {
				var b strings.Builder
				b.WriteString(r.Diff)
				fmt.Fprintf(&b, "%d additions, %d deletions\n", r.Additions, r.Deletions)
				for _, sym := range symbolKeys(r.Changes) {
					fmt.Fprintf(&b, "  %3s %d\n", sym, r.Changes[sym])
				}
				_, err := io.WriteString(w, b.String())
				return err
			}, nil)
		},
	}
}

func (a *app) scanCommand() *cobra.Command {
	var (
		maxRisk   int
		skipTests bool
	)
	cmd := &cobra.Command{
		Use:   "scan [file|dir]",
		Short: "Check sources for risky patterns, tagged with each line's prefix",
		Long: `Check a source for risky patterns. Given a directory, every file whose
language has a rule set is scanned and the files with findings are listed,
riskiest first. --max-risk applies to the total.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
					t, err := a.scanDir(cmd.Context(), args[0], skipTests)
					if err != nil {
						return err
					}
					err = a.emit(t, func(w io.Writer) error {
						return writeTree(w, t)
					}, nil)
					if err != nil {
						return err
					}
					return checkRisk(t.Risk, maxRisk)
				}
			}
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			r := review.Scan(d.Source, a.languageOf(d), a.analyzer.Backend())
			err = a.emit(r, func(w io.Writer) error {
				return writeScan(w, r)
			}, nil)
			if err != nil {
				return err
			}
			return checkRisk(r.Risk, maxRisk)
		},
	}
	cmd.Flags().IntVar(&maxRisk, "max-risk", -1, "fail when the risk score exceeds this value, -1 never fails")
	cmd.Flags().BoolVar(&skipTests, "skip-tests", false, "ignore test files in directory mode")
	return cmd
}

func checkRisk(risk, maxRisk int) error {
	if maxRisk >= 0 && risk > maxRisk {
		return fmt.Errorf("risk score %d exceeds %d", risk, maxRisk)
	}
	return nil
}

func (a *app) scanDir(ctx context.Context, root string, skipTests bool) (*review.TreeReport, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	files, err := discover.Files(root, discover.Options{
		MaxFileSize: a.cfg.MaxFileSize,
		SkipTests:   skipTests,
		Log:         a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	var scannable []discover.FileEntry
	for _, f := range files {
		if review.HasRules(f.Language) {
			scannable = append(scannable, f)
		}
	}
	if len(scannable) == 0 {
		return nil, fmt.Errorf("no scannable files found under %s", root)
	}

	reports := eachFile(ctx, a, root, scannable, func(f discover.FileEntry, source string) *review.ScanReport {
		r := review.Scan(source, lang.Get(f.Language), a.analyzer.Backend())
		r.Path = filepath.ToSlash(f.Path)
		return r
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := review.Tree(filepath.Base(root), reports)
	a.log.Info().Str("root", root).Int("files", t.Scanned).Int("risk", t.Risk).Msg("scanned directory")
	return t, nil
}

func writeScan(w io.Writer, r *review.ScanReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "language: %s\n", r.Language)
	if r.Clean {
		b.WriteString("clean\n")
	}
	writeFindings(&b, r.Findings)
	fmt.Fprintf(&b, "risk: %d\n", r.Risk)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(w io.Writer, t *review.TreeReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "root: %s\n", t.Root)
	fmt.Fprintf(&b, "files: %d scanned, %d with findings, %d findings\n", t.Scanned, len(t.Files), t.Findings)
	for _, r := range t.Files {
		fmt.Fprintf(&b, "== %s (%s, risk %d)\n", r.Path, r.Language, r.Risk)
		writeFindings(&b, r.Findings)
	}
	fmt.Fprintf(&b, "risk: %d\n", t.Risk)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFindings(b *strings.Builder, findings []review.Finding) {
	for _, f := range findings {
		fmt.Fprintf(b, "%5d %3s  %-8s %s\n        %s\n", f.Line, f.Symbol, f.Severity, f.Description, f.Code)
	}
}

func (a *app) gapsCommand() *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "gaps [file]",
		Short: "List structural categories a source lacks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			r := review.Gaps(a.analyze(d), threshold)
			return a.emit(r, func(w io.Writer) error {
				var b strings.Builder
				verdict := "meets"
				if !r.MeetsThreshold {
					verdict = "below"
				}
				fmt.Fprintf(&b, "coverage: %d%% (%s %.0f%%)\n", r.Coverage, verdict, r.Threshold)
				for _, g := range r.Gaps {
					fmt.Fprintf(&b, "  %3s  %-12s %s\n", g.Symbol, g.Category, g.Suggestion)
				}
				_, err := io.WriteString(w, b.String())
				return err
			}, nil)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 80, "coverage percentage a source should reach")
	return cmd
}

// symbolKeys orders symbol display forms by code.
func symbolKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, _ := model.ParseSymbol(keys[i])
		sj, _ := model.ParseSymbol(keys[j])
		return si < sj
	})
	return keys
}
