package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/discover"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/toon"
)

// summary is the result of analyzing a directory.
type summary struct {
	Root            string                    `json:"root" yaml:"root"`
	TotalLines      int                       `json:"total_lines" yaml:"total_lines"`
	ClassifiedLines int                       `json:"classified_lines" yaml:"classified_lines"`
	Files           []*model.DocumentMetadata `json:"files" yaml:"files"`
}

func (a *app) analyzeCommand() *cobra.Command {
	var (
		langs     string
		skipTests bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [file|dir]",
		Short: "Summarize prefix counts and coverage of a file or a directory",
		Long: `Analyze a single source, or every supported file under a directory.
Directories honor .gitignore and, inside a git work tree, only tracked files
are read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
					return a.analyzeDir(cmd.Context(), args[0], splitList(langs), skipTests)
				}
			}
			d, err := a.loadArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			md := a.analyze(d)
			return a.emit(md, func(w io.Writer) error {
				return writeDocument(w, md)
			}, func() string { return toon.EncodeDocument(md) })
		},
	}
	cmd.Flags().StringVar(&langs, "only", "", "comma-separated languages to include in directory mode")
	cmd.Flags().BoolVar(&skipTests, "skip-tests", false, "ignore test files in directory mode")
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (a *app) analyzeDir(ctx context.Context, root string, langs []string, skipTests bool) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	files, err := discover.Files(root, discover.Options{
		Languages:   langs,
		MaxFileSize: a.cfg.MaxFileSize,
		SkipTests:   skipTests,
		Log:         a.log,
	})
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported files found under %s", root)
	}

	docs := a.analyzeFiles(ctx, root, files)
	if err := ctx.Err(); err != nil {
		return err
	}
	s := &summary{Root: filepath.Base(root), Files: docs}
	for _, md := range docs {
		s.TotalLines += md.TotalLines
		s.ClassifiedLines += md.ClassifiedLines
	}
	a.log.Info().Str("root", root).Int("files", len(docs)).Int("lines", s.TotalLines).Msg("analyzed directory")

	return a.emit(s, func(w io.Writer) error {
		return writeSummary(w, s)
	}, func() string { return toon.EncodeSummary(s.Root, docs) })
}

// analyzeFiles classifies files concurrently and returns their metadata in
// discovery order.
func (a *app) analyzeFiles(ctx context.Context, root string, files []discover.FileEntry) []*model.DocumentMetadata {
	return eachFile(ctx, a, root, files, func(f discover.FileEntry, source string) *model.DocumentMetadata {
		return a.analyzer.Analyze(filepath.ToSlash(f.Path), source, f.Language)
	})
}

// eachFile reads files on a pool of workers and returns fn's results in
// discovery order. Unreadable files are logged and left out.
func eachFile[T any](ctx context.Context, a *app, root string, files []discover.FileEntry, fn func(discover.FileEntry, string) T) []T {
	type result struct {
		index int
		value T
	}

	numWorkers := a.cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	numWorkers = min(numWorkers, len(files))

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					continue
				}
				f := files[idx]
				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					a.log.Warn().Err(err).Str("path", f.Path).Msg("failed to read")
					continue
				}
				results <- result{index: idx, value: fn(f, string(source))}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order
	indexed := make([]*T, len(files))
	for r := range results {
		indexed[r.index] = &r.value
	}

	var out []T
	for _, v := range indexed {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func writeDocument(w io.Writer, md *model.DocumentMetadata) error {
	var b strings.Builder
	if md.Path != "" {
		fmt.Fprintf(&b, "path: %s\n", md.Path)
	}
	fmt.Fprintf(&b, "language: %s\n", md.Language)
	fmt.Fprintf(&b, "backend: %s\n", md.Backend)
	fmt.Fprintf(&b, "lines: %d (%d classified, %d%%)\n", md.TotalLines, md.ClassifiedLines, md.Coverage)
	fmt.Fprintf(&b, "fingerprint: %016x\n", md.Fingerprint)
	writeCounts(&b, md.Counts)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(w io.Writer, s *summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "root: %s\n", s.Root)
	fmt.Fprintf(&b, "files: %d, lines: %d (%d classified)\n", len(s.Files), s.TotalLines, s.ClassifiedLines)
	totals := make(map[model.Category]int)
	for _, md := range s.Files {
		fmt.Fprintf(&b, "  %-40s %-12s %6d %4d%%\n", md.Path, md.Language, md.TotalLines, md.Coverage)
		for c, n := range md.Counts {
			totals[c] += n
		}
	}
	writeCounts(&b, totals)
	_, err := io.WriteString(w, b.String())
	return err
}
