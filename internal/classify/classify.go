// Package classify assigns quantum prefixes to source lines. Several
// interchangeable backends implement the same contract. The pattern backends,
// Regex and Parallel, are order-independent: for a fixed line, language and
// table version the result never changes. AST reads the whole document.
package classify

import (
	"fmt"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// Backend names accepted by New.
const (
	BackendRegex    = "regex"
	BackendParallel = "parallel"
	BackendAST      = "ast"
)

// Backend classifies lines of one language.
type Backend interface {
	// Name identifies the backend in reports.
	Name() string
	// Line classifies a single line; n is its 1-based line number.
	Line(n int, text string, l *lang.Language) model.LineClassification
	// Lines classifies a whole document, numbering lines from 1.
	Lines(lines []string, l *lang.Language) []model.LineClassification
}

// Options tunes the backends built by New.
type Options struct {
	Workers       int // parallel workers, GOMAXPROCS when <= 0
	MaxLineLength int // parallel slot width cap
}

// New returns the backend registered under name.
func New(name string, opts Options) (Backend, error) {
	switch name {
	case BackendRegex, "":
		return Regex{}, nil
	case BackendParallel:
		return &Parallel{Workers: opts.Workers, MaxLineLength: opts.MaxLineLength}, nil
	case BackendAST:
		return &AST{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", name, BackendRegex, BackendParallel, BackendAST)
}

// Regex is the reference backend: the language's rules are tried in order
// with the standard regexp engine and the first match wins.
type Regex struct{}

// Name implements Backend.
func (Regex) Name() string { return BackendRegex }

// Line implements Backend.
func (Regex) Line(n int, text string, l *lang.Language) model.LineClassification {
	for _, r := range l.Compiled() {
		if r.Regexp.MatchString(text) {
			return model.LineClassification{Line: n, Symbol: r.Symbol, Category: r.Category}
		}
	}
	return model.Classify(n, model.Default)
}

// Lines implements Backend.
func (b Regex) Lines(lines []string, l *lang.Language) []model.LineClassification {
	out := make([]model.LineClassification, len(lines))
	for i, text := range lines {
		out[i] = b.Line(i+1, text, l)
	}
	return out
}
