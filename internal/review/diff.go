// Package review builds code-review aids on top of line classification:
// prefix-annotated diffs, a prefix-aware security scan and coverage gaps.
package review

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/phobologic/qprefix/internal/classify"
	"github.com/phobologic/qprefix/internal/lang"
)

// DiffContext is the number of unchanged lines around each hunk.
const DiffContext = 3

// DiffReport is a unified diff of two annotated versions of a document.
type DiffReport struct {
	Language  string         `json:"language" yaml:"language"`
	Diff      string         `json:"diff" yaml:"diff"`
	Additions int            `json:"additions" yaml:"additions"`
	Deletions int            `json:"deletions" yaml:"deletions"`
	Changes   map[string]int `json:"changes" yaml:"changes"` // changed lines per symbol
}

// Diff annotates both versions with backend and diffs the results, so a
// line whose classification changed shows up even when its text did not.
func Diff(oldName, newName, oldSource, newSource string, l *lang.Language, backend classify.Backend) (*DiffReport, error) {
	a := annotate(oldSource, l, backend)
	b := annotate(newSource, l, backend)

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: oldName,
		ToFile:   newName,
		Context:  DiffContext,
	})
	if err != nil {
		return nil, err
	}

	r := &DiffReport{Language: l.Name, Diff: text, Changes: make(map[string]int)}
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			r.Additions++
		case strings.HasPrefix(line, "-"):
			r.Deletions++
		default:
			continue
		}
		r.Changes[symbolOf(line[1:])]++
	}
	return r, nil
}

func annotate(source string, l *lang.Language, backend classify.Backend) string {
	md := classify.Summarize(backend.Lines(classify.SplitLines(source), l))
	return classify.Annotate(md, source, false)
}

// symbolOf extracts the symbol from an annotated line ("  +1: text").
func symbolOf(line string) string {
	head, _, _ := strings.Cut(line, ":")
	return strings.TrimSpace(head)
}
