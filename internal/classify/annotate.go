package classify

import (
	"fmt"
	"strings"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// Annotate renders source with every line prefixed by its symbol. With
// numbered, the 1-based line number follows the symbol.
func Annotate(md *model.DocumentMetadata, source string, numbered bool) string {
	lines := SplitLines(source)
	var b strings.Builder
	for i, text := range lines {
		sym := model.Default.Symbol()
		if i < len(md.Lines) {
			sym = md.Lines[i].Symbol
		}
		prefix := sym.String() + ":"
		if numbered {
			fmt.Fprintf(&b, "%4s%4d  %s\n", prefix, i+1, text)
		} else {
			fmt.Fprintf(&b, "%4s %s\n", prefix, text)
		}
	}
	return b.String()
}

// Disagreement is one line two backends classify differently.
type Disagreement struct {
	Line int            `json:"line" yaml:"line"`
	Text string         `json:"text" yaml:"text"`
	A    model.Category `json:"a" yaml:"a"`
	B    model.Category `json:"b" yaml:"b"`
}

// Report compares two backends over one document.
type Report struct {
	Language      string         `json:"language" yaml:"language"`
	A             string         `json:"a" yaml:"a"`
	B             string         `json:"b" yaml:"b"`
	Lines         int            `json:"lines" yaml:"lines"`
	Agree         int            `json:"agree" yaml:"agree"`
	Agreement     float64        `json:"agreement" yaml:"agreement"` // percent
	CoverageA     int            `json:"coverage_a" yaml:"coverage_a"`
	CoverageB     int            `json:"coverage_b" yaml:"coverage_b"`
	Disagreements []Disagreement `json:"disagreements" yaml:"disagreements"`
}

// Compare classifies lines with both backends. An empty document agrees
// fully.
func Compare(a, b Backend, lines []string, l *lang.Language) *Report {
	ra := a.Lines(lines, l)
	rb := b.Lines(lines, l)
	r := &Report{
		Language:  l.Name,
		A:         a.Name(),
		B:         b.Name(),
		Lines:     len(lines),
		Agreement: 100,
		CoverageA: Summarize(ra).Coverage,
		CoverageB: Summarize(rb).Coverage,
	}
	for i := range lines {
		if ra[i].Category == rb[i].Category {
			r.Agree++
			continue
		}
		r.Disagreements = append(r.Disagreements, Disagreement{
			Line: i + 1,
			Text: lines[i],
			A:    ra[i].Category,
			B:    rb[i].Category,
		})
	}
	if r.Lines > 0 {
		r.Agreement = float64(r.Agree) / float64(r.Lines) * 100
	}
	return r
}
