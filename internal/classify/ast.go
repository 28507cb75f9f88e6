package classify

import (
	"context"
	"strings"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/parse"
)

// AST classifies lines from a tree-sitter syntax tree. Languages without a
// grammar, and sources the parser rejects, go to Fallback (Regex when nil).
//
// Unlike the pattern backends, AST is context-sensitive: Lines parses the
// whole document, so a line's category can depend on its neighbours, and
// Line can disagree with the same line inside Lines.
type AST struct {
	Fallback Backend
}

// Name implements Backend.
func (*AST) Name() string { return BackendAST }

// Line implements Backend. A lone line is parsed as a one-line document.
func (a *AST) Line(n int, text string, l *lang.Language) model.LineClassification {
	out := a.Lines([]string{text}, l)
	out[0].Line = n
	return out[0]
}

// Lines implements Backend.
func (a *AST) Lines(lines []string, l *lang.Language) []model.LineClassification {
	p := l.NewParser()
	if p == nil {
		return a.fallback().Lines(lines, l)
	}
	defer p.Close()

	source := []byte(strings.Join(lines, "\n"))
	cats, err := parse.Lines(context.Background(), p, l.Name, source, lines)
	if err != nil {
		return a.fallback().Lines(lines, l)
	}
	out := make([]model.LineClassification, len(cats))
	for i, c := range cats {
		out[i] = model.Classify(i+1, c)
	}
	return out
}

func (a *AST) fallback() Backend {
	if a.Fallback != nil {
		return a.Fallback
	}
	return Regex{}
}
