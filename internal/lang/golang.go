package lang

import (
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "go",
		Aliases:    []string{"golang"},
		Extensions: []string{".go"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    golang.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*(//|/\*|\*)`},
			{model.Import, `^\s*(import|package)\b`},
			{model.Import, `^\s*(\w+\s+)?"[\w./-]+"\s*$`},
			{model.Declaration, `^\s*type\s+\w+`},
			{model.Declaration, `^\s*func\b`},
			{model.Declaration, `^\s*(var|const)\b`},
			{model.Logic, `^\s*(if\s+err\b|panic\(|log\.(Fatal|Panic))`},
			{model.Logic, `^\s*(\}\s*)?(if|else|switch|case|default|select|go)\b`},
			{model.Loop, `^\s*for\b`},
			{model.Exit, `^\s*(return|break|continue|goto|fallthrough|defer)\b`},
			{model.Output, `^\s*(fmt\.(Print|Fprint)\w*|log\.Print\w*)\(`},
			{model.IO, `^\s*((\w+\s*,\s*)*\w+\s*:?=\s*)?(os\.(Open|OpenFile|Create|ReadFile|WriteFile|ReadDir|Std(in|out|err))|io\.\w+|bufio\.\w+|http\.\w+|net\.\w+)\b`},
			{model.Assignment, `^\s*[\w.,\[\]* ]*[\w\]]\s*([-+*/%&|^]|<<|>>|&\^|:)?=([^=]|$)`},
			{model.Assignment, `^\s*[\w.\[\]]+(\+\+|--)\s*$`},
			closerRule,
		},
	})
}
