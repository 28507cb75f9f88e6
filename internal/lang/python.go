package lang

import (
	"github.com/smacker/go-tree-sitter/python"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "python",
		Aliases:    []string{"py", "python3"},
		Extensions: []string{".py", ".pyw", ".pyi"},
		Shebangs:   []string{"python", "python3"},
		Comment:    CommentStyle{Open: "#"},
		grammar:    python.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Import, `^#!/.*python`},
			{model.Decorator, `^\s*@`},
			{model.Comment, `^\s*(#|"""|''')`},
			{model.Import, `^\s*(import|from)\s`},
			{model.Declaration, `^\s*class\s`},
			{model.Declaration, `^\s*(def|async\s+def)\s`},
			{model.Logic, `^\s*(try|except|finally|raise|assert)\b`},
			{model.Logic, `^\s*(if|elif|else)\b`},
			{model.Loop, `^\s*(for|while|async\s+for)\s`},
			{model.Exit, `^\s*(return|yield|break|continue)\b`},
			{model.Output, `^\s*(print|pprint|logging\.\w+|logger\.\w+)\(`},
			{model.IO, `^\s*(with\s+|[\w.]+\s*=\s*)?(open|input|requests\.\w+|urllib\.\w+|socket\.\w+|sys\.std(in|out|err)\.\w+)\(`},
			{model.Assignment, `^\s*[\w.,\[\] ]*[\w\]]\s*(:\s*[\w\[\]., |]+)?([-+*/%&|^@]|//|\*\*|<<|>>)?=([^=]|$)`},
			{model.Neutral, `^\s*(pass|\.\.\.)\s*$`},
			closerRule,
		},
	})
}
