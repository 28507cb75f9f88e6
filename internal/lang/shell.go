package lang

import (
	"github.com/smacker/go-tree-sitter/bash"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "shell",
		Aliases:    []string{"sh", "bash", "zsh", "ksh"},
		Extensions: []string{".sh", ".bash", ".zsh", ".ksh"},
		Filenames:  []string{".bashrc", ".zshrc", ".profile"},
		Shebangs:   []string{"bash", "sh", "zsh", "ksh", "dash"},
		Comment:    CommentStyle{Open: "#"},
		grammar:    bash.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Import, `^#!/(usr/)?bin/(env\s+)?(bash|sh|zsh|ksh|dash)\b`},
			{model.Comment, `^\s*#`},
			{model.Import, `^\s*(source|\.)\s`},
			{model.Declaration, `^\s*(function\s+\w+|\w+\s*\(\)\s*\{?\s*$)`},
			{model.Logic, `^\s*(trap|set\s+-\w+)\b`},
			{model.Logic, `^\s*(if|elif|else|fi|then|case|esac)\b`},
			{model.Loop, `^\s*(for|while|until|do|done|select)\b`},
			{model.Exit, `^\s*(return|exit|break|continue)\b`},
			{model.Output, `^\s*(echo|printf)\b`},
			{model.IO, `^\s*(read|cat|curl|wget|tee|cp|mv|rm|mkdir|touch|tar|rsync|scp)\b`},
			{model.Assignment, `^\s*((export|local|readonly|declare)\s+(-\w+\s+)?)?\w+(\[\w*\])?\+?=`},
			{model.Neutral, `^\s*(\}|;;)\s*$`},
		},
	})

	register(&Language{
		Name:       "nushell",
		Aliases:    []string{"nu"},
		Extensions: []string{".nu"},
		Shebangs:   []string{"nu"},
		Comment:    CommentStyle{Open: "#"},
		Rules: []Rule{
			blankRule,
			{model.Import, `^#!/.*nu\b`},
			{model.Comment, `^\s*#`},
			{model.Import, `^\s*(use|source|overlay\s+use)\s`},
			{model.Declaration, `^\s*(export\s+)?(def|def-env|alias|module)\s`},
			{model.Assignment, `^\s*(let|mut|const)\s`},
			{model.Logic, `^\s*(\}\s*)?(if|else|match|try|catch)\b`},
			{model.Loop, `^\s*(for|while|loop|each)\b`},
			{model.Loop, `^\s*\|\s*each\b`},
			{model.Exit, `^\s*(return|break|continue|error\s+make)\b`},
			{model.Output, `^\s*print\s`},
			{model.IO, `^\s*(open|save|http\s+\w+|ls|cd|rm|mkdir)\b`},
			{model.Assignment, `^\s*\$[\w.]+\s*([-+*/]|\+\+)?=([^=]|$)`},
			closerRule,
		},
	})
}
