package lang

import "github.com/phobologic/qprefix/internal/model"

// kwEnd is the boundary a generic keyword must be followed by.
const kwEnd = `([ \t({:<\[!.]|$)`

func init() {
	register(&Language{
		Name:    Fallback,
		Aliases: []string{"text", "plain", "txt"},
		Comment: CommentStyle{Open: "#"},
		Rules: []Rule{
			blankRule,
			{model.Import, `^\s*(#include|#import|@import)`},
			{model.Comment, `^\s*(#|//|/\*|--|'''|"""|;;|<!-|REM\s)`},
			{model.Import, `^\s*(import|from|use|require|using|extern|mod|package)` + kwEnd},
			{model.Declaration, `^\s*(fn|function|def|class|struct|enum|trait|interface|type|const|let|var|val|static|export|impl|protocol|typedef|macro_rules!|pub\s+(fn|struct|enum|trait)|async\s+fn)` + kwEnd},
			{model.Logic, `^\s*(if|else|elif|match|switch|case|when|guard|try|catch|except|finally|do)` + kwEnd},
			{model.Logic, `^\s*\}\s*else`},
			{model.Loop, `^\s*(for|while|loop|foreach|until|repeat)` + kwEnd},
			{model.Exit, `^\s*(return|yield|break|continue|throw|raise|panic!|assert|defer|await)` + kwEnd},
			{model.Output, `^.*(print|console\.|\.log\(|\.warn\(|\.error\(|writeln!|echo\s|puts\s)`},
			{model.IO, `^.*(write\(|read\(|readline|fetch\(|XMLHttpRequest|stdin|stdout|stderr|fs\.read|fs\.write|open\(|socket|http\.)`},
			{model.Assignment, `^([^=]*[^=!<>])?=([^=]|$)`},
			{model.Neutral, `^\s*(\}|\};|\)|\]|end|fi|done|\}\)|esac)\s*$`},
		},
	})
}
