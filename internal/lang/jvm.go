package lang

import (
	"github.com/smacker/go-tree-sitter/java"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "java",
		Extensions: []string{".java"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    java.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Decorator, `^\s*@\w`},
			{model.Comment, `^\s*(//|/\*|\*)`},
			{model.Import, `^\s*(import|package)\s`},
			{model.Declaration, `^\s*((public|private|protected|static|final|abstract|sealed)\s+)*(class|interface|enum|record|@interface)\s`},
			{model.Logic, `^\s*(\}\s*)?(try|catch|finally|throw)\b`},
			{model.Logic, `^\s*(\}\s*)?(if|else|switch|case|default)\b`},
			{model.Loop, `^\s*(\}\s*)?(for|while|do)\b`},
			{model.Exit, `^\s*(return|break|continue)\b`},
			{model.Output, `^\s*System\.(out|err)\.`},
			{model.IO, `^\s*([\w<>\[\], ]+\s+\w+\s*=\s*)?(new\s+)?(Files\.\w+|\w*(Reader|Writer|InputStream|OutputStream|Socket|Scanner)\b)`},
			{model.Declaration, `^\s*(public|private|protected|static|final|abstract|synchronized|void)\b`},
			{model.Assignment, `^\s*[\w.<>\[\], ]*[\w\]]\s*([-+*/%&|^]|<<|>>|>>>)?=([^=]|$)`},
			{model.Assignment, `^\s*[\w.\[\]]+(\+\+|--);\s*$`},
			closerRule,
		},
	})

	register(&Language{
		Name:       "kotlin",
		Aliases:    []string{"kt", "kts"},
		Extensions: []string{".kt", ".kts"},
		Comment:    CommentStyle{Open: "//"},
		Rules: []Rule{
			blankRule,
			{model.Decorator, `^\s*@\w`},
			{model.Comment, `^\s*(//|/\*|\*)`},
			{model.Import, `^\s*(import|package)\s`},
			{model.Declaration, `^\s*((public|private|protected|internal|open|abstract|sealed|data|enum|inner|annotation)\s+)*(class|object|interface)\s`},
			{model.Declaration, `^\s*((public|private|protected|internal|override|open|suspend|inline|operator|infix)\s+)*fun\s`},
			{model.Declaration, `^\s*((public|private|protected|internal|override|const|lateinit)\s+)*(val|var)\s`},
			{model.Logic, `^\s*(\}\s*)?(try|catch|finally|throw)\b`},
			{model.Logic, `^\s*(\}\s*)?(if|else|when)\b`},
			{model.Loop, `^\s*(\}\s*)?(for|while|do)\b`},
			{model.Loop, `^\s*[\w.]+\.(forEach|repeat)\s*[\({]`},
			{model.Exit, `^\s*(return|break|continue)\b`},
			{model.Output, `^\s*(println|print)\(`},
			{model.IO, `^\s*((val|var)\s+\w+\s*=\s*)?(File\(|readLine\(|readln\(|URL\(|Socket\()`},
			{model.Assignment, `^\s*[\w.\[\]]*[\w\]]\s*([-+*/%])?=([^=]|$)`},
			closerRule,
		},
	})
}
