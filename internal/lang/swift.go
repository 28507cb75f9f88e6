package lang

import "github.com/phobologic/qprefix/internal/model"

func init() {
	register(&Language{
		Name:       "swift",
		Extensions: []string{".swift"},
		Shebangs:   []string{"swift"},
		Comment:    CommentStyle{Open: "//"},
		Rules: []Rule{
			blankRule,
			{model.Import, `^#!/.*swift`},
			{model.Decorator, `^\s*@\w`},
			{model.Comment, `^\s*(//|/\*|\*)`},
			{model.Import, `^\s*(@testable\s+)?import\s`},
			{model.Declaration, `^\s*((public|private|fileprivate|internal|open|final|indirect)\s+)*(class|struct|enum|protocol|extension|actor)\s`},
			{model.Declaration, `^\s*((public|private|fileprivate|internal|open|override|static|class|mutating|convenience|required)\s+)*(func|init|deinit|subscript)\b`},
			{model.Logic, `^\s*(\}\s*)?(try|catch|throw|guard|do)\b`},
			{model.Logic, `^\s*(\}\s*)?(if|else|switch|case|default)\b`},
			{model.Loop, `^\s*(\}\s*)?(for|while|repeat)\b`},
			{model.Exit, `^\s*(return|break|continue|fallthrough)\b`},
			{model.Output, `^\s*(print|debugPrint|dump|NSLog)\(`},
			{model.IO, `^\s*((let|var)\s+\w+\s*=\s*)?(FileManager|URLSession|FileHandle|readLine\()`},
			{model.Assignment, `^\s*((let|var)\s+)?[\w.\[\]]*[\w\]]\s*(:\s*[\w<>\[\]?!, ]+)?([-+*/%])?=([^=]|$)`},
			closerRule,
		},
	})
}
