package lang

import (
	"github.com/smacker/go-tree-sitter/c"

	"github.com/phobologic/qprefix/internal/model"
)

// cHead holds the C rules that come before any dialect additions.
var cHead = []Rule{
	blankRule,
	{model.Comment, `^\s*(//|/\*|\*)`},
	{model.Import, `^\s*#\s*(include|import|define|undef|pragma)\b`},
	{model.Logic, `^\s*#\s*(if|ifdef|ifndef|else|elif|endif)\b`},
	{model.Logic, `^\s*(if\s*\(\s*err|perror\s*\(|exit\s*\(|abort\s*\(|assert\s*\()`},
	{model.Logic, `^\s*(\}\s*)?(if|else|switch|case|default)\b`},
	{model.Loop, `^\s*(\}\s*)?(for|while|do)\b`},
	{model.Exit, `^\s*(return|break|continue|goto)\b`},
}

// cTail holds the C rules that follow any dialect additions.
var cTail = []Rule{
	{model.Output, `^\s*((printf|fprintf|puts|putchar|fputs)\s*\(|(std::)?(cout|cerr)\b)`},
	{model.IO, `^\s*([\w*]+\s+\**\w+\s*=\s*)?(fopen|fread|fwrite|fgets|fscanf|scanf|read|write|open|close|socket|recv|send)\s*\(`},
	{model.Declaration, `^\s*(typedef\s+)?(struct|union|enum|class|namespace|typedef)\b`},
	{model.Declaration, `^\s*(\w+\s+)+\**\w+\s*\(`},
	{model.Assignment, `^\s*[\w.*\[\]>\- ]*[\w\]]\s*([-+*/%&|^]|<<|>>)?=([^=]|$)`},
	{model.Assignment, `^\s*[\w.\[\]>-]+(\+\+|--);\s*$`},
	closerRule,
}

func cRules(dialect ...Rule) []Rule {
	rules := make([]Rule, 0, len(cHead)+len(dialect)+len(cTail))
	rules = append(rules, cHead...)
	rules = append(rules, dialect...)
	return append(rules, cTail...)
}

func init() {
	register(&Language{
		Name:       "c",
		Aliases:    []string{"h", "cpp", "c++", "cc"},
		Extensions: []string{".c", ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    c.GetLanguage(),
		Rules:      cRules(),
	})

	register(&Language{
		Name:       "arduino",
		Aliases:    []string{"ino"},
		Extensions: []string{".ino", ".pde"},
		Comment:    CommentStyle{Open: "//"},
		Rules: cRules(
			Rule{model.Output, `^\s*Serial\d?\.(print|println|write)\s*\(`},
			Rule{model.IO, `^\s*(\w+\s+)?(\w+\s*=\s*)?(digitalWrite|digitalRead|analogWrite|analogRead|pinMode|Serial\d?\.\w+|Wire\.\w+|SPI\.\w+)\s*\(`},
			Rule{model.Logic, `^\s*(delay|delayMicroseconds|attachInterrupt)\s*\(`},
		),
	})
}
