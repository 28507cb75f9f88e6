package lang

import (
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/phobologic/qprefix/internal/model"
)

// Rules shared by javascript and typescript after their declaration rules.
var ecmaBody = []Rule{
	{model.Logic, `^\s*(\}\s*)?(try|catch|finally|throw)\b`},
	{model.Logic, `^\s*(\}\s*)?(if|else|switch|case|default)\b`},
	{model.Loop, `^\s*(\}\s*)?(for|while|do)\b`},
	{model.Loop, `^\s*[\w.$]+\.forEach\(`},
	{model.Exit, `^\s*(return|break|continue|yield)\b`},
	{model.Output, `^\s*console\.`},
	{model.IO, `^\s*((const|let|var)\s+[\w{}\[\], $]+\s*=\s*)?(await\s+)?(fetch|fs\.\w+|readline\.\w+|process\.std(in|out|err)\.\w+|XMLHttpRequest|localStorage\.\w+|document\.\w+)\b`},
	{model.Assignment, `^\s*((const|let|var)\s+)?[\w.$,\[\]{} ]*[\w$\]}]\s*(:\s*[\w<>\[\]|, ]+)?([-+*/%&|^]|\*\*|<<|>>|>>>|\?\?|\|\||&&)?=([^=>]|$)`},
	{model.Assignment, `^\s*[\w.$\[\]]+(\+\+|--);?\s*$`},
	closerRule,
}

func init() {
	js := []Rule{
		blankRule,
		{model.Import, `^#!/.*node`},
		{model.Comment, `^\s*(//|/\*|\*)`},
		{model.Import, `^\s*(import|export\s+\*\s+from)\b`},
		{model.Import, `^\s*(const|let|var)\s+[\w{}, $]+\s*=\s*require\(`},
		{model.Declaration, `^\s*(export\s+)?(default\s+)?class\s`},
		{model.Declaration, `^\s*(export\s+)?(default\s+)?(async\s+)?function\b`},
		{model.Declaration, `^\s*(export\s+)?(const|let|var)\s+\w+\s*=\s*(async\s*)?(\(|function\b|\w+\s*=>)`},
	}
	register(&Language{
		Name:       "javascript",
		Aliases:    []string{"js", "node", "jsx"},
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Shebangs:   []string{"node", "nodejs", "deno", "bun"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    javascript.GetLanguage(),
		Rules:      append(js, ecmaBody...),
	})

	ts := []Rule{
		blankRule,
		{model.Import, `^#!/.*ts-node`},
		{model.Decorator, `^\s*@`},
		{model.Comment, `^\s*(//|/\*|\*)`},
		{model.Import, `^\s*(import|export\s+\*\s+from|from)\b`},
		{model.Import, `^\s*(const|let|var)\s+[\w{}, $]+\s*=\s*require\(`},
		{model.Declaration, `^\s*(export\s+)?(default\s+)?(declare\s+)?(abstract\s+)?(class|interface|type|enum|namespace)\s`},
		{model.Declaration, `^\s*(export\s+)?(default\s+)?(async\s+)?function\b`},
		{model.Declaration, `^\s*(export\s+)?(const|let|var)\s+\w+\s*(:\s*[\w<>\[\]|, ]+)?=\s*(async\s*)?(\(|function\b|\w+\s*=>)`},
		{model.Declaration, `^\s*((public|private|protected|static|readonly|async)\s+)+\w+\s*\(`},
	}
	register(&Language{
		Name:       "typescript",
		Aliases:    []string{"ts", "tsx"},
		Extensions: []string{".ts", ".tsx", ".mts", ".cts"},
		Shebangs:   []string{"ts-node", "tsx"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    typescript.GetLanguage(),
		Rules:      append(ts, ecmaBody...),
	})
}
