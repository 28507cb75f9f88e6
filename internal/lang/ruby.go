package lang

import (
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "ruby",
		Aliases:    []string{"rb"},
		Extensions: []string{".rb", ".rake", ".gemspec"},
		Filenames:  []string{"Rakefile", "Gemfile"},
		Shebangs:   []string{"ruby"},
		Comment:    CommentStyle{Open: "#"},
		grammar:    ruby.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Import, `^#!/.*ruby`},
			{model.Comment, `^\s*#`},
			{model.Comment, `^=(begin|end)\b`},
			{model.Import, `^\s*(require|require_relative|include|extend|gem|load)\b`},
			{model.Declaration, `^\s*(class|module)\s`},
			{model.Declaration, `^\s*def\s`},
			{model.Decorator, `^\s*(attr_accessor|attr_reader|attr_writer|private|protected|public)\b`},
			{model.Logic, `^\s*(begin|rescue|ensure|raise)\b`},
			{model.Logic, `^\s*(if|elsif|else|unless|case|when)\b`},
			{model.Loop, `^\s*(for|while|until|loop)\b`},
			{model.Loop, `^\s*[\w.@]+\.(each\w*|times|upto|downto|step)\b`},
			{model.Exit, `^\s*(return|break|next|redo|retry|yield)\b`},
			{model.Output, `^\s*(puts|print|pp|p|printf|warn)(\s|\()`},
			{model.IO, `^\s*([\w@]+\s*=\s*)?(File|IO|Dir|Net::HTTP|STDIN|STDOUT|\$stdin|\$stdout)\b`},
			{model.IO, `^\s*([\w@]+\s*=\s*)?gets\b`},
			{model.Assignment, `^\s*[@$]*[\w.,\[\] ]*[\w\]]\s*([-+*/%&|^]|\*\*|<<|>>|\|\||&&)?=([^=~>]|$)`},
			{model.Neutral, `^\s*end\b[\s.)\w]*$`},
			closerRule,
		},
	})
}
