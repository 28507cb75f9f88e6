package lang

import (
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/phobologic/qprefix/internal/model"
)

func init() {
	register(&Language{
		Name:       "rust",
		Aliases:    []string{"rs"},
		Extensions: []string{".rs"},
		Comment:    CommentStyle{Open: "//"},
		grammar:    rust.GetLanguage(),
		Rules: []Rule{
			blankRule,
			{model.Decorator, `^\s*#!?\[`},
			{model.Comment, `^\s*(//|/\*|\*)`},
			{model.Import, `^\s*(pub(\([\w:]+\))?\s+)?(use|extern\s+crate|mod)\s`},
			{model.Declaration, `^\s*(pub(\([\w:]+\))?\s+)?(unsafe\s+)?(struct|enum|trait|impl|type|union)\b`},
			{model.Declaration, `^\s*(pub(\([\w:]+\))?\s+)?(const\s+|async\s+|unsafe\s+|extern\s+"C"\s+)*fn\s`},
			{model.Declaration, `^\s*(pub(\([\w:]+\))?\s+)?(const|static)\s+\w+`},
			{model.Declaration, `^\s*macro_rules!`},
			{model.Logic, `^\s*(panic!|unreachable!|todo!|unimplemented!|Err\(|Ok\(|\.unwrap|\.expect)`},
			{model.Logic, `^\s*(\}\s*)?(if|else|match)\b`},
			{model.Loop, `^\s*(\w+:\s*)?(for|while|loop)\b`},
			{model.Exit, `^\s*(return|break|continue)\b`},
			{model.Output, `^\s*(println!|print!|eprintln!|eprint!|dbg!|log::\w+!|info!|warn!|error!|debug!|trace!)`},
			{model.IO, `^\s*(let\s+(mut\s+)?\w+(\s*:\s*[\w<>:, ]+)?\s*=\s*)?((std::)?(fs|io|net)::|File::|TcpStream::|TcpListener::|reqwest::)`},
			{model.Assignment, `^\s*let\b`},
			{model.Assignment, `^\s*[\w.*\[\]]*[\w\]]\s*([-+*/%&|^]|<<|>>)?=([^=>]|$)`},
			closerRule,
		},
	})
}
