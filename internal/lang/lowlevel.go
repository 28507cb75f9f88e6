package lang

import "github.com/phobologic/qprefix/internal/model"

func init() {
	register(&Language{
		Name:       "zig",
		Extensions: []string{".zig"},
		Comment:    CommentStyle{Open: "//"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*//`},
			{model.Import, `^\s*(pub\s+)?const\s+\w+\s*=\s*@import\(`},
			{model.Import, `^\s*@import\(`},
			{model.Declaration, `^\s*(pub\s+)?const\s+\w+\s*=\s*(packed\s+|extern\s+)?(struct|enum|union|error)\b`},
			{model.Declaration, `^\s*(pub\s+)?(export\s+)?(inline\s+)?fn\s`},
			{model.Logic, `^\s*(try|catch|errdefer|if\s*\(.*error)`},
			{model.Logic, `^\s*(\}\s*)?(if|else|switch)\b`},
			{model.Loop, `^\s*(inline\s+)?(for|while)\b`},
			{model.Exit, `^\s*(return|break|continue|defer|unreachable)\b`},
			{model.Output, `^\s*std\.debug\.print`},
			{model.IO, `^\s*((const|var)\s+\w+\s*=\s*)?(try\s+)?std\.(fs|io|net|http)\.`},
			{model.Assignment, `^\s*(pub\s+)?(var|const)\s+\w+`},
			{model.Assignment, `^\s*[\w.\[\]]*[\w\]]\s*([-+*/%&|^]|<<|>>)?=([^=>]|$)`},
			closerRule,
		},
	})

	register(&Language{
		Name:       "assembly",
		Aliases:    []string{"asm", "nasm", "gas"},
		Extensions: []string{".asm", ".s", ".nasm"},
		Comment:    CommentStyle{Open: ";"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*;`},
			{model.Import, `^\s*(%include|\.include)\b`},
			{model.Declaration, `^\s*(section|segment|global|extern|\.section|\.globl|\.text|\.data|\.bss)\b`},
			{model.Assignment, `^\s*(\w+\s+)?(db|dw|dd|dq|equ|resb|resw|resd|resq|times)\s`},
			{model.Declaration, `^\s*[\w.]+:`},
			{model.Output, `^\s*(int\s+0x80|syscall|sysenter)\b`},
			{model.Loop, `^\s*(loop\w*|rep\w*)\b`},
			{model.Logic, `^\s*(cmp|test|je|jne|jg|jl|jge|jle|jz|jnz|ja|jb|jmp|call)\b`},
			{model.Exit, `^\s*(ret|iret|hlt|leave)\b`},
			{model.IO, `^\s*(in|out|ins|outs)\s`},
			{model.Assignment, `^\s*(mov\w*|lea|add|sub|xor|and|or|not|inc|dec|push|pop|shl|shr|imul|idiv|mul|div)\b`},
		},
	})
}
