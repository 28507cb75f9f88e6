package scan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agreementPatterns = []string{
	`^\s*$`,
	`^#!/.*python`,
	`^\s*#`,
	`^\s*(import|from)\s`,
	`^\s*(def|async\s+def)\s`,
	`^\s*(if|elif|else)\b`,
	`^\s*(\w+\s+)+\w+\s*\(`,
	`^\s*type\s+\w+\s+(struct|interface)`,
	`^\s*const\s+\w+\s*=\s*(\(|async)`,
	`^\s*<(p|h[1-6]|span|a|li|td)`,
	`^\s*[\w.]+\s*[-+*/%]?=(\s|\w)`,
	`^([^=]*[^=!<>])?=([^=]|$)`,
	`^.*(print|console\.|\.log\()`,
	`^\s*(\}|\)|\]|end)\s*;?\s*$`,
	`^\s*if\s*\(.*error`,
	`^\s*(?:a*)*b`,
	`^x?y+z*$`,
	`^\s*[^a-z#]`,
	`^\s*\w+:`,
}

var agreementInputs = []string{
	"",
	" ",
	"\t\t",
	"#!/usr/bin/env python3",
	"# comment",
	"    # indented comment",
	"import os",
	"from x import y",
	"importer = 1",
	"async def run():",
	"    def f(self):",
	"if x:",
	"elif y:",
	"else:",
	"elsewhere()",
	"static int main(int argc) {",
	"return foo(1);",
	"else if (x) {",
	"type Foo struct {",
	"const handler = async () => {}",
	"const x = (a) => a",
	"<h3>Title</h3>",
	"<header>",
	"x = 42",
	"count += 1",
	"a == b",
	"a != b",
	"x <= y",
	"x=",
	"print('héllo')",
	"    console.log(x)",
	"logger.log(1)",
	"}",
	"  });",
	"end",
	"if (err != error.Foo) {",
	"b",
	"aaab",
	"yyz",
	"xyzz",
	"x",
	"é = 1",
	"é",
	"\xff\xfe = 2",
	"\xffprint",
	"naïve = café",
	"label:",
	"  loop_1:",
	"世界",
	"\r",
}

func TestMatchAgreesWithRegexp(t *testing.T) {
	t.Parallel()

	for _, expr := range agreementPatterns {
		prog, err := Compile(expr)
		require.NoError(t, err, expr)
		re := regexp.MustCompile(expr)
		for _, in := range agreementInputs {
			want := re.MatchString(in)
			assert.Equal(t, want, prog.MatchString(in), "pattern %q input %q", expr, in)
			if prog.Rejects([]byte(in), Indent([]byte(in))) {
				assert.False(t, want, "prefilter rejected a match: pattern %q input %q", expr, in)
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
	}{
		{"unanchored", `abc`},
		{"empty", ``},
		{"unclosed group", `^(abc`},
		{"unclosed class", `^[abc`},
		{"lazy", `^a*?`},
		{"bare brace", `^a{2}`},
		{"flags", `^(?i)abc`},
		{"unknown escape", `^\q`},
		{"non-ascii", "^é"},
		{"dangling star", `^*`},
		{"stray paren", `^a)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compile(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestPrefilter(t *testing.T) {
	t.Parallel()

	prog := MustCompile(`^\s*(import|from)\s`)
	line := []byte("    class Foo:")
	assert.True(t, prog.Rejects(line, Indent(line)))

	line = []byte("    from x import y")
	assert.False(t, prog.Rejects(line, Indent(line)))

	// a nullable remainder disables the prefilter
	blank := MustCompile(`^\s*$`)
	assert.False(t, blank.Rejects([]byte("x"), 0))
}

func TestIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Indent([]byte("x")))
	assert.Equal(t, 3, Indent([]byte(" \t x")))
	assert.Equal(t, 2, Indent([]byte("  ")))
	// vertical tab is not \s
	assert.Equal(t, 0, Indent([]byte("\vx")))
}
