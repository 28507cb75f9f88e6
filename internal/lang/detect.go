package lang

import (
	"path"
	"regexp"
	"strings"
)

// heuristic identifies a language from whole-source text. All patterns in
// all must match, and at least one in anyOf when it is non-empty.
type heuristic struct {
	lang  string
	all   []*regexp.Regexp
	anyOf []*regexp.Regexp
}

func (h heuristic) matches(source string) bool {
	for _, re := range h.all {
		if !re.MatchString(source) {
			return false
		}
	}
	if len(h.anyOf) == 0 {
		return true
	}
	for _, re := range h.anyOf {
		if re.MatchString(source) {
			return true
		}
	}
	return false
}

func res(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Framework markers are checked before the keyword heuristics.
var markers = []heuristic{
	{lang: "arduino", all: res(`\bvoid\s+setup\s*\(\s*\)`, `\bvoid\s+loop\s*\(\s*\)`)},
}

// heuristics are evaluated in priority order; the first match wins.
var heuristics = []heuristic{
	{lang: "dockerfile", all: res(`(?m)^FROM\s+\S+`, `(?m)^(RUN|CMD|ENTRYPOINT|COPY|WORKDIR)\s`)},
	{lang: "html", anyOf: res(`(?i)<!DOCTYPE\s+html`, `(?i)<html[\s>]`)},
	{lang: "go", all: res(`(?m)^package\s+\w+\s*$`), anyOf: res(`(?m)^func\s`, `(?m)^import\s+[("]`)},
	{lang: "rust", anyOf: res(`\blet\s+mut\b`, `(?m)^\s*use\s+(std|crate|super)::`, `\bprintln!\(`, `(?m)^\s*impl\b.*\{`, `(?m)^\s*(pub\s+)?fn\s+\w+.*->`)},
	{lang: "zig", anyOf: res(`@import\("std"\)`)},
	{lang: "c", anyOf: res(`(?m)^\s*#include\s*[<"]`, `\bint\s+main\s*\(`)},
	{lang: "java", anyOf: res(`(?m)^\s*public\s+(final\s+|abstract\s+)?class\s`, `System\.out\.print`)},
	{lang: "kotlin", anyOf: res(`(?m)^\s*(suspend\s+)?fun\s+\w+\s*\(`)},
	{lang: "swift", anyOf: res(`(?m)^import\s+(Foundation|UIKit|SwiftUI|Combine)\b`, `\bguard\s+let\b`)},
	{lang: "typescript", anyOf: res(`(?m)^\s*(export\s+)?interface\s+\w+`, `:\s*(string|number|boolean)\b`, `(?m)^\s*(export\s+)?type\s+\w+\s*=`)},
	{lang: "javascript", anyOf: res(`(?m)^\s*(const|let|var)\s+\w+\s*=\s*require\(`, `console\.log\(`, `(?m)^\s*function\s+\w+\s*\(`, `=>\s*\{`, `(?m)^\s*(import|export)\s.*from\s+['"]`)},
	{lang: "nushell", anyOf: res(`(?m)^\s*def\s+[\w-]+\s*\[`, `\|\s*each\s*\{`, `\$in\b`)},
	{lang: "ruby", all: res(`(?m)^\s*end\s*$`), anyOf: res(`(?m)^\s*def\s+\w+[^:]*$`, `(?m)^\s*puts\s`, `(?m)^\s*require(_relative)?\s+['"]`, `\.each\s+do\b`)},
	{lang: "python", anyOf: res(`(?m)^\s*def\s+\w+\(.*\)\s*(->.*)?:\s*$`, `(?m)^\s*(import\s+\w+|from\s+[\w.]+\s+import\b)`, `if\s+__name__\s*==`, `(?m)^\s*class\s+\w+(\(.*\))?:\s*$`)},
	{lang: "shell", anyOf: res(`(?m)^\s*(fi|done|esac)\s*$`, `(?m)^\s*echo\s`)},
	{lang: "sql", anyOf: res(`(?is)\bSELECT\b.*\bFROM\b`, `(?i)\bCREATE\s+TABLE\b`, `(?i)\bINSERT\s+INTO\b`)},
	{lang: "assembly", anyOf: res(`(?m)^\s*section\s+\.\w+`, `(?m)^\s*(mov|push|pop)\s+\w+\s*,`)},
	{lang: "toml", all: res(`(?m)^\[[\w.-]+\]\s*$`, `(?m)^[\w.-]+\s*=\s*\S`)},
	{lang: "css", all: res(`(?m)\{\s*$`, `(?m)^\s*[\w-]+\s*:\s*[^;]+;\s*$`)},
	{lang: "yaml", anyOf: res(`(?m)^---\s*$`, `(?m)^[\w-]+:(\s+\S.*)?$`)},
}

// Detect picks the language for source. A hint naming a known language always
// wins. Otherwise a shebang, framework markers and keyword heuristics are
// tried in that order, falling back to the generic table.
func Detect(source, hint string) *Language {
	if l, ok := Lookup(hint); ok && hint != "" {
		return l
	}
	if l := fromShebang(source); l != nil {
		return l
	}
	for _, set := range [][]heuristic{markers, heuristics} {
		for _, h := range set {
			if h.matches(source) {
				return Languages[h.lang]
			}
		}
	}
	return Languages[Fallback]
}

// DetectFile is Detect with the file name consulted after the hint.
func DetectFile(name, source, hint string) *Language {
	if l, ok := Lookup(hint); ok && hint != "" {
		return l
	}
	if name != "" {
		if n := ForFilename(path.Base(name)); n != "" {
			return Languages[n]
		}
	}
	return Detect(source, "")
}

func fromShebang(source string) *Language {
	if !strings.HasPrefix(source, "#!") {
		return nil
	}
	first, _, _ := strings.Cut(source, "\n")
	fields := strings.Fields(strings.TrimPrefix(first, "#!"))
	if len(fields) == 0 {
		return nil
	}
	interp := path.Base(fields[0])
	if interp == "env" {
		interp = ""
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				interp = path.Base(f)
				break
			}
		}
	}
	interp = strings.TrimRight(interp, "0123456789.")
	if interp == "" {
		return nil
	}
	for _, name := range Names() {
		l := Languages[name]
		for _, s := range l.Shebangs {
			if s == interp {
				return l
			}
		}
	}
	return nil
}
