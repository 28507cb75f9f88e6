// Package scan matches the anchored regular-expression subset used by the
// pattern tables directly against byte buffers.
//
// Supported syntax: literals, escaped punctuation, \s \w \d \b \t, '.',
// bracket classes (ranges, negation, \s \w \d members), groups ( ) and (?: ),
// alternation, the greedy quantifiers * + ?, and the anchors ^ and $.
// Every pattern must start with '^'. For any input the result equals the
// result of regexp.MatchString on the same expression: '.' and negated classes
// step over whole UTF-8 runes, everything else is ASCII.
//
// The matcher backtracks recursively, so its stack grows with the input.
// Inputs longer than MaxInput should go to package regexp.
package scan

import (
	"fmt"
	"unicode/utf8"
)

// MaxInput is the longest input the matcher is meant to see.
const MaxInput = 64 << 10

type op uint8

const (
	opEmpty op = iota
	opByte
	opSet
	opAny
	opBegin
	opEnd
	opWordBoundary
	opConcat
	opAlt
	opRepeat
)

type byteSet [256]bool

type node struct {
	op   op
	b    byte
	set  *byteSet
	neg  bool
	subs []*node
	min  int
	max  int // -1 is unbounded
}

// Program is a compiled pattern. It is immutable and safe for concurrent use.
type Program struct {
	expr   string
	root   *node
	indent bool     // pattern starts with ^\s*
	first  *byteSet // possible first bytes after the indent, nil when unknown
}

// Compile parses expr into a Program.
func Compile(expr string) (*Program, error) {
	p := &parser{src: expr}
	if len(expr) == 0 || expr[0] != '^' {
		return nil, fmt.Errorf("scan: %q: pattern must start with ^", expr)
	}
	root, err := p.parseAlt()
	if err != nil {
		return nil, fmt.Errorf("scan: %q: %w", expr, err)
	}
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("scan: %q: unexpected %q at offset %d", expr, p.src[p.pos], p.pos)
	}
	prog := &Program{expr: expr, root: root}
	prog.prefilter()
	return prog, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Program {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) String() string {
	return p.expr
}

// Match reports whether b matches the pattern.
func (p *Program) Match(b []byte) bool {
	m := matcher{b: b}
	return m.match(p.root, 0, accept)
}

// MatchString reports whether s matches the pattern.
func (p *Program) MatchString(s string) bool {
	return p.Match([]byte(s))
}

// Rejects reports whether the first-byte prefilter proves b cannot match.
// start must be Indent(b).
func (p *Program) Rejects(b []byte, start int) bool {
	if p.first == nil {
		return false
	}
	at := 0
	if p.indent {
		at = start
	}
	return at >= len(b) || !p.first[b[at]]
}

// Indent returns the offset of the first byte of b that is not matched by \s.
func Indent(b []byte) int {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return i
}

func accept(int) bool { return true }

// prefilter derives the first-byte set used by Rejects. With a leading ^\s*
// the set is only usable when no whitespace byte can start the remainder,
// since \s* must then stop exactly at the indent.
func (p *Program) prefilter() {
	subs := []*node{p.root}
	if p.root.op == opConcat {
		subs = p.root.subs
	}
	if len(subs) == 0 || subs[0].op != opBegin {
		return
	}
	rest := subs[1:]
	if len(rest) > 0 && isSpaceStar(rest[0]) {
		p.indent = true
		rest = rest[1:]
	}
	set, nullable := firstOf(rest)
	if nullable {
		return
	}
	if p.indent {
		for c := range 256 {
			if set[c] && isSpace(byte(c)) {
				return
			}
		}
	}
	p.first = &set
}

func isSpaceStar(n *node) bool {
	if n.op != opRepeat || n.min != 0 || n.max != -1 {
		return false
	}
	s := n.subs[0]
	return s.op == opSet && !s.neg && *s.set == spaceSet
}

func firstOf(nodes []*node) (byteSet, bool) {
	var set byteSet
	for _, n := range nodes {
		f, nullable := first(n)
		union(&set, &f)
		if !nullable {
			return set, false
		}
	}
	return set, true
}

func first(n *node) (byteSet, bool) {
	var set byteSet
	switch n.op {
	case opByte:
		set[n.b] = true
		return set, false
	case opSet:
		if !n.neg {
			return *n.set, false
		}
		for c := range 256 {
			set[c] = c >= utf8.RuneSelf || !n.set[c]
		}
		return set, false
	case opAny:
		for c := range 256 {
			set[c] = c != '\n'
		}
		return set, false
	case opConcat:
		return firstOf(n.subs)
	case opAlt:
		nullable := false
		for _, s := range n.subs {
			f, nl := first(s)
			union(&set, &f)
			nullable = nullable || nl
		}
		return set, nullable
	case opRepeat:
		f, nl := first(n.subs[0])
		return f, nl || n.min == 0
	}
	// empty and zero-width assertions
	return set, true
}

func union(dst, src *byteSet) {
	for c := range 256 {
		dst[c] = dst[c] || src[c]
	}
}

type matcher struct {
	b []byte
}

func (m *matcher) match(n *node, i int, k func(int) bool) bool {
	switch n.op {
	case opEmpty:
		return k(i)
	case opByte:
		return i < len(m.b) && m.b[i] == n.b && k(i+1)
	case opSet:
		if i >= len(m.b) {
			return false
		}
		if !n.neg {
			return n.set[m.b[i]] && k(i+1)
		}
		r, w := utf8.DecodeRune(m.b[i:])
		if r < utf8.RuneSelf && n.set[r] {
			return false
		}
		return k(i + w)
	case opAny:
		if i >= len(m.b) {
			return false
		}
		r, w := utf8.DecodeRune(m.b[i:])
		return r != '\n' && k(i+w)
	case opBegin:
		return i == 0 && k(i)
	case opEnd:
		return i == len(m.b) && k(i)
	case opWordBoundary:
		return m.isWordAt(i-1) != m.isWordAt(i) && k(i)
	case opConcat:
		return m.concat(n.subs, i, k)
	case opAlt:
		for _, s := range n.subs {
			if m.match(s, i, k) {
				return true
			}
		}
		return false
	case opRepeat:
		return m.repeat(n, i, 0, k)
	}
	return false
}

func (m *matcher) concat(subs []*node, i int, k func(int) bool) bool {
	if len(subs) == 0 {
		return k(i)
	}
	return m.match(subs[0], i, func(j int) bool {
		return m.concat(subs[1:], j, k)
	})
}

// repeat tries the longest run first. An iteration that consumes nothing ends
// the run, which keeps patterns like (a*)* from looping.
func (m *matcher) repeat(n *node, i, count int, k func(int) bool) bool {
	if n.max < 0 || count < n.max {
		more := m.match(n.subs[0], i, func(j int) bool {
			if j == i {
				return count+1 >= n.min && k(j)
			}
			return m.repeat(n, j, count+1, k)
		})
		if more {
			return true
		}
	}
	return count >= n.min && k(i)
}

func (m *matcher) isWordAt(i int) bool {
	return i >= 0 && i < len(m.b) && isWord(m.b[i])
}

func isWord(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}
