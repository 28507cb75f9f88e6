package scan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	spaceSet = makeSet(" \t\n\f\r")
	wordSet  = makeSet("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_")
	digitSet = makeSet("0123456789")
)

// punct lists the characters that may be escaped to stand for themselves.
const punct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func makeSet(chars string) byteSet {
	var s byteSet
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
	return s
}

type parser struct {
	src string
	pos int
}

func (p *parser) more() bool {
	return p.pos < len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) parseAlt() (*node, error) {
	var alts []*node
	for {
		c, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		alts = append(alts, c)
		if !p.more() || p.peek() != '|' {
			break
		}
		p.pos++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return &node{op: opAlt, subs: alts}, nil
}

func (p *parser) parseConcat() (*node, error) {
	var items []*node
	for p.more() && p.peek() != '|' && p.peek() != ')' {
		n, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	switch len(items) {
	case 0:
		return &node{op: opEmpty}, nil
	case 1:
		return items[0], nil
	}
	return &node{op: opConcat, subs: items}, nil
}

func (p *parser) parseRepeat() (*node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return atom, nil
	}
	var lo, hi int
	switch p.peek() {
	case '*':
		lo, hi = 0, -1
	case '+':
		lo, hi = 1, -1
	case '?':
		lo, hi = 0, 1
	default:
		return atom, nil
	}
	p.pos++
	if p.more() && strings.IndexByte("*+?{", p.peek()) >= 0 {
		return nil, fmt.Errorf("unsupported repetition at offset %d", p.pos)
	}
	switch atom.op {
	case opBegin, opEnd, opWordBoundary:
		return nil, fmt.Errorf("repetition of an anchor at offset %d", p.pos-1)
	}
	return &node{op: opRepeat, subs: []*node{atom}, min: lo, max: hi}, nil
}

func (p *parser) parseAtom() (*node, error) {
	c := p.peek()
	switch c {
	case '(':
		p.pos++
		if strings.HasPrefix(p.src[p.pos:], "?:") {
			p.pos += 2
		} else if p.more() && p.peek() == '?' {
			return nil, fmt.Errorf("unsupported group flags at offset %d", p.pos)
		}
		n, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if !p.more() || p.peek() != ')' {
			return nil, errors.New("missing closing )")
		}
		p.pos++
		return n, nil
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &node{op: opAny}, nil
	case '^':
		p.pos++
		return &node{op: opBegin}, nil
	case '$':
		p.pos++
		return &node{op: opEnd}, nil
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return nil, fmt.Errorf("missing argument to repetition at offset %d", p.pos)
	case '{', '}', ']':
		return nil, fmt.Errorf("unescaped %q at offset %d", c, p.pos)
	}
	if c >= 0x80 || c < 0x20 {
		return nil, fmt.Errorf("non-ASCII or control byte at offset %d", p.pos)
	}
	p.pos++
	return &node{op: opByte, b: c}, nil
}

func (p *parser) parseEscape() (*node, error) {
	p.pos++
	if !p.more() {
		return nil, errors.New("trailing backslash")
	}
	c := p.peek()
	p.pos++
	switch c {
	case 's':
		return &node{op: opSet, set: &spaceSet}, nil
	case 'w':
		return &node{op: opSet, set: &wordSet}, nil
	case 'd':
		return &node{op: opSet, set: &digitSet}, nil
	case 'b':
		return &node{op: opWordBoundary}, nil
	case 't':
		return &node{op: opByte, b: '\t'}, nil
	}
	if strings.IndexByte(punct, c) >= 0 {
		return &node{op: opByte, b: c}, nil
	}
	return nil, fmt.Errorf("unsupported escape \\%c", c)
}

func (p *parser) parseClass() (*node, error) {
	p.pos++ // [
	n := &node{op: opSet, set: new(byteSet)}
	if p.more() && p.peek() == '^' {
		n.neg = true
		p.pos++
	}
	empty := true
	for {
		if !p.more() {
			return nil, errors.New("missing closing ]")
		}
		c := p.peek()
		if c == ']' {
			if empty {
				return nil, errors.New("empty or ]-leading class")
			}
			p.pos++
			return n, nil
		}
		empty = false
		if c == '\\' && p.pos+1 < len(p.src) {
			switch e := p.src[p.pos+1]; e {
			case 's', 'w', 'd':
				src := map[byte]*byteSet{'s': &spaceSet, 'w': &wordSet, 'd': &digitSet}[e]
				union(n.set, src)
				p.pos += 2
				continue
			}
		}
		lo, err := p.classChar()
		if err != nil {
			return nil, err
		}
		hi := lo
		if p.pos+1 < len(p.src) && p.peek() == '-' && p.src[p.pos+1] != ']' {
			p.pos++
			if hi, err = p.classChar(); err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, fmt.Errorf("bad range %c-%c", lo, hi)
			}
		}
		for b := int(lo); b <= int(hi); b++ {
			n.set[b] = true
		}
	}
}

func (p *parser) classChar() (byte, error) {
	c := p.peek()
	p.pos++
	if c == '\\' {
		if !p.more() {
			return 0, errors.New("trailing backslash")
		}
		c = p.peek()
		p.pos++
		if c == 't' {
			return '\t', nil
		}
		if strings.IndexByte(punct, c) < 0 {
			return 0, fmt.Errorf("unsupported class escape \\%c", c)
		}
		return c, nil
	}
	if c >= 0x80 || c < 0x20 {
		return 0, fmt.Errorf("non-ASCII or control byte in class at offset %d", p.pos-1)
	}
	if c == '[' {
		return 0, errors.New("unescaped [ in class")
	}
	return c, nil
}
