// Package batch classifies whole documents with one independent unit of work
// per line, packing 4-bit symbol codes eight to a word.
package batch

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/scan"
)

const (
	// SymbolsPerWord is the number of 4-bit codes packed into one uint32.
	SymbolsPerWord = 8

	// DefaultMaxLineLength caps the slot width of a segmented document.
	DefaultMaxLineLength = 4096
)

// Segments holds a document's lines copied into fixed-width slots so line i
// starts at i*Stride.
type Segments struct {
	buf    []byte
	stride int
	lens   []int
	long   map[int]string // lines wider than stride, kept whole
}

// Segment copies lines into one buffer. The slot width is the longest line,
// capped at maxLineLength; wider lines are kept aside so that truncation never
// changes a classification.
func Segment(lines []string, maxLineLength int) *Segments {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	stride := 0
	for _, l := range lines {
		stride = max(stride, len(l))
	}
	stride = min(stride, maxLineLength)

	s := &Segments{
		buf:    make([]byte, len(lines)*stride),
		stride: stride,
		lens:   make([]int, len(lines)),
	}
	for i, l := range lines {
		if len(l) > stride {
			if s.long == nil {
				s.long = make(map[int]string)
			}
			s.long[i] = l
			continue
		}
		copy(s.buf[i*stride:], l)
		s.lens[i] = len(l)
	}
	return s
}

// Len returns the number of lines.
func (s *Segments) Len() int {
	return len(s.lens)
}

// Stride returns the slot width in bytes.
func (s *Segments) Stride() int {
	return s.stride
}

// Line returns the bytes of line i without padding.
func (s *Segments) Line(i int) []byte {
	if l, ok := s.long[i]; ok {
		return []byte(l)
	}
	off := i * s.stride
	return s.buf[off : off+s.lens[i]]
}

// Result is the output of one kernel run.
type Result struct {
	Language  string                    `msgpack:"language" json:"language"`
	Lines     int                       `msgpack:"lines" json:"lines"`
	Packed    []uint32                  `msgpack:"packed" json:"packed"`
	Histogram [model.CoreSymbols]uint32 `msgpack:"histogram" json:"histogram"`

	rules []int16 // matched rule per line, -1 when none matched
}

// Symbols unpacks the per-line symbols.
func (r *Result) Symbols() []model.Symbol {
	syms, _ := Unpack(r.Packed, r.Lines)
	return syms
}

// Kernel runs one language's pattern table over segmented lines.
type Kernel struct {
	lang  *lang.Language
	rules []lang.CompiledRule
}

// NewKernel creates a kernel for l.
func NewKernel(l *lang.Language) *Kernel {
	return &Kernel{lang: l, rules: l.Compiled()}
}

// Match returns the index of the first rule matching line, or -1.
// It reads nothing but line and the immutable rule table. Lines longer than
// scan.MaxInput go through the rules' regexp form instead.
func (k *Kernel) Match(line []byte) int {
	if len(line) > scan.MaxInput {
		for i := range k.rules {
			if k.rules[i].Regexp.Match(line) {
				return i
			}
		}
		return -1
	}
	start := scan.Indent(line)
	for i := range k.rules {
		p := k.rules[i].Program
		if p.Rejects(line, start) {
			continue
		}
		if p.Match(line) {
			return i
		}
	}
	return -1
}

// Classify returns the classification of a single line.
func (k *Kernel) Classify(n int, line []byte) model.LineClassification {
	return k.classification(n, k.Match(line))
}

func (k *Kernel) classification(n, rule int) model.LineClassification {
	if rule < 0 {
		return model.Classify(n, model.Default)
	}
	r := k.rules[rule]
	return model.LineClassification{Line: n, Symbol: r.Symbol, Category: r.Category}
}

// Run classifies every segmented line, spreading contiguous chunks of lines
// over workers goroutines (GOMAXPROCS when workers <= 0).
func (k *Kernel) Run(seg *Segments, workers int) *Result {
	n := seg.Len()
	res := &Result{
		Language: k.lang.Name,
		Lines:    n,
		Packed:   make([]uint32, PackedWords(n)),
		rules:    make([]int16, n),
	}
	if n == 0 {
		return res
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				k.unit(seg, res, i)
			}
		}()
	}
	wg.Wait()
	return res
}

// unit is the per-line work item. Neighbouring lines may share a packed word
// with another worker, so the code is merged with an atomic OR.
func (k *Kernel) unit(seg *Segments, res *Result, i int) {
	rule := k.Match(seg.Line(i))
	res.rules[i] = int16(rule)

	sym := model.MinusN
	if rule >= 0 {
		sym = k.rules[rule].Symbol
	}
	shift := 4 * uint(i%SymbolsPerWord)
	atomic.OrUint32(&res.Packed[i/SymbolsPerWord], uint32(sym.Code())<<shift)
	atomic.AddUint32(&res.Histogram[sym.Core().Code()], 1)
}

// Classifications returns the per-line classifications of a kernel result.
func (k *Kernel) Classifications(res *Result) []model.LineClassification {
	out := make([]model.LineClassification, len(res.rules))
	for i, rule := range res.rules {
		out[i] = k.classification(i+1, int(rule))
	}
	return out
}

// PackedWords returns the number of words needed to pack n codes.
func PackedWords(n int) int {
	return (n + SymbolsPerWord - 1) / SymbolsPerWord
}

// Pack packs symbol codes sequentially.
func Pack(symbols []model.Symbol) []uint32 {
	packed := make([]uint32, PackedWords(len(symbols)))
	for i, s := range symbols {
		packed[i/SymbolsPerWord] |= uint32(s.Code()) << (4 * uint(i%SymbolsPerWord))
	}
	return packed
}

// Unpack returns the first n symbols of a packed buffer.
func Unpack(packed []uint32, n int) ([]model.Symbol, error) {
	if n < 0 || n > len(packed)*SymbolsPerWord {
		return nil, fmt.Errorf("unpack: %d symbols do not fit in %d words", n, len(packed))
	}
	out := make([]model.Symbol, n)
	for i := range out {
		code := uint8(packed[i/SymbolsPerWord] >> (4 * uint(i%SymbolsPerWord)) & 0xF)
		sym, ok := model.SymbolFromCode(code)
		if !ok {
			return nil, fmt.Errorf("unpack: invalid code %d at line %d", code, i+1)
		}
		out[i] = sym
	}
	return out, nil
}

// Histogram tallies symbols into the core bins sequentially.
func Histogram(symbols []model.Symbol) [model.CoreSymbols]uint32 {
	var h [model.CoreSymbols]uint32
	for _, s := range symbols {
		h[s.Core().Code()]++
	}
	return h
}

// Encode writes r in msgpack.
func Encode(w io.Writer, r *Result) error {
	return msgpack.NewEncoder(w).Encode(r)
}

// Decode reads a msgpack-encoded result. The per-line rule indexes are not
// part of the encoding; use Symbols for the decoded lines.
func Decode(rd io.Reader) (*Result, error) {
	var r Result
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding packed result: %w", err)
	}
	if _, err := Unpack(r.Packed, r.Lines); err != nil {
		return nil, err
	}
	return &r, nil
}
