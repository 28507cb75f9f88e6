// Package model defines core data structures for qprefix.
package model

import "fmt"

// Symbol is a quantum prefix tag. Its value is the 4-bit code used in packed output.
type Symbol uint8

const (
	PlusOne   Symbol = iota // +1 declaration
	One                     // 1  logic
	MinusOne                // -1 io
	PlusZero                // +0 assignment
	Zero                    // 0  neutral
	MinusZero               // -0 comment, decorator
	PlusN                   // +n exit
	N                       // n  import
	MinusN                  // -n unknown
	PlusTwo                 // +2 loop
	PlusThree               // +3 output
)

// CoreSymbols is the number of core symbols; their codes are 0..CoreSymbols-1.
const CoreSymbols = 9

// SymbolCount is the number of defined symbols, core and extended.
const SymbolCount = 11

var symbolText = [SymbolCount]string{"+1", "1", "-1", "+0", "0", "-0", "+n", "n", "-n", "+2", "+3"}

// Symbols lists every symbol in code order.
var Symbols = []Symbol{PlusOne, One, MinusOne, PlusZero, Zero, MinusZero, PlusN, N, MinusN, PlusTwo, PlusThree}

func (s Symbol) String() string {
	if int(s) < SymbolCount {
		return symbolText[s]
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

// Code returns the 4-bit code of the symbol.
func (s Symbol) Code() uint8 {
	return uint8(s)
}

// Valid reports whether s is one of the defined symbols.
func (s Symbol) Valid() bool {
	return int(s) < SymbolCount
}

// Core folds an extended symbol onto the core symbol it refines.
// Loop is a kind of logic and output is a kind of io.
func (s Symbol) Core() Symbol {
	switch s {
	case PlusTwo:
		return One
	case PlusThree:
		return MinusOne
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid symbol code %d", uint8(s))
	}
	return []byte(symbolText[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, ok := ParseSymbol(string(text))
	if !ok {
		return fmt.Errorf("unknown symbol %q", text)
	}
	*s = sym
	return nil
}

// ParseSymbol returns the symbol with the given display form.
func ParseSymbol(text string) (Symbol, bool) {
	for i, t := range symbolText {
		if t == text {
			return Symbol(i), true
		}
	}
	return 0, false
}

// SymbolFromCode returns the symbol for a 4-bit code.
func SymbolFromCode(code uint8) (Symbol, bool) {
	if int(code) >= SymbolCount {
		return 0, false
	}
	return Symbol(code), true
}

// Category is the semantic meaning behind a Symbol.
type Category string

const (
	Declaration Category = "declaration"
	Logic       Category = "logic"
	IO          Category = "io"
	Output      Category = "output"
	Assignment  Category = "assignment"
	Neutral     Category = "neutral"
	Comment     Category = "comment"
	Decorator   Category = "decorator"
	Import      Category = "import"
	Loop        Category = "loop"
	Exit        Category = "exit"
	Default     Category = "default"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	Declaration, Logic, IO, Output, Assignment, Neutral,
	Comment, Decorator, Import, Loop, Exit, Default,
}

var categorySymbol = map[Category]Symbol{
	Declaration: PlusOne,
	Logic:       One,
	IO:          MinusOne,
	Output:      PlusThree,
	Assignment:  PlusZero,
	Neutral:     Zero,
	Comment:     MinusZero,
	Decorator:   MinusZero,
	Import:      N,
	Loop:        PlusTwo,
	Exit:        PlusN,
	Default:     MinusN,
}

// Symbol returns the symbol rendered for the category. Unknown categories render as MinusN.
func (c Category) Symbol() Symbol {
	if s, ok := categorySymbol[c]; ok {
		return s
	}
	return MinusN
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categorySymbol[c]
	return ok
}

// LineClassification is the classification of a single source line.
type LineClassification struct {
	Line     int      `json:"line" yaml:"line"` // 1-based
	Symbol   Symbol   `json:"symbol" yaml:"symbol"`
	Category Category `json:"category" yaml:"category"`
}

// Classify builds a LineClassification for a category.
func Classify(line int, c Category) LineClassification {
	return LineClassification{Line: line, Symbol: c.Symbol(), Category: c}
}

// DocumentMetadata is the result of analyzing one document.
type DocumentMetadata struct {
	Path            string               `json:"path,omitempty" yaml:"path,omitempty"`
	Language        string               `json:"language" yaml:"language"`
	Backend         string               `json:"backend" yaml:"backend"`
	TotalLines      int                  `json:"total_lines" yaml:"total_lines"`
	ClassifiedLines int                  `json:"classified_lines" yaml:"classified_lines"`
	Coverage        int                  `json:"coverage" yaml:"coverage"`
	Counts          map[Category]int     `json:"counts" yaml:"counts"`
	Lines           []LineClassification `json:"lines" yaml:"lines"`
	Fingerprint     uint64               `json:"fingerprint" yaml:"fingerprint"`
}

// GateDescriptor describes the gate a symbol maps to.
type GateDescriptor struct {
	Name       string  `json:"name" yaml:"name"`
	Arity      int     `json:"arity" yaml:"arity"`
	Param      float64 `json:"param,omitempty" yaml:"param,omitempty"`
	Parametric bool    `json:"parametric,omitempty" yaml:"parametric,omitempty"`
}

// CircuitGate is one gate application in a built circuit.
type CircuitGate struct {
	Step   int     `json:"step" yaml:"step"`
	Gate   string  `json:"gate" yaml:"gate"`
	Qubit  int     `json:"qubit" yaml:"qubit"`
	Target int     `json:"target" yaml:"target"` // -1 for single-qubit gates
	Param  float64 `json:"param,omitempty" yaml:"param,omitempty"`
	Line   int     `json:"line" yaml:"line"`
	Symbol Symbol  `json:"symbol" yaml:"symbol"`
}

// Circuit is an ordered gate sequence derived from a classified document.
type Circuit struct {
	Gates  []CircuitGate `json:"gates" yaml:"gates"`
	Qubits int           `json:"qubits" yaml:"qubits"`
	Depth  int           `json:"depth" yaml:"depth"`
	Width  int           `json:"width" yaml:"width"`
	Trace  []int         `json:"trace" yaml:"trace"` // pointer before each line
}
