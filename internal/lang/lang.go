// Package lang provides the language registry: per-language pattern tables,
// file-name mapping, comment syntax and optional tree-sitter grammars.
package lang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/qprefix/internal/model"
	"github.com/phobologic/qprefix/internal/scan"
)

// Fallback is the table used when no language can be determined.
const Fallback = "generic"

// Rule maps a category to an anchored line pattern. Rules are tried in order
// and the first match wins.
type Rule struct {
	Category model.Category
	Pattern  string
}

// CompiledRule is a Rule compiled for both matching engines.
type CompiledRule struct {
	Category model.Category
	Symbol   model.Symbol
	Regexp   *regexp.Regexp
	Program  *scan.Program
}

// CommentStyle is the syntax used to write a single-line comment.
type CommentStyle struct {
	Open  string
	Close string
}

// Wrap returns text as a comment line.
func (c CommentStyle) Wrap(text string) string {
	if c.Close == "" {
		return c.Open + " " + text
	}
	return c.Open + " " + text + " " + c.Close
}

// Language holds the classification configuration of a supported language.
type Language struct {
	Name       string
	Aliases    []string
	Extensions []string
	Filenames  []string
	Shebangs   []string // interpreter names recognized on a #! line
	Comment    CommentStyle
	Rules      []Rule
	grammar    *sitter.Language
	compiled   []CompiledRule
}

// Compiled returns the language's rules in table order.
func (l *Language) Compiled() []CompiledRule {
	return l.compiled
}

// Grammar returns the tree-sitter grammar, or nil when the language has none.
func (l *Language) Grammar() *sitter.Language {
	return l.grammar
}

// NewParser creates a fresh tree-sitter parser for this language, or nil
// when the language has no grammar.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	if l.grammar == nil {
		return nil
	}
	p := sitter.NewParser()
	p.SetLanguage(l.grammar)
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// register compiles l's rules and adds it to Languages. Tables are constant,
// so a rule that fails to compile is a programming error.
func register(l *Language) {
	l.compiled = make([]CompiledRule, len(l.Rules))
	for i, r := range l.Rules {
		if !r.Category.Valid() {
			panic(fmt.Sprintf("lang %s: rule %d: unknown category %q", l.Name, i, r.Category))
		}
		l.compiled[i] = CompiledRule{
			Category: r.Category,
			Symbol:   r.Category.Symbol(),
			Regexp:   regexp.MustCompile(r.Pattern),
			Program:  scan.MustCompile(r.Pattern),
		}
	}
	Languages[l.Name] = l
}

// Shared rules.
var (
	blankRule  = Rule{model.Neutral, `^\s*$`}
	closerRule = Rule{model.Neutral, `^\s*[\}\)\]]+\s*[;,]?\s*$`}
)

// lookup tables are built lazily after all init() functions have run.
var (
	lookupOnce   sync.Once
	extensionMap map[string]string
	filenameMap  map[string]string
	aliasMap     map[string]string
)

func buildLookups() {
	lookupOnce.Do(func() {
		extensionMap = make(map[string]string)
		filenameMap = make(map[string]string)
		aliasMap = make(map[string]string)
		for _, l := range Languages {
			aliasMap[l.Name] = l.Name
			for _, a := range l.Aliases {
				aliasMap[a] = l.Name
			}
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
			for _, fn := range l.Filenames {
				filenameMap[strings.ToLower(fn)] = l.Name
			}
		}
	})
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	buildLookups()
	return extensionMap[strings.ToLower(ext)]
}

// ForFilename returns the language name for a file base name, checking exact
// names (Dockerfile) before extensions. Returns "" if unsupported.
func ForFilename(name string) string {
	buildLookups()
	lower := strings.ToLower(name)
	if n, ok := filenameMap[lower]; ok {
		return n
	}
	if i := strings.LastIndexByte(lower, '.'); i >= 0 {
		return extensionMap[lower[i:]]
	}
	return ""
}

// Lookup resolves a language name or alias. The boolean is false for unknown names.
func Lookup(name string) (*Language, bool) {
	buildLookups()
	n, ok := aliasMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return Languages[n], true
}

// Get resolves a language name or alias, falling back to the generic table.
func Get(name string) *Language {
	if l, ok := Lookup(name); ok {
		return l
	}
	return Languages[Fallback]
}

// Names returns the registered language names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for n := range Languages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
