// Package parse classifies source lines from a tree-sitter syntax tree.
package parse

import (
	"context"
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/qprefix/internal/model"
)

// nodeCategories maps named node kinds to categories. Kinds from every
// supported grammar share one table; a kind absent here leaves its line alone.
var nodeCategories = map[string]model.Category{
	// comments
	"comment":       model.Comment,
	"line_comment":  model.Comment,
	"block_comment": model.Comment,
	"doc_comment":   model.Comment,

	// decorators and annotations
	"decorator":            model.Decorator,
	"attribute_item":       model.Decorator,
	"inner_attribute_item": model.Decorator,
	"annotation":           model.Decorator,
	"marker_annotation":    model.Decorator,

	// imports
	"import_statement":          model.Import,
	"import_from_statement":     model.Import,
	"future_import_statement":   model.Import,
	"use_declaration":           model.Import,
	"extern_crate_declaration":  model.Import,
	"mod_item":                  model.Import,
	"import_declaration":        model.Import,
	"import_spec":               model.Import,
	"preproc_include":           model.Import,
	"preproc_def":               model.Import,
	"preproc_function_def":      model.Import,
	"package_clause":            model.Import,
	"package_declaration":       model.Import,
	"namespace_use_declaration": model.Import,
	"shebang":                   model.Import,
	"hash_bang_line":            model.Import,

	// declarations
	"function_definition":            model.Declaration,
	"function_declaration":           model.Declaration,
	"function_item":                  model.Declaration,
	"function_signature_item":        model.Declaration,
	"generator_function_declaration": model.Declaration,
	"method_definition":              model.Declaration,
	"method_declaration":             model.Declaration,
	"constructor_declaration":        model.Declaration,
	"class_definition":               model.Declaration,
	"class_declaration":              model.Declaration,
	"abstract_class_declaration":     model.Declaration,
	"interface_declaration":          model.Declaration,
	"enum_declaration":               model.Declaration,
	"record_declaration":             model.Declaration,
	"type_alias_declaration":         model.Declaration,
	"type_declaration":               model.Declaration,
	"type_definition":                model.Declaration,
	"var_declaration":                model.Declaration,
	"const_declaration":              model.Declaration,
	"struct_item":                    model.Declaration,
	"struct_specifier":               model.Declaration,
	"union_specifier":                model.Declaration,
	"enum_item":                      model.Declaration,
	"enum_specifier":                 model.Declaration,
	"trait_item":                     model.Declaration,
	"type_item":                      model.Declaration,
	"impl_item":                      model.Declaration,
	"const_item":                     model.Declaration,
	"static_item":                    model.Declaration,
	"macro_definition":               model.Declaration,
	"class":                          model.Declaration,
	"module":                         model.Declaration,
	"method":                         model.Declaration,
	"singleton_method":               model.Declaration,

	// assignment
	"assignment":                      model.Assignment,
	"assignment_statement":            model.Assignment,
	"assignment_expression":           model.Assignment,
	"augmented_assignment":            model.Assignment,
	"augmented_assignment_expression": model.Assignment,
	"compound_assignment_expr":        model.Assignment,
	"operator_assignment":             model.Assignment,
	"update_expression":               model.Assignment,
	"inc_statement":                   model.Assignment,
	"dec_statement":                   model.Assignment,
	"variable_assignment":             model.Assignment,
	"variable_declaration":            model.Assignment,
	"lexical_declaration":             model.Assignment,
	"let_declaration":                 model.Assignment,
	"short_var_declaration":           model.Assignment,
	"local_variable_declaration":      model.Assignment,
	"declaration":                     model.Assignment,

	// logic, including error handling
	"if_statement":                 model.Logic,
	"if_expression":                model.Logic,
	"else_clause":                  model.Logic,
	"elif_clause":                  model.Logic,
	"match_expression":             model.Logic,
	"match_arm":                    model.Logic,
	"switch_statement":             model.Logic,
	"switch_expression":            model.Logic,
	"expression_switch_statement":  model.Logic,
	"type_switch_statement":        model.Logic,
	"select_statement":             model.Logic,
	"case_clause":                  model.Logic,
	"case_statement":               model.Logic,
	"expression_case":              model.Logic,
	"type_case":                    model.Logic,
	"communication_case":           model.Logic,
	"default_case":                 model.Logic,
	"switch_case":                  model.Logic,
	"switch_block_statement_group": model.Logic,
	"try_statement":                model.Logic,
	"try_expression":               model.Logic,
	"catch_clause":                 model.Logic,
	"except_clause":                model.Logic,
	"finally_clause":               model.Logic,
	"conditional_expression":       model.Logic,
	"ternary_expression":           model.Logic,
	"throw_statement":              model.Logic,
	"raise_statement":              model.Logic,
	"if":                           model.Logic,
	"unless":                       model.Logic,
	"elsif":                        model.Logic,
	"else":                         model.Logic,
	"case":                         model.Logic,
	"when":                         model.Logic,
	"begin":                        model.Logic,
	"rescue":                       model.Logic,
	"ensure":                       model.Logic,

	// loops
	"for_statement":          model.Loop,
	"for_in_statement":       model.Loop,
	"for_expression":         model.Loop,
	"enhanced_for_statement": model.Loop,
	"c_style_for_statement":  model.Loop,
	"while_statement":        model.Loop,
	"while_expression":       model.Loop,
	"loop_expression":        model.Loop,
	"do_statement":           model.Loop,
	"for":                    model.Loop,
	"while":                  model.Loop,
	"until":                  model.Loop,

	// exits
	"return_statement":      model.Exit,
	"return_expression":     model.Exit,
	"yield_expression":      model.Exit,
	"yield_statement":       model.Exit,
	"break_statement":       model.Exit,
	"break_expression":      model.Exit,
	"continue_statement":    model.Exit,
	"continue_expression":   model.Exit,
	"goto_statement":        model.Exit,
	"defer_statement":       model.Exit,
	"assert_statement":      model.Exit,
	"await_expression":      model.Exit,
	"fallthrough_statement": model.Exit,
	"return":                model.Exit,
	"break":                 model.Exit,
	"next":                  model.Exit,
	"yield":                 model.Exit,
}

// callKinds are node kinds whose category depends on the callee.
var callKinds = map[string]struct{}{
	"call":              {},
	"call_expression":   {},
	"method_invocation": {},
	"macro_invocation":  {},
	"command":           {},
}

var (
	outputCallees = []string{"print", "console.", "log", "echo", "puts", "system.out", "system.err"}
	ioCallees     = []string{"write", "read", "fetch", "stdin", "stdout", "stderr", "open", "socket", "http", "curl"}
	importCallees = map[string]struct{}{"require": {}, "require_relative": {}, "load": {}, "source": {}}
)

// ErrNoTree is returned when the parser produced no syntax tree.
var ErrNoTree = errors.New("parse: no syntax tree")

// Lines parses source and returns one category per element of lines, which
// must be source split on '\n'. A line keeps the category of the last
// classified node that starts on it in a pre-order walk, so inner
// constructs win over their enclosing ones. Lines without a classified node
// are Neutral when blank or a lone closer, Default otherwise.
func Lines(ctx context.Context, parser *sitter.Parser, language string, source []byte, lines []string) ([]model.Category, error) {
	cats := make([]model.Category, len(lines))
	for i, l := range lines {
		if isNeutral(l) {
			cats[i] = model.Neutral
		} else {
			cats[i] = model.Default
		}
	}
	if len(source) == 0 {
		return cats, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, ErrNoTree
	}
	defer tree.Close()

	w := walker{source: source, cats: cats, docstrings: language == "python"}
	w.walk(tree.RootNode())
	return cats, nil
}

type walker struct {
	source     []byte
	cats       []model.Category
	docstrings bool
}

func (w *walker) walk(node *sitter.Node) {
	if node.IsNamed() {
		if cat := w.classify(node); cat != "" {
			if row := int(node.StartPoint().Row); row < len(w.cats) {
				w.cats[row] = cat
			}
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i))
	}
}

func (w *walker) classify(node *sitter.Node) model.Category {
	kind := node.Type()
	if cat, ok := nodeCategories[kind]; ok {
		return cat
	}
	if _, ok := callKinds[kind]; ok {
		return calleeCategory(calleeText(node, w.source))
	}
	if kind == "expression_statement" && w.docstrings && node.ChildCount() > 0 && node.Child(0).Type() == "string" {
		return model.Comment
	}
	return ""
}

func calleeCategory(callee string) model.Category {
	if _, ok := importCallees[callee]; ok {
		return model.Import
	}
	callee = strings.ToLower(callee)
	for _, s := range outputCallees {
		if strings.Contains(callee, s) {
			return model.Output
		}
	}
	for _, s := range ioCallees {
		if strings.Contains(callee, s) {
			return model.IO
		}
	}
	return ""
}

func calleeText(node *sitter.Node, source []byte) string {
	if f := node.ChildByFieldName("function"); f != nil {
		return nodeText(f, source)
	}
	if m := node.ChildByFieldName("method"); m != nil {
		if r := node.ChildByFieldName("receiver"); r != nil {
			return nodeText(r, source) + "." + nodeText(m, source)
		}
		return nodeText(m, source)
	}
	if n := node.ChildByFieldName("name"); n != nil {
		if o := node.ChildByFieldName("object"); o != nil {
			return nodeText(o, source) + "." + nodeText(n, source)
		}
		return nodeText(n, source)
	}
	if node.ChildCount() > 0 {
		return nodeText(node.Child(0), source)
	}
	return ""
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

func isNeutral(line string) bool {
	switch strings.TrimSpace(line) {
	case "", "}", "};", "})", "});", ")", "]", "end", "fi", "done", "esac":
		return true
	}
	return false
}
