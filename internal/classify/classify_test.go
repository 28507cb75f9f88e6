package classify

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/qprefix/internal/batch"
	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// corpus mixes constructs from every supported language so each table sees
// lines it matches and lines it does not.
var corpus = []string{
	"",
	"   ",
	"\t",
	"#!/usr/bin/env python3",
	"#!/bin/bash",
	"# comment",
	"// comment",
	"/* block */",
	" * continued",
	"-- sql comment",
	"; asm comment",
	"<!-- html comment -->",
	"@decorator",
	"@app.route(\"/\")",
	"#[derive(Debug)]",
	"@Override",
	"import foo",
	"from os import path",
	"import \"fmt\"",
	"use std::io;",
	"#include <stdio.h>",
	"require 'json'",
	"const fs = require('fs');",
	"package main",
	"FROM alpine:3.19",
	"class Bar:",
	"class Foo extends Bar {",
	"def greet(name)",
	"func main() {",
	"fn main() {",
	"pub fn run(x: i32) -> i32 {",
	"function f() {",
	"fun main() {",
	"interface User {",
	"struct Point {",
	"type T struct {",
	"    return x + 1",
	"return",
	"break;",
	"yield value",
	"if x > 0:",
	"} else {",
	"elif y:",
	"switch (x) {",
	"case 1:",
	"try:",
	"except ValueError:",
	"raise Error()",
	"if err != nil {",
	"for i in range(10):",
	"while True:",
	"for (let i = 0; i < n; i++) {",
	"loop {",
	"print(\"hi\")",
	"console.log(x);",
	"fmt.Println(x)",
	"println!(\"{}\", x);",
	"echo hello",
	"puts name",
	"System.out.println(x);",
	"with open(path) as f:",
	"data = open(path)",
	"f, err := os.Open(path)",
	"x = 1",
	"x += 2",
	"let y = 3;",
	"const z = 4;",
	"var a int",
	"i++",
	"a == b",
	"}",
	"});",
	"]",
	"end",
	"fi",
	"done",
	"pass",
	"SELECT id FROM users;",
	"INSERT INTO t VALUES (1);",
	"name: value",
	"key = \"value\"",
	"[section]",
	"RUN apk add git",
	"body { color: red; }",
	"<div class=\"x\">",
	"mov eax, 1",
	"section .text",
	"void setup() {",
	"Serial.println(x);",
	"naïve = 1",
	"x = \"ünïcödé\"",
	"\xff\xfe invalid",
	"line with trailing cr\r",
	strings.Repeat("x = ", 300) + "1",
	"    " + strings.Repeat("#", 5000),
}

func TestParallelMatchesRegex(t *testing.T) {
	t.Parallel()

	for _, name := range lang.Names() {
		l, ok := lang.Lookup(name)
		require.True(t, ok, name)
		want := Regex{}.Lines(corpus, l)

		for _, p := range []*Parallel{
			{Workers: 1},
			{Workers: 3},
			{Workers: 64, MaxLineLength: 16},
		} {
			got := p.Lines(corpus, l)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i], got[i], "%s line %d %q (workers=%d)", name, i+1, corpus[i], p.Workers)
			}
		}
	}
}

func TestParallelLineMatchesRegex(t *testing.T) {
	t.Parallel()

	for _, name := range lang.Names() {
		l := lang.Get(name)
		p := &Parallel{}
		for i, text := range corpus {
			assert.Equal(t, Regex{}.Line(i+1, text, l), p.Line(i+1, text, l), "%s %q", name, text)
		}
	}
}

func TestParallelPackHistogram(t *testing.T) {
	t.Parallel()

	l := lang.Get("python")
	res := (&Parallel{Workers: 4}).Pack(corpus, l)
	want := Regex{}.Lines(corpus, l)

	syms := res.Symbols()
	require.Len(t, syms, len(want))
	for i := range want {
		assert.Equal(t, want[i].Symbol, syms[i], "line %d", i+1)
	}

	var total uint32
	for _, c := range res.Histogram {
		total += c
	}
	assert.Equal(t, uint32(len(corpus)), total)

	seq := make([]model.Symbol, len(want))
	for i, lc := range want {
		seq[i] = lc.Symbol
	}
	assert.Equal(t, batch.Pack(seq), res.Packed)
	assert.Equal(t, batch.Histogram(seq), res.Histogram)
}

// TestParallelLongLine covers a single line close to the default file size
// cap, which is wider than any slot and than the matcher's input bound.
func TestParallelLongLine(t *testing.T) {
	t.Parallel()

	lines := []string{strings.Repeat("a ", 1<<19), "x = 1"}
	for _, name := range []string{"c", "python", "javascript"} {
		l := lang.Get(name)
		want := Regex{}.Lines(lines, l)
		got := (&Parallel{}).Lines(lines, l)
		assert.Equal(t, want, got, name)
		assert.Equal(t, want[0], (&Parallel{}).Line(1, lines[0], l), name)
	}
}

func TestPythonExample(t *testing.T) {
	t.Parallel()

	for _, name := range []string{BackendRegex, BackendParallel} {
		b, err := New(name, Options{})
		require.NoError(t, err)

		md := NewAnalyzer(b, zerolog.Nop()).Analyze("", "# comment\nimport foo\nclass Bar:", "python")
		require.Equal(t, 3, md.TotalLines, name)
		assert.Equal(t, 3, md.ClassifiedLines, name)
		assert.Equal(t, 100, md.Coverage, name)

		var cats []model.Category
		for _, lc := range md.Lines {
			cats = append(cats, lc.Category)
		}
		assert.Equal(t, []model.Category{model.Comment, model.Import, model.Declaration}, cats, name)
	}
}

func TestReturnLine(t *testing.T) {
	t.Parallel()

	lc := Regex{}.Line(1, "    return x + 1", lang.Get("python"))
	assert.Equal(t, model.Exit, lc.Category)
	assert.Equal(t, "+n", lc.Symbol.String())
}

func TestClassificationIsDeterministic(t *testing.T) {
	t.Parallel()

	l := lang.Get("go")
	a := (&Parallel{Workers: 7}).Lines(corpus, l)
	for range 5 {
		assert.Equal(t, a, (&Parallel{Workers: 7}).Lines(corpus, l))
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"", BackendRegex},
		{"regex", BackendRegex},
		{"parallel", BackendParallel},
		{"ast", BackendAST},
	}
	for _, tt := range tests {
		b, err := New(tt.name, Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Name())
	}

	_, err := New("gpu", Options{})
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   []string
	}{
		{"", nil},
		{"\n", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\n", []string{"a", ""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.source), "%q", tt.source)
	}
}

func TestCoverage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Coverage(0, 0))
	assert.Equal(t, 100, Coverage(3, 3))
	assert.Equal(t, 67, Coverage(2, 3))
	assert.Equal(t, 33, Coverage(1, 3))
	assert.Equal(t, 0, Coverage(0, 5))
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(Regex{}, zerolog.Nop())

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		md := a.Analyze("empty.py", "", "")
		assert.Equal(t, 0, md.TotalLines)
		assert.Equal(t, 0, md.Coverage)
		assert.Equal(t, "python", md.Language)
	})

	t.Run("counts sum to total", func(t *testing.T) {
		t.Parallel()
		source := strings.Join(corpus, "\n")
		md := a.Analyze("x.go", source, "")
		assert.Equal(t, "go", md.Language)
		assert.Equal(t, BackendRegex, md.Backend)

		sum := 0
		for _, c := range model.Categories {
			n, ok := md.Counts[c]
			assert.True(t, ok, "count for %s", c)
			sum += n
		}
		assert.Equal(t, md.TotalLines, sum)
		assert.Equal(t, md.TotalLines-md.Counts[model.Default], md.ClassifiedLines)
		assert.GreaterOrEqual(t, md.Coverage, 0)
		assert.LessOrEqual(t, md.Coverage, 100)
	})

	t.Run("fingerprint follows source", func(t *testing.T) {
		t.Parallel()
		x := a.Analyze("", "x = 1\n", "python")
		y := a.Analyze("", "x = 1\n", "python")
		z := a.Analyze("", "x = 2\n", "python")
		assert.Equal(t, x.Fingerprint, y.Fingerprint)
		assert.NotEqual(t, x.Fingerprint, z.Fingerprint)
	})
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	source := "import os\nx = 1\n"
	md := NewAnalyzer(Regex{}, zerolog.Nop()).Analyze("", source, "python")

	assert.Equal(t, "  n: import os\n +0: x = 1\n", Annotate(md, source, false))
	assert.Equal(t, "  n:   1  import os\n +0:   2  x = 1\n", Annotate(md, source, true))
	assert.Equal(t, "", Annotate(&model.DocumentMetadata{}, "", false))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	l := lang.Get("python")
	r := Compare(Regex{}, &Parallel{}, corpus, l)
	assert.Equal(t, len(corpus), r.Agree)
	assert.InDelta(t, 100.0, r.Agreement, 1e-9)
	assert.Empty(t, r.Disagreements)

	r = Compare(Regex{}, fixed(model.Default), []string{"import os", "x"}, l)
	assert.Equal(t, 1, r.Agree)
	assert.InDelta(t, 50.0, r.Agreement, 1e-9)
	require.Len(t, r.Disagreements, 1)
	assert.Equal(t, Disagreement{Line: 1, Text: "import os", A: model.Import, B: model.Default}, r.Disagreements[0])
	assert.Equal(t, 0, r.CoverageB)

	r = Compare(Regex{}, &Parallel{}, nil, l)
	assert.InDelta(t, 100.0, r.Agreement, 1e-9)
}

func TestASTFallsBackWithoutGrammar(t *testing.T) {
	t.Parallel()

	l := lang.Get("yaml")
	require.Nil(t, l.Grammar())
	lines := []string{"# c", "name: x"}
	assert.Equal(t, Regex{}.Lines(lines, l), (&AST{}).Lines(lines, l))
	assert.Equal(t, fixed(model.Loop).Lines(lines, l), (&AST{Fallback: fixed(model.Loop)}).Lines(lines, l))
}

func TestASTLine(t *testing.T) {
	t.Parallel()

	lc := (&AST{}).Line(7, "import os", lang.Get("python"))
	assert.Equal(t, model.LineClassification{Line: 7, Symbol: model.Import.Symbol(), Category: model.Import}, lc)
}

// TestASTIsContextSensitive pins down that a document's lines are read in
// context while Line parses its text alone.
func TestASTIsContextSensitive(t *testing.T) {
	t.Parallel()

	l := lang.Get("python")
	lines := []string{`x = """`, "import os", `"""`}
	b := &AST{}

	inside := b.Lines(lines, l)[1]
	alone := b.Line(2, lines[1], l)
	assert.Equal(t, model.Import, alone.Category)
	assert.NotEqual(t, model.Import, inside.Category)
	assert.Equal(t, b.Lines(lines[1:2], l)[0].Category, alone.Category)

	// the pattern backends give the same answer either way
	for _, pb := range []Backend{Regex{}, &Parallel{}} {
		assert.Equal(t, pb.Line(2, lines[1], l), pb.Lines(lines, l)[1], pb.Name())
	}
}

// fixed classifies every line as one category.
type fixed model.Category

func (f fixed) Name() string { return "fixed" }

func (f fixed) Line(n int, _ string, _ *lang.Language) model.LineClassification {
	return model.Classify(n, model.Category(f))
}

func (f fixed) Lines(lines []string, l *lang.Language) []model.LineClassification {
	out := make([]model.LineClassification, len(lines))
	for i, text := range lines {
		out[i] = f.Line(i+1, text, l)
	}
	return out
}
