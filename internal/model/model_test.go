package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSymbolCodes(t *testing.T) {
	t.Parallel()

	require.Len(t, Symbols, SymbolCount)
	for i, s := range Symbols {
		assert.Equal(t, uint8(i), s.Code())
		assert.True(t, s.Valid())

		got, ok := SymbolFromCode(s.Code())
		assert.True(t, ok)
		assert.Equal(t, s, got)

		parsed, ok := ParseSymbol(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	_, ok := SymbolFromCode(SymbolCount)
	assert.False(t, ok)
	_, ok = ParseSymbol("+4")
	assert.False(t, ok)
	assert.Equal(t, "Symbol(12)", Symbol(12).String())
}

func TestSymbolCore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, One, PlusTwo.Core())
	assert.Equal(t, MinusOne, PlusThree.Core())
	for _, s := range Symbols[:CoreSymbols] {
		assert.Equal(t, s, s.Core())
		assert.Less(t, int(s.Core()), CoreSymbols)
	}
}

func TestCategorySymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     string
	}{
		{Declaration, "+1"},
		{Logic, "1"},
		{IO, "-1"},
		{Output, "+3"},
		{Assignment, "+0"},
		{Neutral, "0"},
		{Comment, "-0"},
		{Decorator, "-0"},
		{Import, "n"},
		{Loop, "+2"},
		{Exit, "+n"},
		{Default, "-n"},
	}
	require.Len(t, tests, len(Categories))
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.Symbol().String(), "category %s", tt.category)
		assert.True(t, tt.category.Valid())
	}

	assert.False(t, Category("weird").Valid())
	assert.Equal(t, MinusN, Category("weird").Symbol())
}

func TestSymbolText(t *testing.T) {
	t.Parallel()

	lc := Classify(3, Output)
	data, err := json.Marshal(lc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"line":3,"symbol":"+3","category":"output"}`, string(data))

	var back LineClassification
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, lc, back)

	for _, c := range Categories {
		out, err := yaml.Marshal(Classify(1, c))
		require.NoError(t, err)
		var got LineClassification
		require.NoError(t, yaml.Unmarshal(out, &got), string(out))
		assert.Equal(t, c.Symbol(), got.Symbol)
	}

	_, err = json.Marshal(Symbol(15))
	assert.Error(t, err)
	assert.Error(t, json.Unmarshal([]byte(`"?"`), &back.Symbol))
}
