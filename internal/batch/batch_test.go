package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

func TestPackUnpack(t *testing.T) {
	t.Parallel()

	syms := append([]model.Symbol{}, model.Symbols...)
	syms = append(syms, model.MinusN, model.PlusThree)

	packed := Pack(syms)
	require.Len(t, packed, PackedWords(len(syms)))
	assert.Equal(t, uint32(0x76543210), packed[0])

	got, err := Unpack(packed, len(syms))
	require.NoError(t, err)
	assert.Equal(t, syms, got)
}

func TestPackedWords(t *testing.T) {
	t.Parallel()

	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {8, 1}, {9, 2}, {17, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PackedWords(tt.n), "PackedWords(%d)", tt.n)
	}
}

func TestUnpackErrors(t *testing.T) {
	t.Parallel()

	_, err := Unpack([]uint32{0}, 9)
	assert.Error(t, err)

	_, err = Unpack([]uint32{0}, -1)
	assert.Error(t, err)

	_, err = Unpack([]uint32{0xF0}, 2)
	assert.ErrorContains(t, err, "invalid code 15 at line 2")
}

func TestHistogramFoldsExtendedSymbols(t *testing.T) {
	t.Parallel()

	h := Histogram([]model.Symbol{model.PlusTwo, model.One, model.PlusThree, model.N})
	assert.Equal(t, uint32(2), h[model.One])
	assert.Equal(t, uint32(1), h[model.MinusOne])
	assert.Equal(t, uint32(1), h[model.N])

	var total uint32
	for _, c := range h {
		total += c
	}
	assert.Equal(t, uint32(4), total)
}

func TestSegment(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 40)
	seg := Segment([]string{"ab", "", long, "abcd"}, 8)

	assert.Equal(t, 4, seg.Len())
	assert.Equal(t, 8, seg.Stride())
	assert.Equal(t, "ab", string(seg.Line(0)))
	assert.Empty(t, seg.Line(1))
	assert.Equal(t, long, string(seg.Line(2)))
	assert.Equal(t, "abcd", string(seg.Line(3)))

	seg = Segment([]string{"ab", "abc"}, 0)
	assert.Equal(t, 3, seg.Stride())
}

var pythonLines = []string{
	"import os",
	"",
	"x = 1",
	"for i in range(x):",
	"    print(i)",
	"    return i",
	"something odd ?",
	"class Foo:",
	"    def bar(self):",
	"        pass",
}

func TestKernelRun(t *testing.T) {
	t.Parallel()

	k := NewKernel(lang.Get("python"))
	seg := Segment(pythonLines, 0)

	for _, workers := range []int{0, 1, 3, len(pythonLines) + 5} {
		res := k.Run(seg, workers)
		assert.Equal(t, "python", res.Language)
		assert.Equal(t, len(pythonLines), res.Lines)

		syms := res.Symbols()
		require.Len(t, syms, len(pythonLines))
		assert.Equal(t, model.N, syms[0])
		assert.Equal(t, model.PlusZero, syms[2])
		assert.Equal(t, model.PlusTwo, syms[3])
		assert.Equal(t, model.PlusThree, syms[4])
		assert.Equal(t, model.PlusN, syms[5])
		assert.Equal(t, model.MinusN, syms[6])
		assert.Equal(t, model.PlusOne, syms[7])

		for i, text := range pythonLines {
			want := k.Classify(i+1, []byte(text))
			assert.Equal(t, want.Symbol, syms[i], "line %d workers %d", i+1, workers)
		}
		assert.Equal(t, Histogram(syms), res.Histogram)

		lines := k.Classifications(res)
		assert.Equal(t, 1, lines[0].Line)
		assert.Equal(t, model.Import, lines[0].Category)
		assert.Equal(t, model.Default, lines[6].Category)
	}
}

func TestKernelRunEmpty(t *testing.T) {
	t.Parallel()

	res := NewKernel(lang.Get("go")).Run(Segment(nil, 0), 4)
	assert.Zero(t, res.Lines)
	assert.Empty(t, res.Packed)
	assert.Empty(t, res.Symbols())
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	res := NewKernel(lang.Get("python")).Run(Segment(pythonLines, 0), 2)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Language, got.Language)
	assert.Equal(t, res.Lines, got.Lines)
	assert.Equal(t, res.Packed, got.Packed)
	assert.Equal(t, res.Histogram, got.Histogram)
	assert.Equal(t, res.Symbols(), got.Symbols())
}

func TestDecodeRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("not msgpack"))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Result{Language: "python", Lines: 1, Packed: []uint32{0xC}}))
	_, err = Decode(&buf)
	assert.ErrorContains(t, err, "invalid code 12")
}

func TestKernelLongLine(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("a ", 1<<19)
	lines := []string{"int main() {", huge, huge + "= 1;", "}"}

	for _, name := range []string{"c", "python"} {
		l := lang.Get(name)
		k := NewKernel(l)
		res := k.Run(Segment(lines, 0), 2)
		syms := res.Symbols()
		require.Len(t, syms, len(lines))

		for i, text := range lines {
			want := model.MinusN
			for _, r := range l.Compiled() {
				if r.Regexp.MatchString(text) {
					want = r.Symbol
					break
				}
			}
			assert.Equal(t, want, syms[i], "%s line %d", name, i+1)
		}
	}
}
