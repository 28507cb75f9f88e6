package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/qprefix/internal/lang"
)

const pythonHeader = "# qprefix: {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3}"

func TestHeaderLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		want string
	}{
		{"python", pythonHeader},
		{"go", "// qprefix: {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3}"},
		{"html", "<!-- qprefix: {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3} -->"},
		{"sql", "-- qprefix: {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3}"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, headerLine(lang.Get(tt.lang)))
		})
	}
}

// TestApplyHeader verifies placement relative to shebang lines.
func TestApplyHeader(t *testing.T) {
	t.Parallel()
	py := lang.Get("python")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", pythonHeader + "\n"},
		{"plain", "import os\n", pythonHeader + "\nimport os\n"},
		{"shebang", "#!/usr/bin/env python3\nimport os\n", "#!/usr/bin/env python3\n" + pythonHeader + "\nimport os\n"},
		{"shebang only", "#!/usr/bin/env python3", "#!/usr/bin/env python3\n" + pythonHeader + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, changed := applyHeader(tt.content, py)
			assert.True(t, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestApplyHeaderIdempotent verifies that a second application is a no-op.
func TestApplyHeaderIdempotent(t *testing.T) {
	t.Parallel()
	sh := lang.Get("shell")

	first, changed := applyHeader("#!/bin/sh\necho hi\n", sh)
	require.True(t, changed, "first application should change the content")
	second, changed := applyHeader(first, sh)
	assert.False(t, changed, "second application should not change the content")
	assert.Equal(t, first, second)
}

// TestApplyHeaderLateTag verifies that only the first lines are searched.
func TestApplyHeaderLateTag(t *testing.T) {
	t.Parallel()
	content := strings.Repeat("x = 1\n", headerScan) + pythonHeader + "\n"
	_, changed := applyHeader(content, lang.Get("python"))
	assert.True(t, changed, "a tag after the first lines should not count as a header")
}

func TestRunHeaderPrints(t *testing.T) {
	t.Parallel()

	out, _, err := runStdin(t, "package main\n", "-l", "go", "header")
	require.NoError(t, err)
	assert.Equal(t, "// qprefix: {+1, 1, -1, +0, 0, -0, +n, n, -n, +2, +3}\npackage main\n", out)
}

// TestRunHeaderWrite verifies in-place rewriting keeps the file mode and is
// idempotent across runs.
func TestRunHeaderWrite(t *testing.T) {
	t.Parallel()
	path := writeTestFile(t, t.TempDir(), "run.sh", "#!/bin/sh\necho hi\n")
	require.NoError(t, os.Chmod(path, 0o755))

	_, stderr, err := runArgs(t, "header", "--write", path)
	require.NoError(t, err, "first run")
	assert.Contains(t, stderr, "wrote header to")
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, stderr, err = runArgs(t, "header", "-i", path)
	require.NoError(t, err, "second run")
	assert.Contains(t, stderr, "header already present")
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "header is not idempotent")
	assert.True(t, strings.HasPrefix(string(first), "#!/bin/sh\n# qprefix:"), "shebang not preserved:\n%s", first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestRunHeaderWriteNeedsFile(t *testing.T) {
	t.Parallel()

	_, _, err := runArgs(t, "header", "--write")
	assert.Error(t, err, "--write without files")
	_, _, err = runArgs(t, "header", "--write", "-")
	assert.Error(t, err, "--write on stdin")
}
