package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phobologic/qprefix/internal/model"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".go", "go"},
		{".js", "javascript"},
		{".TSX", "typescript"},
		{".h", "c"},
		{".ino", "arduino"},
		{".nu", "nushell"},
		{".unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ForExtension(tt.ext))
		})
	}
}

func TestForFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Dockerfile", "dockerfile"},
		{"dockerfile", "dockerfile"},
		{"Gemfile", "ruby"},
		{"main.rs", "rust"},
		{"build.dockerfile", "dockerfile"},
		{"README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ForFilename(tt.name))
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	want := []string{
		"arduino", "assembly", "c", "css", "dockerfile", "generic", "go", "html", "java",
		"javascript", "kotlin", "nushell", "python", "ruby", "rust", "shell", "sql",
		"swift", "toml", "typescript", "yaml", "zig",
	}
	for _, name := range want {
		l, ok := Languages[name]
		if !assert.True(t, ok, "%s not registered", name) {
			continue
		}
		assert.Len(t, l.Compiled(), len(l.Rules), name)
		assert.NotEmpty(t, l.Comment.Open, "%s: missing comment syntax", name)
	}
	assert.Len(t, Languages, len(want))
}

func TestGrammars(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"python", "go", "ruby", "javascript", "typescript", "rust", "c", "java", "shell"} {
		l := Languages[name]
		assert.NotNil(t, l.Grammar(), name)
		if p := l.NewParser(); assert.NotNil(t, p, name) {
			p.Close()
		}
	}
	assert.Nil(t, Languages["yaml"].NewParser(), "yaml has no grammar")
}

func TestDecoratorBeforeComment(t *testing.T) {
	t.Parallel()

	for name, l := range Languages {
		seenComment := false
		for _, r := range l.Rules {
			switch r.Category {
			case model.Comment:
				seenComment = true
			case model.Decorator:
				assert.False(t, seenComment, "%s: decorator rule %q follows a comment rule", name, r.Pattern)
			}
		}
	}
}

func TestBlankLinesAreNeutral(t *testing.T) {
	t.Parallel()

	for name, l := range Languages {
		first := l.Compiled()[0]
		assert.Equal(t, model.Neutral, first.Category, name)
		assert.True(t, first.Regexp.MatchString("   "), "%s: first rule should match blank lines", name)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"python", "python", true},
		{"PY", "python", true},
		{" golang ", "go", true},
		{"rs", "rust", true},
		{"bash", "shell", true},
		{"cobol", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		l, ok := Lookup(tt.name)
		if assert.Equal(t, tt.ok, ok, "Lookup(%q)", tt.name) && ok {
			assert.Equal(t, tt.want, l.Name, "Lookup(%q)", tt.name)
		}
	}

	assert.Equal(t, Fallback, Get("cobol").Name)
}

func TestCommentWrap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "# hi", Languages["python"].Comment.Wrap("hi"))
	assert.Equal(t, "<!-- hi -->", Languages["html"].Comment.Wrap("hi"))
}
