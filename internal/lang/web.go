package lang

import "github.com/phobologic/qprefix/internal/model"

func init() {
	register(&Language{
		Name:       "html",
		Aliases:    []string{"htm", "xhtml", "svg"},
		Extensions: []string{".html", ".htm", ".xhtml", ".svg", ".vue"},
		Comment:    CommentStyle{Open: "<!--", Close: "-->"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*<!--`},
			{model.Import, `^\s*<(link|script|meta|base|!DOCTYPE|!doctype|style)\b`},
			{model.Declaration, `^\s*<(html|head|body|div|section|article|main|header|footer|nav|aside|table|ul|ol)\b`},
			{model.Declaration, `^\s*<(form|button|input|select|textarea)\b`},
			{model.Logic, `^\s*<(template|slot)\b`},
			{model.Output, `^\s*<(p|h[1-6]|span|a|li|td|th|strong|em|label|title|pre|code)\b`},
			{model.IO, `^\s*<(img|video|audio|iframe|source|canvas|object|embed)\b`},
			{model.Neutral, `^\s*</[\w-]+>\s*$`},
		},
	})

	register(&Language{
		Name:       "css",
		Aliases:    []string{"scss", "less"},
		Extensions: []string{".css", ".scss", ".less"},
		Comment:    CommentStyle{Open: "/*", Close: "*/"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*(/\*|\*|//)`},
			{model.Import, `^\s*@(import|charset|font-face|use|forward|namespace)\b`},
			{model.Logic, `^\s*@(media|supports|keyframes|container|layer|if|else)\b`},
			{model.Loop, `^\s*@(each|for|while)\b`},
			{model.Declaration, `^\s*@(mixin|function)\b`},
			{model.Decorator, `^\s*@include\b`},
			{model.Assignment, `^\s*(--|\$)[\w-]+\s*:`},
			{model.Declaration, `^\s*\.`},
			{model.Declaration, `^\s*[^{};]+\{\s*$`},
			{model.Assignment, `^\s*-?[\w-]+\s*:`},
			closerRule,
		},
	})
}
