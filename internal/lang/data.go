package lang

import "github.com/phobologic/qprefix/internal/model"

func init() {
	register(&Language{
		Name:       "yaml",
		Aliases:    []string{"yml"},
		Extensions: []string{".yml", ".yaml"},
		Comment:    CommentStyle{Open: "#"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*#`},
			{model.Import, `^(---|\.\.\.)\s*$`},
			{model.Assignment, `^\s*("[^"]*"|'[^']*'|[\w.-]+)\s*:`},
			{model.Declaration, `^\s*-(\s|$)`},
		},
	})

	register(&Language{
		Name:       "toml",
		Extensions: []string{".toml"},
		Comment:    CommentStyle{Open: "#"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*#`},
			{model.Declaration, `^\s*\[`},
			{model.Assignment, `^\s*("[^"]*"|[\w.-]+)\s*=`},
			closerRule,
		},
	})

	register(&Language{
		Name:       "sql",
		Aliases:    []string{"psql", "mysql", "sqlite"},
		Extensions: []string{".sql"},
		Comment:    CommentStyle{Open: "--"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*(--|/\*|\*)`},
			{model.Import, `^\s*(USE|use|DATABASE|\\c|\\i)\b`},
			{model.Declaration, `^\s*(CREATE|ALTER|DROP|create|alter|drop)\b`},
			{model.IO, `^\s*(SELECT|INSERT|UPDATE|DELETE|COPY|select|insert|update|delete|copy)\b`},
			{model.Logic, `^\s*(WHERE|CASE|WHEN|IF|HAVING|where|case|when|if|having)\b`},
			{model.Logic, `^\s*(BEGIN|COMMIT|ROLLBACK|begin|commit|rollback)\b`},
			{model.Loop, `^\s*((INNER|LEFT|RIGHT|FULL|CROSS|inner|left|right|full|cross)\s+)?(JOIN|UNION|GROUP|LOOP|join|union|group|loop)\b`},
			{model.Assignment, `^\s*(SET|VALUES|set|values)\b`},
			{model.Exit, `^\s*(RETURN|RETURNS|return|returns)\b`},
			closerRule,
		},
	})

	register(&Language{
		Name:       "dockerfile",
		Aliases:    []string{"docker", "containerfile"},
		Extensions: []string{".dockerfile"},
		Filenames:  []string{"Dockerfile", "Containerfile"},
		Comment:    CommentStyle{Open: "#"},
		Rules: []Rule{
			blankRule,
			{model.Comment, `^\s*#`},
			{model.Import, `^\s*FROM\s`},
			{model.Assignment, `^\s*(ENV|ARG|LABEL)\s`},
			{model.Declaration, `^\s*(RUN|CMD|ENTRYPOINT|SHELL)\s`},
			{model.Declaration, `^\s*(WORKDIR|COPY|ADD|USER)\s`},
			{model.Output, `^\s*EXPOSE\s`},
			{model.IO, `^\s*(VOLUME|HEALTHCHECK)\s`},
			{model.Decorator, `^\s*(ONBUILD|STOPSIGNAL)\s`},
		},
	})
}
