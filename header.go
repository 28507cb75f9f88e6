package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// headerTag marks a source as already carrying the prefix header.
const headerTag = "qprefix:"

// headerScan is the number of leading lines searched for headerTag.
const headerScan = 5

func (a *app) headerCommand() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "header [file...]",
		Short: "Insert the quantum-prefix header comment",
		Long: `Insert a one-line comment listing the prefix symbols at the top of each
source, after the shebang line if there is one, using the language's comment
syntax. Sources that already carry the header are left unchanged, so running
the command twice is harmless.

Without --write the updated source is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if write {
					return fmt.Errorf("--write needs at least one file")
				}
				args = []string{stdinName}
			}
			for _, name := range args {
				if write && (name == stdinName || strings.Contains(name, "://")) {
					return fmt.Errorf("%s: --write needs a local file", name)
				}
				d, err := a.load(cmd.Context(), name)
				if err != nil {
					return err
				}
				updated, changed := applyHeader(d.Source, a.languageOf(d))
				if !write {
					if _, err := io.WriteString(a.stdout, updated); err != nil {
						return err
					}
					continue
				}
				if !changed {
					_, _ = fmt.Fprintf(a.stderr, "%s: header already present\n", name)
					continue
				}
				info, err := os.Stat(name)
				if err != nil {
					return err
				}
				if err := os.WriteFile(name, []byte(updated), info.Mode().Perm()); err != nil {
					return fmt.Errorf("writing %s: %w", name, err)
				}
				_, _ = fmt.Fprintf(a.stderr, "wrote header to %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "i", false, "rewrite the files in place")
	return cmd
}

// headerLine returns the header comment for l.
func headerLine(l *lang.Language) string {
	syms := make([]string, len(model.Symbols))
	for i, s := range model.Symbols {
		syms[i] = s.String()
	}
	return l.Comment.Wrap(headerTag + " {" + strings.Join(syms, ", ") + "}")
}

// applyHeader inserts the header into content, after a shebang line if
// present. The boolean is false when content already has a header within its
// first headerScan lines. It is a pure function for easy testing.
func applyHeader(content string, l *lang.Language) (string, bool) {
	if hasHeader(content) {
		return content, false
	}
	header := headerLine(l)

	if strings.HasPrefix(content, "#!") {
		nl := strings.IndexByte(content, '\n')
		if nl < 0 {
			return content + "\n" + header + "\n", true
		}
		return content[:nl+1] + header + "\n" + content[nl+1:], true
	}
	return header + "\n" + content, true
}

func hasHeader(content string) bool {
	lines := strings.SplitN(content, "\n", headerScan+1)
	for i := 0; i < len(lines) && i < headerScan; i++ {
		if strings.Contains(lines[i], headerTag) {
			return true
		}
	}
	return false
}
