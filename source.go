package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// stdinName selects standard input as a source.
const stdinName = "-"

// document is one loaded source.
type document struct {
	Name   string
	Source string
}

// path returns the name used for language detection, empty for stdin.
func (d document) path() string {
	if d.Name == stdinName {
		return ""
	}
	return d.Name
}

// load reads a source from a path, a URL understood by afs (file://, s3://,
// gs://, mem://) or standard input.
func (a *app) load(ctx context.Context, name string) (document, error) {
	if name == stdinName {
		data, err := io.ReadAll(io.LimitReader(a.stdin, a.cfg.MaxFileSize+1))
		if err != nil {
			return document{}, fmt.Errorf("reading stdin: %w", err)
		}
		return a.document(name, data)
	}

	location := name
	if !strings.Contains(name, "://") {
		abs, err := filepath.Abs(name)
		if err != nil {
			return document{}, fmt.Errorf("resolving %s: %w", name, err)
		}
		location = abs
	}
	data, err := a.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return document{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return a.document(name, data)
}

func (a *app) document(name string, data []byte) (document, error) {
	if int64(len(data)) > a.cfg.MaxFileSize {
		return document{}, fmt.Errorf("%s: larger than max_file_size (%d bytes)", name, a.cfg.MaxFileSize)
	}
	return document{Name: name, Source: string(data)}, nil
}

// loadArg loads the single optional source argument, stdin when absent.
func (a *app) loadArg(ctx context.Context, args []string) (document, error) {
	name := stdinName
	if len(args) > 0 {
		name = args[0]
	}
	return a.load(ctx, name)
}

// languageOf resolves the language of a loaded document.
func (a *app) languageOf(d document) *lang.Language {
	return lang.DetectFile(d.path(), d.Source, a.cfg.Language)
}

// analyze classifies a loaded document with the configured backend.
func (a *app) analyze(d document) *model.DocumentMetadata {
	return a.analyzer.Analyze(d.path(), d.Source, a.cfg.Language)
}
