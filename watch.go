package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/phobologic/qprefix/internal/classify"
)

func (a *app) watchCommand() *cobra.Command {
	var numbered bool
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-annotate a file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], numbered)
		},
	}
	cmd.Flags().BoolVarP(&numbered, "numbers", "n", false, "include line numbers")
	return cmd
}

// watch prints the annotated file, then again after each write, until ctx
// is done.
func (a *app) watch(ctx context.Context, name string, numbered bool) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", name, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", name, err)
	}
	if err := a.render(ctx, name, numbered); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !changed(ev, path) {
				continue
			}
			if err := a.render(ctx, name, numbered); err != nil {
				a.log.Warn().Err(err).Str("path", name).Msg("re-annotating failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// changed reports whether ev rewrote the file at path.
func changed(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (a *app) render(ctx context.Context, name string, numbered bool) error {
	d, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	md := a.analyze(d)
	_, err = fmt.Fprintf(a.stdout, "== %s (%s, %d%% classified)\n%s",
		name, md.Language, md.Coverage, classify.Annotate(md, d.Source, numbered))
	return err
}
