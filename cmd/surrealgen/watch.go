package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/surrealgen/compiler/gen"
)

// debounce coalesces the burst of events an editor save produces.
const debounce = 100 * time.Millisecond

// watchPaths returns the files whose changes trigger a regeneration.
func watchPaths(flags *globalFlags, cfg *gen.Config) []string {
	paths := []string{flags.config}
	if cfg.Models.Schema != "" {
		paths = append(paths, cfg.Path(cfg.Models.Schema))
	}
	return paths
}

// watch calls action after every change of one of paths, until ctx is done.
// The parent directories are watched, so files may be created or replaced
// by rename. The notice for the user is printed to out.
func watch(ctx context.Context, out io.Writer, paths []string, logger *slog.Logger, action func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Info("watching for changes", "files", paths)
	fmt.Fprintln(out, styleInfo.Render("watching"), len(paths), "file(s), press Ctrl+C to stop")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			action()
		}
	}
}
