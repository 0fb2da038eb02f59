package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Watcher reloads a config file when it changes on disk and hands every
// valid result to onChange. Invalid files are logged and ignored.
type Watcher struct {
	fs       afero.Fs
	path     string
	logger   *slog.Logger
	onChange func(*Config)
	done     chan struct{}
}

// NewWatcher creates a Watcher for path. fs must be backed by the real
// filesystem since change notification comes from fsnotify.
func NewWatcher(fs afero.Fs, path string, logger *slog.Logger, onChange func(*Config)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		fs:       fs,
		path:     filepath.Clean(path),
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// Start begins watching. The loop stops when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory rather than the file.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(w.done)
		defer watcher.Close()
		return w.run(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("config watcher stopped", "error", err)
	}))
	return nil
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := Load(w.fs, w.path)
	if err != nil {
		w.logger.WarnContext(ctx, "ignoring invalid config change", "path", w.path, "error", err)
		return
	}
	w.logger.InfoContext(ctx, "config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
