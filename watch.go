package wirescape

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// ConfigWatcher reloads a config file whenever it is written. It watches the
// file's directory so editors that replace the file on save are seen too.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     *slog.Logger
}

// NewConfigWatcher starts watching path.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &ConfigWatcher{path: abs, watcher: w, log: logger}, nil
}

// Run delivers every successfully reloaded config to onLoad until ctx is
// done or the watcher is closed. Invalid files are logged and skipped; the
// previous config stays in effect.
func (w *ConfigWatcher) Run(ctx context.Context, onLoad func(Config)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.log.Warn("config reload failed", "path", w.path, "err", err)
				continue
			}
			w.log.Info("config reloaded", "path", w.path)
			onLoad(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("config watcher error", "err", err)
		}
	}
}

// Close stops the watcher; a running Run returns.
func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}
