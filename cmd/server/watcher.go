package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reqsink/reqsink/pkg/config"
)

// configWatcher reloads the config when its file changes on disk.
type configWatcher struct {
	cfg *config.Config

	watcher  *fsnotify.Watcher
	stopChan chan struct{}

	// Debouncing for reload
	reloadMu       sync.Mutex
	reloadTimer    *time.Timer
	reloadDebounce time.Duration
}

func newConfigWatcher(cfg *config.Config) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors replace files, which breaks
	// file-level watches.
	dir := filepath.Dir(cfg.App.Paths.ConfigFile)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &configWatcher{
		cfg:      cfg,
		watcher:  watcher,
		stopChan: make(chan struct{}),

		// Wait a second of quiet before reloading
		reloadDebounce: time.Second,
	}, nil
}

func (w *configWatcher) start() {
	go func() {
		for {
			select {
			case <-w.stopChan:
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handleEvent(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Watcher error", "error", err)
			}
		}
	}()
}

func (w *configWatcher) stop() {
	close(w.stopChan)
	_ = w.watcher.Close()
}

func (w *configWatcher) handleEvent(event fsnotify.Event) {
	if event.Name != w.cfg.App.Paths.ConfigFile {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.scheduleReload()
}

// scheduleReload debounces bursts of write events into one reload.
func (w *configWatcher) scheduleReload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if w.reloadTimer != nil {
		w.reloadTimer.Stop()
	}

	w.reloadTimer = time.AfterFunc(w.reloadDebounce, func() {
		slog.Info("Config file changed, reloading")
		w.cfg.Reload()
	})
}
