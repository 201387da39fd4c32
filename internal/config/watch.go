package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit for a single save.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher reports changes to one plan file.
type FileWatcher struct {
	target   string
	watcher  *fsnotify.Watcher
	Debounce time.Duration
}

// NewFileWatcher starts watching filename. The parent directory is watched so that
// editors which replace the file on save are still noticed.
func NewFileWatcher(filename string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	target, err := filepath.Abs(filename)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filename, err)
	}
	return &FileWatcher{target: target, watcher: w, Debounce: DefaultDebounce}, nil
}

// Run calls onChange after each settled write to the file until ctx is cancelled.
// The watcher is closed when Run returns.
func (fw *FileWatcher) Run(ctx context.Context, onChange func()) error {
	defer fw.watcher.Close()

	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(fw.Debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", fw.target, err)
		}
	}
}
