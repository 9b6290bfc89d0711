// Package watch observes the plaintext working copy and triggers re-encryption
// whenever it changes.
//
// The watcher subscribes to the plaintext's parent directory and filters
// events down to the exact file: watching a directory and filtering by name
// is the reliable fsnotify mode, since some editors replace the file rather
// than writing it in place, which re-creates the watched inode.
//
// Save failures are never fatal here. A missed auto-save is recoverable (the
// working copy still holds the newest content and the final cleanup save will
// try again), whereas killing a live editing session over a transient backend
// failure would be strictly worse.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	logger "github.com/shroud-cli/shroud/internal/logging"
)

// Watcher triggers a save callback on every modification of one file.
type Watcher struct {
	path   string
	save   func(ctx context.Context) (bool, error)
	log    logger.Logger
	fsw    *fsnotify.Watcher
	wg     sync.WaitGroup
	saves  atomic.Int64
	misses atomic.Int64
}

// New starts watching path. Each Write or Create event for exactly that path
// invokes save on the watcher's goroutine; a save error is logged and counted
// but the watcher keeps running. A save that reports it did not run (the
// session is already sealing) counts as neither a save nor a miss.
func New(ctx context.Context, path string, save func(ctx context.Context) (bool, error), log logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path: path,
		save: save,
		log:  log,
		fsw:  fsw,
	}
	w.wg.Add(1)
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debugf("Change detected on %s (%s)", w.path, event.Op)
			ran, err := w.save(ctx)
			if err != nil {
				w.misses.Add(1)
				w.log.WarnfAlways("Automatic re-encryption failed: %v", err)
				continue
			}
			if ran {
				w.saves.Add(1)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WarnfAlways("Filesystem watcher error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

// Stop unsubscribes from filesystem events and joins the event goroutine.
// It must be called before the watched file's directory is removed.
func (w *Watcher) Stop() {
	w.fsw.Close()
	w.wg.Wait()
}

// Saves returns the number of successful auto-saves.
func (w *Watcher) Saves() int64 { return w.saves.Load() }

// Misses returns the number of failed auto-saves.
func (w *Watcher) Misses() int64 { return w.misses.Load() }
