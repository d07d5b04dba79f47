// Package watch rebuilds the book whenever the source tree changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bookit/internal/logfields"
)

// debounceDelay coalesces bursts of filesystem events into one rebuild.
const debounceDelay = 300 * time.Millisecond

// Rebuilder runs one build.
type Rebuilder func(ctx context.Context) error

// Run watches srcDir recursively and calls rebuild after each debounced batch
// of changes, until ctx is cancelled. Rebuild failures are logged and
// watching continues.
func Run(ctx context.Context, srcDir string, rebuild Rebuilder) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirsRecursive(watcher, srcDir); err != nil {
		return err
	}

	rebuildReq, trigger := setupDebouncer()
	startWorker(ctx, rebuild, rebuildReq)

	slog.Info("watching source tree", logfields.Path(srcDir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if st, statErr := os.Stat(event.Name); statErr == nil && st.IsDir() {
					_ = addDirsRecursive(watcher, event.Name)
				}
			}
			trigger()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", logfields.Error(werr))
		}
	}
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// setupDebouncer creates the rebuild channel and a trigger that arms a reset
// timer on every event.
func setupDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startWorker processes rebuild requests one at a time; requests arriving
// while a build runs coalesce into a single follow-up build.
func startWorker(ctx context.Context, rebuild Rebuilder, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("change detected, rebuilding book")
				if err := rebuild(ctx); err != nil {
					slog.Error("rebuild failed", logfields.Error(err))
				}

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}
