// Package filesystem watches local corpus sources for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.SourceWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher reports file changes under a set of corpus paths using fsnotify.
// A path may be a single file or a directory; directories are watched
// recursively, skipping hidden entries.
type Watcher struct {
	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a new filesystem watcher.
func New() *Watcher {
	return &Watcher{}
}

// targets records what a single Watch call is interested in.
type targets struct {
	files map[string]bool
	dirs  []string
}

func (t *targets) wants(path string) bool {
	if t.files[path] {
		return true
	}
	for _, dir := range t.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Watch starts watching paths. The returned channel is closed when ctx is
// cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan domain.Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths to watch", domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	tgt := &targets{files: make(map[string]bool)}
	for _, p := range paths {
		if err := addPath(fsw, tgt, p); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w.watchers = append(w.watchers, fsw)

	changes := make(chan domain.Change)
	go w.run(ctx, fsw, tgt, changes)
	return changes, nil
}

func addPath(fsw *fsnotify.Watcher, tgt *targets, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch path error: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch path error: %w", err)
	}

	if !info.IsDir() {
		// Editors often replace files by rename, so watch the parent.
		tgt.files[abs] = true
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
		return nil
	}

	tgt.dirs = append(tgt.dirs, abs)
	return addTree(fsw, abs)
}

// addTree adds root and every non-hidden directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, tgt *targets, out chan<- domain.Change) {
	defer close(out)
	defer w.release(fsw)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !tgt.wants(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(filepath.Base(event.Name)) {
				if err := addTree(fsw, event.Name); err != nil {
					logger.Warn("watcher: %v", err)
				}
				continue
			}
			change := handleFsEvent(event)
			if change == nil {
				continue
			}
			logger.Debug("watcher: %s %s", change.Type, change.Path)
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleFsEvent converts an fsnotify event to a change, or nil when the
// event is not interesting (directories, hidden files, chmod).
func handleFsEvent(event fsnotify.Event) *domain.Change {
	if isHidden(filepath.Base(event.Name)) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.Change{Type: domain.ChangeDeleted, Path: event.Name}
	case event.Has(fsnotify.Create):
		if isDir(event.Name) {
			return nil
		}
		return &domain.Change{Type: domain.ChangeCreated, Path: event.Name}
	case event.Has(fsnotify.Write):
		if isDir(event.Name) {
			return nil
		}
		return &domain.Change{Type: domain.ChangeUpdated, Path: event.Name}
	default:
		return nil
	}
}

// Close stops all watches. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fsw := range w.watchers {
		if err := fsw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.watchers = nil
	return errors.Join(errs...)
}

// release closes a single watch once its run loop exits.
func (w *Watcher) release(fsw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, cur := range w.watchers {
		if cur == fsw {
			w.watchers = append(w.watchers[:i], w.watchers[i+1:]...)
			break
		}
	}
	if err := fsw.Close(); err != nil {
		logger.Debug("watcher: close: %v", err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isHidden reports whether a file or directory name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
