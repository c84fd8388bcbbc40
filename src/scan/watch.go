package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// Watch scans once, then scans again whenever a file under the root is
// written, created, removed or renamed, until ctx is done. report receives
// the outcome of every scan. Scans run on the calling goroutine, one at a
// time. Symlinked directories are scanned but not watched.
func (s *Scanner) Watch(ctx context.Context, report func(*Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := s.addWatches(watcher, s.Root); err != nil {
		return &DirectoryAccessError{Path: s.Root, Err: err}
	}
	s.logger().Info("watching patterns", "dir", s.Root)

	report(s.Scan(ctx))

	fire := make(chan struct{}, 1)
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := s.addWatches(watcher, event.Name); addErr != nil {
						s.logger().Warn("watch new directory", "dir", event.Name, "error", addErr)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			report(s.Scan(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger().Warn("watcher error", "error", err)
		}
	}
}

// addWatches registers dir and every non-excluded directory below it.
func (s *Scanner) addWatches(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.Root && s.isExcluded(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevant filters out events that cannot change a scan result.
func (s *Scanner) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if s.isExcluded(event.Name) {
		return false
	}
	if filepath.Ext(event.Name) == "."+s.Config.Extension {
		return true
	}
	// Directories come and go without an extension.
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
