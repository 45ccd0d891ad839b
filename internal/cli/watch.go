package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"github.com/yildizm/burden/internal/logger"
)

// watch runs inv, then runs it again after every debounced change
// under the watched paths until ctx is cancelled. The last run's exit
// status is returned.
func (s *session) watch(ctx context.Context, inv invocation) error {
	watcher, err := newChangeWatcher(s.cfg.Cargo.WorkingDir, s.cfg.Watch.Paths, s.log.WithComponent("watch"))
	if err != nil {
		return err
	}
	defer watcher.close()

	lastCode := 0
	for {
		code, err := s.run(ctx, inv)
		if err != nil {
			if ctx.Err() != nil {
				return exitCodeError(lastCode, nil)
			}
			return err
		}
		lastCode = code
		s.log.Info("run complete", logger.F("run", s.tracker.Runs()), logger.F("code", code))

		fmt.Fprintf(s.stderr, "Watching %s for changes... (Ctrl+C to stop)\n", strings.Join(s.cfg.Watch.Paths, ", "))

		if err := watcher.wait(ctx, s.cfg.Watch.Debounce); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return exitCodeError(lastCode, nil)
			}
			return err
		}
	}
}

// changeWatcher reports source changes below a set of paths
type changeWatcher struct {
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

func newChangeWatcher(root string, paths []string, log *logger.Logger) (*changeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	cw := &changeWatcher{watcher: watcher, log: log}

	added := 0
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, p)
		}
		n, err := cw.addTree(full)
		if err != nil {
			log.Warn("cannot watch path", logger.F("path", full), logger.Err(err))
			continue
		}
		added += n
	}

	if added == 0 {
		cw.close()
		return nil, fmt.Errorf("none of the watch paths exist: %s", strings.Join(paths, ", "))
	}
	log.Debug("watching", logger.F("entries", added))
	return cw, nil
}

// addTree watches path and, for a directory, every directory below it
func (cw *changeWatcher) addTree(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		if err := cw.watcher.Add(path); err != nil {
			return 0, fmt.Errorf("failed to watch file: %w", err)
		}
		return 1, nil
	}

	added := 0
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := cw.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		added++
		return nil
	})
	return added, err
}

// skipDir reports directories that never hold sources
func skipDir(name string) bool {
	return name == "target" || strings.HasPrefix(name, ".")
}

// wait blocks until a change is followed by a quiet period
func (cw *changeWatcher) wait(ctx context.Context, quiet time.Duration) error {
	settled := make(chan struct{}, 1)
	trigger, cancel := debounce.New(quiet, func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-settled:
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !cw.relevant(event) {
				continue
			}
			cw.log.Debug("change detected", logger.F("path", event.Name), logger.F("op", event.Op.String()))
			trigger()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			cw.log.Error("watcher error", logger.Err(err))
		}
	}
}

// relevant filters out metadata-only events and starts watching new directories
func (cw *changeWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(filepath.Base(event.Name)) {
			if _, err := cw.addTree(event.Name); err != nil {
				cw.log.Warn("cannot watch new directory", logger.F("path", event.Name), logger.Err(err))
			}
		}
	}
	return true
}

func (cw *changeWatcher) close() {
	if err := cw.watcher.Close(); err != nil {
		cw.log.Warn("failed to close watcher", logger.Err(err))
	}
}
