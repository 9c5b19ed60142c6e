package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// DefaultDebounce coalesces bursts of filesystem events into one notification
const DefaultDebounce = 500 * time.Millisecond

// Watch emits data-changed when files under the settings root change on
// disk. It watches the root, server, profile and backup directories, picks
// up directories created later, and returns once ctx is done. Watching needs
// the OS filesystem; paths are used as given.
func (b *Backend) Watch(ctx context.Context, customRoot string, debounce time.Duration) error {
	logger := logging.GetLogger("backend.watch")

	root, err := b.Root(customRoot)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range b.watchDirs(root) {
		if err := watcher.Add(dir); err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("Cannot watch directory")
		}
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, b.emitChanged)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	logger.Debug().Str("root", root).Dur("debounce", debounce).Msg("Watching settings")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) && b.isDir(event.Name) {
				for _, dir := range b.watchDirs(event.Name) {
					_ = watcher.Add(dir)
				}
			}
			logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("Filesystem event")
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// watchDirs returns dir and its subdirectories down to the backups level
func (b *Backend) watchDirs(dir string) []string {
	dirs := []string{}
	if !b.isDir(dir) {
		return dirs
	}
	_ = afero.Walk(b.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr == nil && depth(rel) > 3 {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	return dirs
}

func depth(rel string) int {
	if rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
