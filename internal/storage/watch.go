package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// FileWatcher reports changes to a single file. The parent directory is
// watched so atomic replace-by-rename writes are seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	changes  chan struct{}
	logger   *slog.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// WatchFile starts watching path. The directory must exist.
func WatchFile(path string, logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	fileWatcher := &FileWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		changes: make(chan struct{}, 1),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	fileWatcher.wg.Add(1)
	go fileWatcher.watchLoop()
	return fileWatcher, nil
}

// Changes delivers a value after the file was written, created, replaced or
// removed. Bursts are coalesced.
func (fileWatcher *FileWatcher) Changes() <-chan struct{} {
	return fileWatcher.changes
}

// Close stops watching. It is safe to call more than once.
func (fileWatcher *FileWatcher) Close() error {
	var err error
	fileWatcher.stopOnce.Do(func() {
		close(fileWatcher.stopCh)
		err = fileWatcher.watcher.Close()
		fileWatcher.wg.Wait()
	})
	return err
}

func (fileWatcher *FileWatcher) watchLoop() {
	defer fileWatcher.wg.Done()

	debounceTimer := time.NewTimer(watchDebounce)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	defer debounceTimer.Stop()

	for {
		select {
		case <-fileWatcher.stopCh:
			return

		case event, ok := <-fileWatcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fileWatcher.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			debounceTimer.Reset(watchDebounce)

		case <-debounceTimer.C:
			select {
			case fileWatcher.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fileWatcher.watcher.Errors:
			if !ok {
				return
			}
			fileWatcher.logger.Warn("file watcher error", "path", fileWatcher.path, "error", err)
		}
	}
}
