package board

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"welfared/internal/board/interfaces"
	"welfared/internal/providers"
	"welfared/internal/structures"
)

const eventBuffer = 256

// FileWatcher observes the input directory and emits each new file path
// on a buffered channel. One pipeline worker consumes the channel, which
// keeps roster mutations serialized. The filesystem can fire several
// events for one logical file; downstream treats a vanished path as a
// silent no-op.
type FileWatcher struct {
	dir     string
	events  chan string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewFileWatcher(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.WatcherInterface {
	return &FileWatcher{
		dir:     conf.Watch.InputDir,
		events:  make(chan string, eventBuffer),
		logger:  logger,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// Start begins watching. Files already present in the directory are
// emitted first so a backlog accumulated while the daemon was down is
// not lost.
func (fw *FileWatcher) Start() error {
	if err := os.MkdirAll(fw.dir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(fw.dir); err != nil {
		w.Close()
		return err
	}
	fw.watcher = w

	if err := fw.sweep(); err != nil {
		fw.logger.Warnf(providers.TypeWatcher, "Initial sweep failed: %s", err)
	}

	fw.wg.Add(1)
	go fw.loop()

	fw.logger.Infof(providers.TypeWatcher, "Watching %s for check-in files", fw.dir)
	return nil
}

func (fw *FileWatcher) sweep() error {
	entries, err := os.ReadDir(fw.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fw.emit(filepath.Join(fw.dir, entry.Name()))
	}
	return nil
}

func (fw *FileWatcher) loop() {
	defer fw.wg.Done()
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(ev.Name); err != nil || info.IsDir() {
				continue
			}
			fw.metrics.IncWatcherEvents()
			fw.emit(ev.Name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Errorf(providers.TypeWatcher, "Watcher error: %s", err)
		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) emit(path string) {
	select {
	case fw.events <- path:
	case <-fw.done:
	}
}

// Stop ends event production and closes the events channel. Paths
// already queued stay in the channel so the consumer can drain them.
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.done)
		if fw.watcher != nil {
			if err := fw.watcher.Close(); err != nil {
				fw.logger.Warnf(providers.TypeWatcher, "Watcher close: %s", err)
			}
		}
		fw.wg.Wait()
		close(fw.events)
	})
}

func (fw *FileWatcher) Events() <-chan string {
	return fw.events
}
