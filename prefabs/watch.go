package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must be quiet before it is reported.
const DefaultSettle = 150 * time.Millisecond

var ErrNoWatchDirs = errors.New("prefabs: no directory to watch")

// Watcher collects edits to prefab and level files. A path is handed out by
// Drain once no further event for it arrived during the settle window, so an
// editor's save burst becomes a single reload.
type Watcher struct {
	fsw    *fsnotify.Watcher
	settle time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]time.Time
	errs    []error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWatcher watches every dir that exists. Missing dirs are skipped.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	added := 0
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		added++
	}
	if added == 0 {
		_ = fsw.Close()
		return nil, ErrNoWatchDirs
	}

	w := newWatcher(DefaultSettle, time.Now)
	w.fsw = fsw
	go w.run()
	return w, nil
}

func newWatcher(settle time.Duration, now func() time.Time) *Watcher {
	return &Watcher{
		settle:  settle,
		now:     now,
		pending: make(map[string]time.Time),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		if w.fsw != nil {
			err = w.fsw.Close()
			<-w.done
		}
	})
	return err
}

// Drain returns, sorted, the paths that have settled since the last call.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	var out []string
	for name, last := range w.pending {
		if now.Sub(last) >= w.settle {
			out = append(out, name)
			delete(w.pending, name)
		}
	}
	sort.Strings(out)
	return out
}

// Err returns and clears the errors reported by the file system watcher.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := errors.Join(w.errs...)
	w.errs = nil
	return err
}

func (w *Watcher) record(name string) {
	if !isWatchedFile(name) {
		return
	}
	w.mu.Lock()
	w.pending[name] = w.now()
	w.mu.Unlock()
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.record(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errs = append(w.errs, err)
			w.mu.Unlock()
		case <-w.stop:
			return
		}
	}
}

func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
