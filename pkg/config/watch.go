package config

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrWatcherStarted is returned when Start is called twice.
var ErrWatcherStarted = errors.New("tuning watcher already started")

// WatchOption configures a TuningWatcher.
type WatchOption func(*TuningWatcher)

// WithDebounce sets the debounce window for change events.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *TuningWatcher) {
		w.debounce = d
	}
}

// WithOnReload sets the callback invoked with the freshly parsed tuning.
func WithOnReload(fn func(Tuning)) WatchOption {
	return func(w *TuningWatcher) {
		w.onReload = fn
	}
}

// WithOnError sets the callback invoked when a reload fails. The previous
// tuning stays in effect.
func WithOnError(fn func(error)) WatchOption {
	return func(w *TuningWatcher) {
		w.onError = fn
	}
}

// TuningWatcher watches the tuning file and hot-reloads it. The canvas keeps
// running on the last good tuning if an edit is malformed.
type TuningWatcher struct {
	path     string
	debounce time.Duration
	onReload func(Tuning)
	onError  func(error)

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	timer   *time.Timer
}

// NewTuningWatcher creates a watcher for the tuning file at path.
func NewTuningWatcher(path string, opts ...WatchOption) *TuningWatcher {
	w := &TuningWatcher{
		path:     path,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The watch directory is the file's parent so that
// atomic rename-in-place saves (SaveTuning, most editors) are observed.
func (w *TuningWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrWatcherStarted
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	go w.loop(ctx, fw)
	return nil
}

// Stop cancels the watch loop.
func (w *TuningWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *TuningWatcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()
	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// scheduleReload (re)arms the debounce timer.
func (w *TuningWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *TuningWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *TuningWatcher) reload() {
	t, err := LoadTuning(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onReload != nil {
		w.onReload(t)
	}
}

func (w *TuningWatcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
