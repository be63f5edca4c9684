package motion

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/clockz"
)

// DefaultPresetDebounce coalesces bursts of file writes into one reload.
const DefaultPresetDebounce = 100 * time.Millisecond

// WatcherOption configures a PresetWatcher.
type WatcherOption func(*PresetWatcher)

// WithDebounce sets how long the watcher waits after the last write before
// reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *PresetWatcher) {
		w.debounce = d
	}
}

// WithWatcherClock sets the clock used for debouncing.
// Use this with clockz.FakeClock for deterministic tests.
func WithWatcherClock(clock clockz.Clock) WatcherOption {
	return func(w *PresetWatcher) {
		w.clock = clock
	}
}

// WithPresetsChange registers fn to run after every successful reload,
// including the initial load. fn runs on the watcher's goroutine.
func WithPresetsChange(fn func(*PresetLibrary)) WatcherOption {
	return func(w *PresetWatcher) {
		w.onChange = fn
	}
}

// PresetWatcher keeps a PresetLibrary in sync with a YAML file. A document
// that fails to load is reported through Err and leaves the previous
// library in place.
type PresetWatcher struct {
	path     string
	debounce time.Duration
	clock    clockz.Clock
	onChange func(*PresetLibrary)

	mu      sync.Mutex
	current *PresetLibrary
	lastErr error
	started bool
}

// NewPresetWatcher creates a watcher for the file at path. Call Start to
// load it.
func NewPresetWatcher(path string, opts ...WatcherOption) *PresetWatcher {
	w := &PresetWatcher{
		path:     path,
		debounce: DefaultPresetDebounce,
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start loads the file and then watches it until ctx is cancelled. If the
// initial load fails, Start returns the error but keeps watching for a
// valid version.
//
// Start can only be called once. Subsequent calls return an error.
func (w *PresetWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("preset watcher already started")
	}
	w.started = true
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch file %s: %w", w.path, err)
	}

	initialErr := w.reload()
	go w.watch(ctx, watcher)
	return initialErr
}

// Current returns the last successfully loaded library, or nil.
func (w *PresetWatcher) Current() *PresetLibrary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Err returns the error of the most recent load, or nil if it succeeded.
func (w *PresetWatcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// reload reads and loads the file once.
func (w *PresetWatcher) reload() error {
	data, err := os.ReadFile(w.path)
	if err == nil {
		var lib *PresetLibrary
		lib, err = LoadPresets(data)
		if err == nil {
			w.mu.Lock()
			w.current = lib
			w.lastErr = nil
			w.mu.Unlock()
			if w.onChange != nil {
				w.onChange(lib)
			}
			return nil
		}
	}
	err = fmt.Errorf("reload presets %s: %w", w.path, err)
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()
	return err
}

// watch reloads the file after writes, debounced.
func (w *PresetWatcher) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = true
			if timer == nil {
				timer = w.clock.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Continue watching despite errors

		case <-timerC:
			if pending {
				_ = w.reload() //nolint:errcheck // Errors stored in lastErr
				pending = false
			}
		}
	}
}
