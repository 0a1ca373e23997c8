package source

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of events from editors and atomic writes.
const DefaultDebounce = 200 * time.Millisecond

var ErrWatcherStarted = errors.New("watcher already started")

// Watcher reports changes of dataset files in a DirSource directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(domain.Language)

	mu      sync.Mutex
	started bool
	fsw     *fsnotify.Watcher
	timers  map[domain.LanguageCode]*time.Timer
}

// NewWatcher creates a watcher over dir. onChange is called once per
// debounced burst of writes to a language's dataset file.
func NewWatcher(dir string, debounce time.Duration, onChange func(domain.Language)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		timers:   make(map[domain.LanguageCode]*time.Timer),
	}
}

// Start begins watching until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrWatcherStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.started = true

	go w.loop(ctx, fsw.Events, fsw.Errors)
	return nil
}

// Stop releases the underlying fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	for code, t := range w.timers {
		t.Stop()
		delete(w.timers, code)
	}
	w.fsw.Close()
	w.fsw = nil
	w.started = false
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			lang, ok := domain.LanguageForFile(filepath.Base(event.Name))
			if !ok {
				continue
			}
			w.trigger(lang)
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Get().Warn("Dataset watcher error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

func (w *Watcher) trigger(lang domain.Language) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[lang.Code]; ok {
		t.Stop()
	}
	w.timers[lang.Code] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, lang.Code)
		w.mu.Unlock()
		logger.Get().Info("Dataset file changed", zap.String("language", string(lang.Code)))
		w.onChange(lang)
	})
}
