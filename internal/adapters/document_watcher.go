package adapters

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/ports"
)

const defaultWatchDebounce = 200 * time.Millisecond

// DocumentWatcher reports writes to a single document file. Bursts of
// events are coalesced into one notification per debounce interval.
type DocumentWatcher struct {
	Path     string
	Debounce time.Duration

	events   chan string
	done     chan struct{}
	watcher  *fsnotify.Watcher
	started  bool
	stopOnce sync.Once
}

func NewDocumentWatcher(path string) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &DocumentWatcher{
		Path:     abs,
		Debounce: defaultWatchDebounce,
		events:   make(chan string, 1),
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start watches the parent directory so that editors replacing the file
// are still noticed.
func (w *DocumentWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

func (w *DocumentWatcher) Events() <-chan string {
	return w.events
}

// Stop closes the watcher and the events channel. It is safe to call more
// than once, and before Start.
func (w *DocumentWatcher) Stop() {
	w.stopOnce.Do(func() {
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.events)
	})
}

func (w *DocumentWatcher) loop() {
	defer close(w.done)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", w.Path).Msg("document watch error")
		}
	}
}

// emit drops the notification when one is already queued.
func (w *DocumentWatcher) emit() {
	select {
	case w.events <- w.Path:
	default:
	}
}

var _ ports.DocumentWatcherPort = (*DocumentWatcher)(nil)
