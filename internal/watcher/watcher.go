// Package watcher triggers rename passes when new video files land in a
// directory. Events are collected until the directory has been quiet for
// the settle delay, then handed to the Handler as one batch. Batches never
// overlap: the next one is not delivered until the handler returns.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const component = "watcher"

type EventType string

const (
	EventCreate EventType = "create"
	EventWrite  EventType = "write"
)

type FileEvent struct {
	Type EventType
	Path string
}

// Handler receives settled batches of events.
type Handler interface {
	HandleBatch(ctx context.Context, events []FileEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, events []FileEvent) error

func (f HandlerFunc) HandleBatch(ctx context.Context, events []FileEvent) error {
	return f(ctx, events)
}

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	handler   Handler
	settle    time.Duration
	filter    func(path string) bool
	logger    *logging.Logger
}

type Option func(*Watcher)

// WithSettle sets how long the directory must stay quiet before a batch
// is delivered.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithFilter limits which paths produce events.
func WithFilter(filter func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = filter
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func NewWatcher(handler Handler, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		handler:   handler,
		settle:    2 * time.Second,
		filter:    func(string) bool { return true },
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds dir to the watch list. Subdirectories are not watched.
func (w *Watcher) Watch(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("unable to watch %s: %w", dir, err)
	}
	w.logger.Info(component, "Watching", logging.F("dir", dir))
	return nil
}

// Run delivers batches until ctx is done or the handler fails. A handler
// error stops the watcher and is returned.
func (w *Watcher) Run(ctx context.Context) error {
	var pending []FileEvent
	seen := make(map[string]bool)

	// Reset discards any stale tick (Go 1.23 timer semantics), so the
	// timer can be re-armed on every event without draining.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			fe, ok := w.translate(event)
			if !ok {
				continue
			}
			if !seen[fe.Path] {
				seen[fe.Path] = true
				pending = append(pending, fe)
			}
			timer.Reset(w.settle)

		case <-timer.C:
			batch := pending
			pending = nil
			seen = make(map[string]bool)

			w.logger.Debug(component, "Directory settled", logging.F("events", len(batch)))
			if err := w.handler.HandleBatch(ctx, batch); err != nil {
				return err
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(component, "Watcher error", err)
		}
	}
}

func (w *Watcher) translate(event fsnotify.Event) (FileEvent, bool) {
	var t EventType
	switch {
	case event.Has(fsnotify.Create):
		t = EventCreate
	case event.Has(fsnotify.Write):
		t = EventWrite
	default:
		return FileEvent{}, false
	}

	path := filepath.Clean(event.Name)
	if !w.filter(path) {
		return FileEvent{}, false
	}
	return FileEvent{Type: t, Path: path}, true
}

func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
