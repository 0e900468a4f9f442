// Package watch reruns a function whenever a file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/makec/log"
)

// DefaultDebounce is how long a burst of file events must be quiet before
// the function runs again.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reruns a function each time a file is written.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger
}

// Option configures a Watcher.
type Option func(Watcher) Watcher

// WithDebounce sets the quiet period that ends a burst of events.
func WithDebounce(d time.Duration) Option {
	return func(w Watcher) Watcher {
		if d >= 0 {
			w.debounce = d
		}

		return w
	}
}

// WithLogger sets the logger that reports events and failed runs.
func WithLogger(logger log.Logger) Option {
	return func(w Watcher) Watcher {
		w.logger = logger

		return w
	}
}

// New returns a Watcher for the file at path.
func New(path string, opts ...Option) *Watcher {
	w := Watcher{path: path, debounce: DefaultDebounce}

	for _, opt := range opts {
		w = opt(w)
	}

	return &w
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Run calls fn once, then again after every change to the file, until ctx
// is done. An error from fn is logged and does not stop the watch.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a new file into place keep triggering runs.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return ErrWatch.Wrap(err).With(slog.String("file", w.path))
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err).With(slog.String("file", w.path))
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return ErrWatch.Wrap(err).With(slog.String("file", w.path))
	}

	w.logger.DebugContext(ctx, "watching", slog.String("file", abs))

	w.call(ctx, fn)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			w.logger.TraceContext(ctx, "file event",
				slog.String("file", ev.Name),
				slog.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			w.call(ctx, fn)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			return ErrEvent.Wrap(err).With(slog.String("file", w.path))
		}
	}
}

func (w *Watcher) call(ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		w.logger.WarnContext(ctx, "run failed",
			slog.String("file", w.path),
			slog.Any("error", err))
	}
}
