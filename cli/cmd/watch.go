package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ardnew/makec/log"
	"github.com/ardnew/makec/watch"
)

// Watch compiles the makefile and recompiles it every time it is written,
// logging the outcome of each compilation.
type Watch struct {
	Source Source `embed:""`

	Debounce time.Duration `default:"100ms" help:"Quiet period after a change before recompiling."`
	Print    bool          `                help:"Print the lowered rules after each successful compilation." negatable:""`
}

// Run executes the watch command. It returns when ctx is canceled.
func (w *Watch) Run(ctx context.Context, out io.Writer, stderr Stderr) error {
	if w.Source.File == stdinSource {
		return ErrWatch.With(slog.String("reason", "cannot watch stdin"))
	}

	watcher := watch.New(w.Source.File,
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(log.Default()))

	err := watcher.Run(ctx, func(ctx context.Context) error {
		return w.once(ctx, out, stderr)
	})
	if err != nil {
		return ErrWatch.Wrap(err).With(slog.String("file", w.Source.File))
	}

	return nil
}

func (w *Watch) once(ctx context.Context, out io.Writer, stderr Stderr) error {
	res, err := w.Source.compile(ctx)
	if err != nil {
		var diag *Diagnostic
		if errors.As(err, &diag) {
			_ = diag.Render(stderr)
		}

		return err
	}

	log.InfoContext(ctx, "compiled",
		slog.String("file", w.Source.name()),
		slog.Int("var_count", res.Env.Len()),
		slog.Int("rule_count", len(res.Lowered)))

	if !w.Print {
		return nil
	}

	return res.Document().Format(ctx, out)
}
