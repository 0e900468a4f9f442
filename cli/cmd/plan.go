package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/makec/log"
)

// Plan prints the lowered rules for the requested targets.
type Plan struct {
	Source Source `embed:""`

	Jobs    int      `default:"1"          help:"Number of jobs. Accepted for compatibility with make and otherwise ignored." short:"t"`
	Targets []string `arg:"" optional:"" help:"Targets to plan. The first rule is planned when none are given."`
}

// Run executes the plan command.
func (p *Plan) Run(ctx context.Context, out io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if p.Jobs != 1 {
		log.DebugContext(ctx, "ignoring job count", slog.Int("jobs", p.Jobs))
	}

	res, err := p.Source.compile(ctx)
	if err != nil {
		return err
	}

	rules, err := res.Select(p.Targets...)
	if err != nil {
		return ErrSelect.Wrap(err).With(slog.String("file", p.Source.name()))
	}

	for i, rule := range rules {
		sep := ""
		if i > 0 {
			sep = "\n"
		}

		if _, err := fmt.Fprintf(out, "%s%s\n", sep, rule); err != nil {
			return ErrWrite.Wrap(err)
		}
	}

	return nil
}
