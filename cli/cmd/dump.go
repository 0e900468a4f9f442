package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/makec/lang"
)

// Dump prints the resolved variables and lowered rules in a structured
// format.
type Dump struct {
	Source Source `embed:""`

	Format string `default:"native" enum:"${dumpFormats}" help:"Output format (${enum})."                                                       short:"o"`
	Indent int    `default:"2"                             help:"Indent width for json and yaml output."                                        short:"i"`
	Where  string `                                        help:"Keep only rules for which the boolean expression EXPR is true." placeholder:"EXPR" short:"w"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context, out io.Writer) error {
	var filter *lang.Filter

	if d.Where != "" {
		var err error

		filter, err = lang.CompileFilter(d.Where)
		if err != nil {
			return ErrFilter.Wrap(err)
		}
	}

	res, err := d.Source.compile(ctx)
	if err != nil {
		return err
	}

	doc, err := res.Document().Filter(filter)
	if err != nil {
		return ErrFilter.Wrap(err).With(slog.String("file", d.Source.name()))
	}

	if err := doc.FormatAs(ctx, out, d.Format, d.Indent); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", d.Format))
	}

	return nil
}
