package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/makec/lang"
)

// Stderr receives diagnostics. It is bound separately from the io.Writer
// that receives command output.
type Stderr interface{ io.Writer }

// KongVars returns the kong variables referenced by the command tags.
func KongVars() kong.Vars {
	return kong.Vars{
		"dumpFormats": strings.Join(lang.Formats, ","),
	}
}

// stdinSource is the file name that selects standard input.
const stdinSource = "-"

type (
	contextKey struct{}
	stdinKey   struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithStdin returns a new context.Context whose commands read r when the
// makefile is named "-".
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}
