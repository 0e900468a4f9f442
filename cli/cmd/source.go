package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/makec/lang"
	"github.com/ardnew/makec/log"
)

// Source selects the makefile a command reads.
type Source struct {
	File string `default:"Makefile" help:"Read FILE as the makefile ('-' for stdin)." placeholder:"FILE" short:"f"`
}

// name is the file name used in diagnostics.
func (s Source) name() string {
	if s.File == stdinSource {
		return "<stdin>"
	}

	return s.File
}

func (s Source) read(ctx context.Context) (string, error) {
	var (
		buf []byte
		err error
	)

	if s.File == stdinSource {
		buf, err = io.ReadAll(stdinFrom(ctx))
	} else {
		buf, err = os.ReadFile(s.File)
	}

	if err != nil {
		return "", ErrReadFile.Wrap(err).With(slog.String("file", s.name()))
	}

	log.TraceContext(ctx, "read makefile",
		slog.String("file", s.name()),
		slog.Int("bytes", len(buf)))

	return string(buf), nil
}

// compile reads and compiles the makefile.
func (s Source) compile(ctx context.Context) (*lang.Result, error) {
	src, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	res, err := lang.Compile(ctx, src,
		lang.WithLogger(log.With(slog.String("file", s.name()))))
	if err != nil {
		return nil, s.diagnose(src, err)
	}

	log.DebugContext(ctx, "compiled makefile",
		slog.String("file", s.name()),
		slog.Int("var_count", res.Env.Len()),
		slog.Int("rule_count", len(res.Lowered)))

	return res, nil
}

// lex reads the makefile and runs only the lexer.
func (s Source) lex(ctx context.Context) ([]lang.Token, string, error) {
	src, err := s.read(ctx)
	if err != nil {
		return nil, "", err
	}

	tokens, err := lang.Lex(src)
	if err != nil {
		return nil, src, s.diagnose(src, err)
	}

	return tokens, src, nil
}

func (s Source) diagnose(src string, err error) *Diagnostic {
	return &Diagnostic{File: s.name(), Source: src, Err: err}
}
