package lang

//go:generate go tool stringer --linecomment --type Stage --output compile_string.go

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/makec/log"
)

// Stage identifies a step of the compilation pipeline.
type Stage int

const (
	StageLex        Stage = iota // lex
	StageParse                   // parse
	StageResolve                 // resolve
	StageSubstitute              // substitute
	StageBind                    // bind
)

// Result holds every intermediate product of one compilation.
type Result struct {
	Tokens  []Token
	Defs    []VarDef
	Rules   []Rule
	Env     *Env
	Lowered []LoweredRule
}

// Option configures [Compile].
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger that receives trace records for each stage.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// CompileReader reads r to completion and compiles its contents.
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Compile(ctx, string(data), opts...)
}

// Compile runs src through every stage: lexing, parsing, environment
// resolution, variable substitution and automatic variable binding.
//
// The first failing stage ends compilation and its error is returned as is:
// a [*LexError], [*ParseError] or [*CircularReferenceError]. No partial
// result is returned with an error.
func Compile(ctx context.Context, src string, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger

	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	logger.TraceContext(ctx, "lex complete",
		slog.String("stage", StageLex.String()),
		slog.Int("token_count", len(tokens)))

	defs, rules, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	logger.TraceContext(ctx, "parse complete",
		slog.String("stage", StageParse.String()),
		slog.Int("def_count", len(defs)),
		slog.Int("rule_count", len(rules)))

	env, err := Resolve(defs)
	if err != nil {
		return nil, err
	}

	logger.TraceContext(ctx, "resolve complete",
		slog.String("stage", StageResolve.String()),
		slog.Int("var_count", env.Len()))

	subs := make([]SubstitutedRule, len(rules))
	for i, rule := range rules {
		subs[i] = Substitute(rule, env)
	}

	logger.TraceContext(ctx, "substitute complete",
		slog.String("stage", StageSubstitute.String()),
		slog.Int("rule_count", len(subs)))

	lowered := make([]LoweredRule, len(subs))
	for i, sub := range subs {
		lowered[i] = BindAutoVars(sub)
	}

	logger.TraceContext(ctx, "bind complete",
		slog.String("stage", StageBind.String()),
		slog.Int("rule_count", len(lowered)))

	return &Result{
		Tokens:  tokens,
		Defs:    defs,
		Rules:   rules,
		Env:     env,
		Lowered: lowered,
	}, nil
}
