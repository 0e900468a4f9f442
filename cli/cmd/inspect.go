package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/makec/lang"
)

// Tokens prints the token stream of the makefile, one source line per row.
type Tokens struct {
	Source Source `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context, out io.Writer) error {
	tokens, _, err := t.Source.lex(ctx)
	if err != nil {
		return err
	}

	if err := lang.PrintTokens(out, tokens); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// AST prints variable definitions and rules as parsed, before any
// substitution.
type AST struct {
	Source Source `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context, out io.Writer) error {
	tokens, src, err := a.Source.lex(ctx)
	if err != nil {
		return err
	}

	defs, rules, err := lang.Parse(tokens)
	if err != nil {
		return a.Source.diagnose(src, err)
	}

	if err := lang.PrintAST(out, defs, rules); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// Vars prints the resolved variables in sorted order.
type Vars struct {
	Source Source `embed:""`
}

// Run executes the vars command.
func (v *Vars) Run(ctx context.Context, out io.Writer) error {
	res, err := v.Source.compile(ctx)
	if err != nil {
		return err
	}

	for name, value := range res.Env.All() {
		if _, err := fmt.Fprintf(out, "%s = %s\n", name, value); err != nil {
			return ErrWrite.Wrap(err)
		}
	}

	return nil
}
