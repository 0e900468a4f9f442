package lang

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a lowered rule.
//
// The expression sees these names:
//
//	target   string             first target, or ""
//	targets  []string
//	prereqs  []string
//	recipe   []string           one flattened command per line
//	line     int                source line of the rule header
//	vars     map[string]string  the resolved environment
//
// For example: `"all" in targets`, `len(prereqs) > 2`, or
// `any(recipe, {# contains "gcc"})`.
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles source into a [Filter]. The expression must yield a
// boolean.
func CompileFilter(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(filterEnv(LoweredRule{}, nil)), expr.AsBool())
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the source of the expression.
func (f *Filter) String() string { return f.source }

// Match reports whether rule satisfies the filter. A nil Filter matches
// every rule.
func (f *Filter) Match(rule LoweredRule, env *Env) (bool, error) {
	if f == nil {
		return true, nil
	}

	result, err := vm.Run(f.program, filterEnv(rule, env))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).
			With(slog.String("source", f.source), slog.Int("line", rule.Line))
	}

	ok, _ := result.(bool)

	return ok, nil
}

// Filter returns a copy of d keeping only the rules that match f.
func (d Document) Filter(f *Filter) (Document, error) {
	if f == nil {
		return d, nil
	}

	env := &Env{vars: d.Vars}
	kept := make([]LoweredRule, 0, len(d.Rules))

	for _, rule := range d.Rules {
		ok, err := f.Match(rule, env)
		if err != nil {
			return Document{}, err
		}

		if ok {
			kept = append(kept, rule)
		}
	}

	return Document{Vars: d.Vars, Rules: kept}, nil
}

func filterEnv(rule LoweredRule, env *Env) map[string]any {
	target := ""
	if len(rule.Targets) > 0 {
		target = rule.Targets[0]
	}

	return map[string]any{
		"target":  target,
		"targets": nonNil(rule.Targets),
		"prereqs": nonNil(rule.Prereqs),
		"recipe":  nonNil(rule.Recipe),
		"line":    rule.Line,
		"vars":    env.Map(),
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}
