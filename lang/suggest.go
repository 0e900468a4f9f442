package lang

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the number of alternatives offered for an unknown
// target.
const maxSuggestions = 3

// UnknownTargetError reports a requested target that no rule builds.
type UnknownTargetError struct {
	Name        string
	Suggestions []string // closest known targets, best first
}

// Error implements the error interface.
func (e *UnknownTargetError) Error() string {
	msg := ErrUnknownTarget.msg + " '" + e.Name + "'"

	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// Is matches [ErrUnknownTarget].
func (e *UnknownTargetError) Is(target error) bool {
	return target == ErrUnknownTarget
}

// LogValue implements slog.LogValuer.
func (e *UnknownTargetError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrUnknownTarget.msg),
		slog.String("target", e.Name),
		slog.Any("suggestions", e.Suggestions),
	)
}

// Targets returns every target named by a rule, without duplicates, in the
// order the rules define them.
func (r *Result) Targets() []string {
	names := make([]string, 0, len(r.Lowered))

	for _, rule := range r.Lowered {
		for _, t := range rule.Targets {
			if !slices.Contains(names, t) {
				names = append(names, t)
			}
		}
	}

	return names
}

// Select returns the lowered rules that build the named targets, in request
// order and without repeating a rule. With no names it returns the first
// rule, the default goal. A name no rule builds yields an
// [*UnknownTargetError].
func (r *Result) Select(names ...string) ([]LoweredRule, error) {
	if len(names) == 0 {
		if len(r.Lowered) == 0 {
			return []LoweredRule{}, nil
		}

		return r.Lowered[:1:1], nil
	}

	picked := make([]int, 0, len(names))

	for _, name := range names {
		i := slices.IndexFunc(r.Lowered, func(rule LoweredRule) bool {
			return slices.Contains(rule.Targets, name)
		})

		if i < 0 {
			return nil, &UnknownTargetError{
				Name:        name,
				Suggestions: r.Suggest(name),
			}
		}

		if !slices.Contains(picked, i) {
			picked = append(picked, i)
		}
	}

	rules := make([]LoweredRule, len(picked))
	for j, i := range picked {
		rules[j] = r.Lowered[i]
	}

	return rules, nil
}

// Suggest returns up to three known targets that fuzzily match name, best
// match first.
func (r *Result) Suggest(name string) []string {
	matches := fuzzy.Find(name, r.Targets())

	n := min(len(matches), maxSuggestions)
	suggestions := make([]string, n)

	for i := range n {
		suggestions[i] = matches[i].Str
	}

	return suggestions
}
