package lang

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Env is a resolved variable environment: every surviving definition's name
// mapped to its fully expanded text. An Env is immutable once returned by
// [Resolve] and safe for concurrent use.
type Env struct {
	vars map[string]string
}

// Lookup returns the value bound to name and whether name was defined.
func (e *Env) Lookup(name string) (string, bool) {
	if e == nil {
		return "", false
	}

	v, ok := e.vars[name]

	return v, ok
}

// Get returns the value bound to name, or the empty string if name is not
// defined. A nil Env has no definitions.
func (e *Env) Get(name string) string {
	v, _ := e.Lookup(name)

	return v
}

// Len returns the number of defined names.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}

	return len(e.vars)
}

// Names returns an iterator over the defined names in sorted order.
func (e *Env) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range e.sorted() {
			if !yield(name) {
				return
			}
		}
	}
}

// All returns an iterator over name/value pairs in sorted name order.
func (e *Env) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range e.sorted() {
			if !yield(name, e.vars[name]) {
				return
			}
		}
	}
}

// Map returns a copy of the environment as a map.
func (e *Env) Map() map[string]string {
	if e == nil {
		return map[string]string{}
	}

	return maps.Clone(e.vars)
}

func (e *Env) sorted() []string {
	if e == nil {
		return nil
	}

	return sortedKeys(e.vars)
}

// Resolve expands a list of variable definitions into an [Env].
//
// A later definition of a name replaces any earlier one. Each reference in a
// surviving definition's value is replaced by the expansion of the name it
// refers to; a name with no definition expands to the empty string. Names are
// expanded on demand by following references and each is expanded at most
// once. If expanding a name requires expanding itself, Resolve returns a
// [*CircularReferenceError].
func Resolve(defs []VarDef) (*Env, error) {
	r := &resolver{
		defs:  make(map[string]VarDef, len(defs)),
		state: make(map[string]resolveState, len(defs)),
		env:   &Env{vars: make(map[string]string, len(defs))},
	}

	order := make([]string, 0, len(defs))

	for _, def := range defs {
		name := def.Name.Text
		if _, seen := r.defs[name]; !seen {
			order = append(order, name)
		}

		r.defs[name] = def
	}

	for _, name := range order {
		if _, err := r.resolve(name); err != nil {
			return nil, err
		}
	}

	return r.env, nil
}

type resolveState int

const (
	unresolved resolveState = iota
	resolving
	resolved
)

type resolver struct {
	defs  map[string]VarDef
	state map[string]resolveState
	env   *Env
	stack []string // names currently being expanded, outermost first
}

func (r *resolver) resolve(name string) (string, error) {
	def, ok := r.defs[name]
	if !ok {
		return "", nil
	}

	switch r.state[name] {
	case resolved:
		return r.env.vars[name], nil

	case resolving:
		i := slices.Index(r.stack, name)
		chain := append(slices.Clone(r.stack[i:]), name)

		return "", &CircularReferenceError{
			Name:  name,
			Chain: chain,
			Line:  def.Line,
		}

	case unresolved:
	}

	r.state[name] = resolving
	r.stack = append(r.stack, name)

	var sb strings.Builder

	for i, tok := range def.Value {
		if i > 0 && tok.Spaced {
			sb.WriteByte(' ')
		}

		switch tok.Kind {
		case KindVarRef:
			v, err := r.resolve(tok.Text)
			if err != nil {
				return "", err
			}

			sb.WriteString(v)

		default:
			sb.WriteString(tok.Text)
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.state[name] = resolved
	r.env.vars[name] = sb.String()

	return r.env.vars[name], nil
}
