package lang

import (
	"slices"
	"strings"
)

// FragmentKind discriminates the variants of [Fragment].
type FragmentKind int

const (
	// FragmentText is resolved plain text.
	FragmentText FragmentKind = iota

	// FragmentAuto is an automatic variable awaiting its rule's bindings.
	FragmentAuto

	// FragmentHoles is the content of a quoted string: literal text with
	// embedded automatic variable holes.
	FragmentHoles
)

// Fragment is one element of a recipe line after variable substitution.
//
//	FragmentText   Text
//	FragmentAuto   Auto
//	FragmentHoles  Parts, each a literal (KindWord) or hole (KindAutoVarRef)
type Fragment struct {
	Kind   FragmentKind
	Text   string
	Auto   Auto
	Parts  []Segment
	Spaced bool // separated from the previous fragment by whitespace
}

// SubstitutedRule is a [Rule] whose ordinary variable references have been
// replaced by their values. Automatic variables remain unbound.
type SubstitutedRule struct {
	Targets []string
	Prereqs []string
	Recipe  [][]Fragment
	Line    int
}

// LoweredRule is a fully resolved rule: every variable reference in it has
// been replaced by text.
type LoweredRule struct {
	Targets []string `json:"targets" yaml:"targets"`
	Prereqs []string `json:"prereqs" yaml:"prereqs"`
	Recipe  []string `json:"recipe"  yaml:"recipe"`
	Line    int      `json:"line"    yaml:"line"`
}

// String renders the rule in make syntax.
func (r LoweredRule) String() string {
	var sb strings.Builder

	sb.WriteString(strings.Join(r.Targets, " "))
	sb.WriteByte(':')

	if len(r.Prereqs) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(r.Prereqs, " "))
	}

	for _, line := range r.Recipe {
		sb.WriteString("\n\t")
		sb.WriteString(line)
	}

	return sb.String()
}

// Lower substitutes ordinary variables in rule from env and then binds its
// automatic variables.
func Lower(rule Rule, env *Env) LoweredRule {
	return BindAutoVars(Substitute(rule, env))
}

// Substitute replaces every ordinary variable reference in rule with its
// value from env.
//
// Each target and prerequisite token becomes its own entry; tokens are never
// joined. In recipe lines, automatic variable references are left in place
// and quoted strings keep their automatic variable segments as holes.
func Substitute(rule Rule, env *Env) SubstitutedRule {
	sub := SubstitutedRule{
		Targets: substituteNames(rule.Targets, env),
		Prereqs: substituteNames(rule.Prereqs, env),
		Recipe:  make([][]Fragment, len(rule.Recipe)),
		Line:    rule.Line,
	}

	for i, line := range rule.Recipe {
		frags := make([]Fragment, len(line))

		for j, tok := range line {
			frags[j] = substituteToken(tok, env)
		}

		sub.Recipe[i] = frags
	}

	return sub
}

func substituteNames(tokens []Token, env *Env) []string {
	names := make([]string, len(tokens))

	for i, tok := range tokens {
		names[i] = substituteText(tok, env)
	}

	return names
}

// substituteText resolves a Word or VarRef token.
func substituteText(tok Token, env *Env) string {
	if tok.Kind == KindVarRef {
		return env.Get(tok.Text)
	}

	return tok.Text
}

func substituteToken(tok Token, env *Env) Fragment {
	switch tok.Kind {
	case KindAutoVarRef:
		return Fragment{Kind: FragmentAuto, Auto: tok.Auto, Spaced: tok.Spaced}

	case KindQuotedString:
		return Fragment{
			Kind:   FragmentHoles,
			Parts:  substituteSegments(tok.Segments, env),
			Spaced: tok.Spaced,
		}

	case KindWord, KindVarRef, KindAssign, KindColon, KindIndent, KindLineEnd:
		return Fragment{
			Kind:   FragmentText,
			Text:   substituteText(tok, env),
			Spaced: tok.Spaced,
		}

	default:
		return Fragment{Kind: FragmentText, Spaced: tok.Spaced}
	}
}

// substituteSegments resolves the variable segments of a quoted string,
// merging them into the surrounding literal text.
func substituteSegments(segments []Segment, env *Env) []Segment {
	parts := make([]Segment, 0, len(segments))

	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, LiteralSegment(text.String()))
			text.Reset()
		}
	}

	for _, seg := range segments {
		switch seg.Kind {
		case KindAutoVarRef:
			flush()

			parts = append(parts, seg)

		case KindVarRef:
			text.WriteString(env.Get(seg.Text))

		default:
			text.WriteString(seg.Text)
		}
	}

	flush()

	return parts
}

// BindAutoVars replaces every automatic variable in rule with its binding
// and flattens each recipe line to a single string.
//
//	$@  the first target, or "" if there are none
//	$<  the first prerequisite, or "" if there are none
//	$^  the prerequisites without duplicates, in first-seen order, separated
//	    by single spaces
func BindAutoVars(rule SubstitutedRule) LoweredRule {
	b := bindAutos(rule.Targets, rule.Prereqs)

	lowered := LoweredRule{
		Targets: slices.Clone(rule.Targets),
		Prereqs: slices.Clone(rule.Prereqs),
		Recipe:  make([]string, len(rule.Recipe)),
		Line:    rule.Line,
	}

	for i, line := range rule.Recipe {
		lowered.Recipe[i] = b.flatten(line)
	}

	return lowered
}

// bindings holds the automatic variable values of one rule.
type bindings [3]string

func bindAutos(targets, prereqs []string) bindings {
	var b bindings

	if len(targets) > 0 {
		b[AutoTarget] = targets[0]
	}

	if len(prereqs) > 0 {
		b[AutoFirstPrereq] = prereqs[0]
	}

	uniq := make([]string, 0, len(prereqs))
	for _, p := range prereqs {
		if !slices.Contains(uniq, p) {
			uniq = append(uniq, p)
		}
	}

	b[AutoPrereqs] = strings.Join(uniq, " ")

	return b
}

func (b bindings) value(a Auto) string {
	if a < 0 || int(a) >= len(b) {
		return ""
	}

	return b[a]
}

func (b bindings) flatten(line []Fragment) string {
	var sb strings.Builder

	for i, frag := range line {
		if i > 0 && frag.Spaced {
			sb.WriteByte(' ')
		}

		switch frag.Kind {
		case FragmentText:
			sb.WriteString(frag.Text)

		case FragmentAuto:
			sb.WriteString(b.value(frag.Auto))

		case FragmentHoles:
			for _, part := range frag.Parts {
				if part.Kind == KindAutoVarRef {
					sb.WriteString(b.value(part.Auto))
				} else {
					sb.WriteString(part.Text)
				}
			}
		}
	}

	return sb.String()
}
