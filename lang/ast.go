package lang

import (
	"slices"
	"strings"
)

// VarDef is a top-level variable definition: Name = Value...
type VarDef struct {
	Name  Token   // KindWord
	Value []Token // KindWord or KindVarRef
	Line  int
}

// Rule is a build rule as parsed, before any variable is resolved.
type Rule struct {
	Targets []Token   // KindWord or KindVarRef
	Prereqs []Token   // KindWord or KindVarRef
	Recipe  [][]Token // one slice per recipe line
	Line    int       // line of the rule header
}

// String renders the definition back into source form.
func (d VarDef) String() string {
	var sb strings.Builder

	sb.WriteString(d.Name.Text)
	sb.WriteString(" =")

	if len(d.Value) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(joinSource(d.Value))
	}

	return sb.String()
}

// String renders the rule back into source form.
func (r Rule) String() string {
	var sb strings.Builder

	sb.WriteString(joinSource(r.Targets))
	sb.WriteByte(':')

	if len(r.Prereqs) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(joinSource(r.Prereqs))
	}

	for _, line := range r.Recipe {
		sb.WriteString("\n\t")
		sb.WriteString(joinSource(line))
	}

	return sb.String()
}

// joinSource renders tokens as source text, separating them with a space
// wherever the original source had whitespace.
func joinSource(tokens []Token) string {
	var sb strings.Builder

	for i, tok := range tokens {
		if i > 0 && tok.Spaced {
			sb.WriteByte(' ')
		}

		sb.WriteString(tok.Source())
	}

	return sb.String()
}

// cloneToken returns a copy of tok that shares no memory with the token
// sequence it came from.
func cloneToken(tok Token) Token {
	tok.Segments = slices.Clone(tok.Segments)

	return tok
}
