package lang

//go:generate go tool stringer --linecomment --type Kind,Auto --output token_string.go

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of [Token] and [Segment].
type Kind int

const (
	// KindWord is a run of word characters. Inside a quoted string it marks
	// a literal chunk.
	KindWord Kind = iota // Word

	// KindVarRef is an ordinary variable reference: $X or $(NAME).
	KindVarRef // VarRef

	// KindAutoVarRef is an automatic variable reference: $@, $< or $^.
	KindAutoVarRef // AutoVarRef

	// KindQuotedString is a double-quoted string with embedded references.
	KindQuotedString // QuotedString

	// KindAssign is "=" or ":=".
	KindAssign // Assign

	// KindColon separates rule targets from prerequisites.
	KindColon // Colon

	// KindIndent is a tab.
	KindIndent // Indent

	// KindLineEnd terminates a logical line.
	KindLineEnd // LineEnd
)

// Auto identifies an automatic variable. Its String is the source spelling.
type Auto int

const (
	AutoTarget      Auto = iota // $@
	AutoFirstPrereq             // $<
	AutoPrereqs                 // $^
)

// autoSigils maps the character following '$' to its automatic variable.
var autoSigils = map[byte]Auto{
	'@': AutoTarget,
	'<': AutoFirstPrereq,
	'^': AutoPrereqs,
}

// Segment is one element of a quoted string: a literal chunk ([KindWord]),
// a variable reference ([KindVarRef]), or an automatic variable reference
// ([KindAutoVarRef]).
type Segment struct {
	Kind Kind
	Text string
	Auto Auto
}

// LiteralSegment returns a literal chunk segment.
func LiteralSegment(text string) Segment {
	return Segment{Kind: KindWord, Text: text}
}

// VarSegment returns a variable reference segment.
func VarSegment(name string) Segment {
	return Segment{Kind: KindVarRef, Text: name}
}

// AutoSegment returns an automatic variable reference segment.
func AutoSegment(a Auto) Segment {
	return Segment{Kind: KindAutoVarRef, Auto: a}
}

// String returns a debug representation of the segment.
func (s Segment) String() string {
	switch s.Kind {
	case KindWord:
		return strconv.Quote(s.Text)

	case KindVarRef:
		return "$(" + s.Text + ")"

	case KindAutoVarRef:
		return s.Auto.String()

	default:
		return s.Kind.String()
	}
}

// Token is a lexical token. Kind selects which of the remaining payload
// fields are meaningful:
//
//	KindWord          Text
//	KindVarRef        Text (the variable name)
//	KindAutoVarRef    Auto
//	KindQuotedString  Segments
//	KindAssign        Text ("=" or ":=")
//	KindColon         Text (":")
//
// Every token records the 1-based line and column at which it began.
// Spaced reports whether whitespace separated the token from the previous
// token on the same logical line.
type Token struct {
	Kind     Kind
	Text     string
	Segments []Segment
	Auto     Auto
	Line     int
	Column   int
	Spaced   bool
}

// Word returns a word token.
func Word(text string) Token { return Token{Kind: KindWord, Text: text} }

// VarRef returns a variable reference token.
func VarRef(name string) Token { return Token{Kind: KindVarRef, Text: name} }

// AutoVarRef returns an automatic variable reference token.
func AutoVarRef(a Auto) Token { return Token{Kind: KindAutoVarRef, Auto: a} }

// QuotedString returns a quoted string token made of the given segments.
func QuotedString(segments ...Segment) Token {
	return Token{Kind: KindQuotedString, Segments: segments}
}

// At returns a copy of the token positioned at the given line and column.
func (t Token) At(line, column int) Token {
	t.Line, t.Column = line, column

	return t
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case KindWord:
		return "Word(" + strconv.Quote(t.Text) + ")"

	case KindVarRef:
		return "VarRef(" + t.Text + ")"

	case KindAutoVarRef:
		return "AutoVarRef(" + t.Auto.String() + ")"

	case KindQuotedString:
		part := make([]string, len(t.Segments))
		for i, seg := range t.Segments {
			part[i] = seg.String()
		}

		return "QuotedString[" + strings.Join(part, " ") + "]"

	default:
		return t.Kind.String()
	}
}

// Source returns the token rendered back as source text. Quoted strings are
// re-escaped.
func (t Token) Source() string {
	switch t.Kind {
	case KindWord:
		return t.Text

	case KindVarRef:
		return "$(" + t.Text + ")"

	case KindAutoVarRef:
		return t.Auto.String()

	case KindQuotedString:
		var sb strings.Builder

		sb.WriteByte('"')

		for _, seg := range t.Segments {
			switch seg.Kind {
			case KindWord:
				sb.WriteString(quoteEscaper.Replace(seg.Text))

			case KindVarRef:
				sb.WriteString("$(" + seg.Text + ")")

			case KindAutoVarRef:
				sb.WriteString(seg.Auto.String())
			}
		}

		sb.WriteByte('"')

		return sb.String()

	case KindAssign, KindColon:
		return t.Text

	case KindIndent:
		return "\t"

	case KindLineEnd:
		return "\n"

	default:
		return ""
	}
}

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"$", "$$",
)

// IsWord reports whether s is non-empty and lexes as a single word.
func IsWord(s string) bool {
	return s != "" && wordLen(s) == len(s)
}

// isWordChar reports whether c belongs to the word character set.
func isWordChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '_', '.', '%', '/', '-', ',', '@', '\'':
		return true
	}

	return false
}
