package lang

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// tokenStrings renders tokens without positions for comparison.
func tokenStrings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}

	return out
}

func TestLex_WordsAndWhitespace(t *testing.T) {
	inputs := []string{
		"alpha",
		"alpha beta gamma",
		"  leading and trailing  ",
		"one two three    four",
		"src/main.c lib-1.0,x @echo it's 50%",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, err := Lex(input)
			if err != nil {
				t.Fatalf("lex error: %v", err)
			}

			got := make([]string, 0, len(tokens))
			for _, tok := range tokens {
				if tok.Kind != KindWord {
					t.Fatalf("unexpected token %s", tok)
				}

				got = append(got, tok.Text)
			}

			if want := strings.Fields(input); !slices.Equal(got, want) {
				t.Errorf("words mismatch:\nwant: %q\ngot:  %q", want, got)
			}
		})
	}
}

func TestLex_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "variable definition",
			input: "CC = gcc",
			want:  []string{`Word("CC")`, "Assign", `Word("gcc")`},
		},
		{
			name:  "colon equals",
			input: "X := y",
			want:  []string{`Word("X")`, "Assign", `Word("y")`},
		},
		{
			name:  "rule header",
			input: "a b: x",
			want:  []string{`Word("a")`, `Word("b")`, "Colon", `Word("x")`},
		},
		{
			name:  "parenthesized reference",
			input: "$(NAME)",
			want:  []string{"VarRef(NAME)"},
		},
		{
			name:  "padded reference",
			input: "$(  NAME )",
			want:  []string{"VarRef(NAME)"},
		},
		{
			name:  "single character reference",
			input: "$X",
			want:  []string{"VarRef(X)"},
		},
		{
			name:  "automatic references",
			input: "$@ $< $^",
			want:  []string{"AutoVarRef($@)", "AutoVarRef($<)", "AutoVarRef($^)"},
		},
		{
			name:  "double dollar",
			input: "$$",
			want:  []string{`Word("$")`},
		},
		{
			name:  "dollar space",
			input: "$ x",
			want:  []string{`Word("")`, `Word("x")`},
		},
		{
			name:  "dollar at end of input",
			input: "a$",
			want:  []string{`Word("a")`, `Word("$")`},
		},
		{
			name:  "dollar before line end",
			input: "$\nb",
			want:  []string{`Word("$")`, "LineEnd", `Word("b")`},
		},
		{
			name:  "adjacent reference",
			input: "-I$(INC)",
			want:  []string{`Word("-I")`, "VarRef(INC)"},
		},
		{
			name:  "comment",
			input: "a # b c\nd",
			want:  []string{`Word("a")`, "LineEnd", `Word("d")`},
		},
		{
			name:  "comment only",
			input: "# nothing here",
			want:  []string{},
		},
		{
			name:  "crlf",
			input: "a\r\nb",
			want:  []string{`Word("a")`, "LineEnd", `Word("b")`},
		},
		{
			name:  "continuation",
			input: "a \\\nb",
			want:  []string{`Word("a")`, `Word("b")`},
		},
		{
			name:  "crlf continuation",
			input: "a\\\r\nb",
			want:  []string{`Word("a")`, `Word("b")`},
		},
		{
			name:  "leading tabs",
			input: "x:\n\t\techo",
			want: []string{
				`Word("x")`, "Colon", "LineEnd", "Indent", "Indent", `Word("echo")`,
			},
		},
		{
			name:  "tab between words",
			input: "a\tb",
			want:  []string{`Word("a")`, "Indent", `Word("b")`},
		},
		{
			name:  "tab before assignment",
			input: "x\t= y\n",
			want:  []string{`Word("x")`, "Indent", "Assign", `Word("y")`, "LineEnd"},
		},
		{
			name:  "quoted with reference",
			input: `"value=$(X)"`,
			want:  []string{`QuotedString["value=" $(X)]`},
		},
		{
			name:  "quoted escapes",
			input: `"a\tb\"c\#"`,
			want:  []string{`QuotedString["a\tb\"c#"]`},
		},
		{
			name:  "quoted automatic",
			input: `"$@.o $$"`,
			want:  []string{`QuotedString[$@ ".o $"]`},
		},
		{
			name:  "quoted literal chunks coalesce",
			input: `"a\nb$$c"`,
			want:  []string{`QuotedString["a\nb$c"]`},
		},
		{
			name:  "empty quoted",
			input: `""`,
			want:  []string{`QuotedString[]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("lex error: %v", err)
			}

			if got := tokenStrings(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("tokens mismatch:\nwant: %v\ngot:  %v", tt.want, got)
			}
		})
	}
}

func TestLex_QuotedSegments(t *testing.T) {
	tokens, err := Lex(`"value=$(X)"`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	if len(tokens) != 1 || tokens[0].Kind != KindQuotedString {
		t.Fatalf("expected one quoted string, got %v", tokenStrings(tokens))
	}

	want := []Segment{LiteralSegment("value="), VarSegment("X")}
	if !slices.Equal(tokens[0].Segments, want) {
		t.Errorf("segments mismatch:\nwant: %v\ngot:  %v", want, tokens[0].Segments)
	}
}

func TestLex_Positions(t *testing.T) {
	tokens, err := Lex("CC = gcc\n\t$(CC) -o $@")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	type pos struct {
		kind   Kind
		line   int
		column int
		spaced bool
	}

	want := []pos{
		{KindWord, 1, 1, false},
		{KindAssign, 1, 4, true},
		{KindWord, 1, 6, true},
		{KindLineEnd, 1, 9, false},
		{KindIndent, 2, 1, false},
		{KindVarRef, 2, 2, false},
		{KindWord, 2, 8, true},
		{KindAutoVarRef, 2, 11, true},
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), tokenStrings(tokens))
	}

	for i, tok := range tokens {
		got := pos{tok.Kind, tok.Line, tok.Column, tok.Spaced}
		if got != want[i] {
			t.Errorf("token %d (%s): want %+v, got %+v", i, tok, want[i], got)
		}
	}
}

func TestLex_ContinuationAdvancesLine(t *testing.T) {
	tokens, err := Lex("a \\\n  b\nc")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	lines := make([]int, len(tokens))
	for i, tok := range tokens {
		lines[i] = tok.Line
	}

	if want := []int{1, 2, 2, 3}; !slices.Equal(lines, want) {
		t.Errorf("lines mismatch: want %v, got %v (%v)", want, lines, tokenStrings(tokens))
	}

	if !tokens[1].Spaced {
		t.Error("token after continuation should be spaced")
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		char   rune
		reason string
	}{
		{
			name:   "newline in quoted string",
			input:  "\"abc\n\"",
			line:   1,
			column: 5,
			reason: "newline in quoted string",
		},
		{
			name:   "unterminated quoted string",
			input:  `x "abc`,
			line:   1,
			column: 3,
			char:   '"',
			reason: "unterminated quoted string",
		},
		{
			name:   "unterminated reference",
			input:  "$(X",
			line:   1,
			column: 4,
			reason: "unterminated variable reference, expected )",
		},
		{
			name:   "wrong closer",
			input:  "$(X}",
			line:   1,
			column: 4,
			char:   '}',
			reason: "unterminated variable reference, expected )",
		},
		{
			name:   "braced reference",
			input:  "x = ${Y}\n",
			line:   1,
			column: 5,
			char:   '$',
			reason: "unrecognized character",
		},
		{
			name:   "empty reference",
			input:  "$()",
			line:   1,
			column: 3,
			char:   ')',
			reason: "expected variable name",
		},
		{
			name:   "invalid escape",
			input:  `"\q"`,
			line:   1,
			column: 3,
			char:   'q',
			reason: "invalid escape sequence",
		},
		{
			name:   "invalid reference in quoted string",
			input:  `"$;"`,
			line:   1,
			column: 2,
			char:   ';',
			reason: "invalid reference in quoted string",
		},
		{
			name:   "unrecognized character",
			input:  "a\nb ; c",
			line:   2,
			column: 3,
			char:   ';',
			reason: "unrecognized character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}

			if !errors.Is(err, ErrLex) {
				t.Errorf("expected ErrLex, got %v", err)
			}

			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}

			if lexErr.Line != tt.line || lexErr.Column != tt.column {
				t.Errorf("position: want %d:%d, got %d:%d",
					tt.line, tt.column, lexErr.Line, lexErr.Column)
			}

			if lexErr.Char != tt.char {
				t.Errorf("char: want %q, got %q", tt.char, lexErr.Char)
			}

			if lexErr.Reason != tt.reason {
				t.Errorf("reason: want %q, got %q", tt.reason, lexErr.Reason)
			}
		})
	}
}

func TestToken_Source(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"word", Word("main.o"), "main.o"},
		{"var ref", VarRef("CC"), "$(CC)"},
		{"auto", AutoVarRef(AutoPrereqs), "$^"},
		{
			"quoted",
			QuotedString(LiteralSegment("a \"b\" $"), VarSegment("X"), AutoSegment(AutoTarget)),
			`"a \"b\" $$$(X)$@"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Source(); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsWord(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"RFC3339", true},
		{"log-level", true},
		{"build/%.o", true},
		{"", false},
		{"two words", false},
		{"15:04", false},
		{`"quoted"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsWord(tt.in); got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		in   fmt.Stringer
		want string
	}{
		{KindWord, "Word"},
		{KindQuotedString, "QuotedString"},
		{KindIndent, "Indent"},
		{KindLineEnd, "LineEnd"},
		{Kind(99), "Kind(99)"},
		{AutoTarget, "$@"},
		{AutoFirstPrereq, "$<"},
		{AutoPrereqs, "$^"},
		{Auto(7), "Auto(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
