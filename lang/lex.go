package lang

import (
	"strings"
	"unicode/utf8"
)

// Lex converts source text into a sequence of tokens.
//
// Before each token, runs of spaces and '#' comments are skipped. Recognizers are then tried in a fixed priority order and the
// first match wins. A backslash immediately before a line end joins the
// next physical line onto the current logical line without emitting a
// token. Lex fails with a [*LexError] at the first position no recognizer
// accepts.
func Lex(src string) ([]Token, error) {
	l := &lexer{
		src:  src,
		line: 1,
		col:  1,
	}

	for {
		l.skipIgnored()

		if l.eof() {
			return l.tokens, nil
		}

		if l.continuation() {
			continue
		}

		err := l.next()
		if err != nil {
			return nil, err
		}
	}
}

// recognizer attempts to scan one token at the cursor. It reports false
// without consuming input when the token does not start here.
type recognizer func(l *lexer) (Token, bool, error)

// recognizers in priority order. Automatic variable references must be
// tried before ordinary ones since both start with '$'.
var recognizers = []recognizer{
	(*lexer).lexWord,
	(*lexer).lexAutoVarRef,
	(*lexer).lexVarRef,
	(*lexer).lexQuotedString,
	(*lexer).lexAssign,
	(*lexer).lexColon,
	(*lexer).lexIndent,
	(*lexer).lexLineEnd,
}

// lexer holds the lexer state.
type lexer struct {
	src    string
	tokens []Token
	pos    int
	line   int
	col    int
	spaced bool // whitespace skipped since the previous token
}

func (l *lexer) next() error {
	line, col, spaced := l.line, l.col, l.spaced

	for _, rec := range recognizers {
		tok, ok, err := rec(l)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		tok.Line, tok.Column = line, col
		tok.Spaced = spaced && tok.Kind != KindIndent && tok.Kind != KindLineEnd
		l.tokens = append(l.tokens, tok)

		if tok.Kind != KindLineEnd {
			l.spaced = false
		}

		return nil
	}

	return l.errorf("unrecognized character", l.peekRune())
}

// skipIgnored skips spaces and comments running to the end of the line.
// Tabs are never skipped.
func (l *lexer) skipIgnored() {
	for !l.eof() {
		switch l.src[l.pos] {
		case ' ':
			l.spaced = true
			l.advance(1)

		case '#':
			for !l.eof() && !l.atLineEnd() {
				l.advance(1)
			}

		default:
			return
		}
	}
}

// continuation consumes a backslash-newline pair.
func (l *lexer) continuation() bool {
	if l.src[l.pos] != '\\' {
		return false
	}

	n := lineEndWidth(l.src[l.pos+1:])
	if n == 0 {
		return false
	}

	l.pos += 1 + n
	l.line++
	l.col = 1
	l.spaced = true

	return true
}

func (l *lexer) lexWord() (Token, bool, error) {
	n := wordLen(l.src[l.pos:])
	if n == 0 {
		return Token{}, false, nil
	}

	text := l.src[l.pos : l.pos+n]
	l.advance(n)

	return Word(text), true, nil
}

func (l *lexer) lexAutoVarRef() (Token, bool, error) {
	seg, ok := l.scanAuto()
	if !ok {
		return Token{}, false, nil
	}

	return AutoVarRef(seg.Auto), true, nil
}

func (l *lexer) lexVarRef() (Token, bool, error) {
	return l.scanDollar()
}

// scanAuto recognizes $@, $< and $^.
func (l *lexer) scanAuto() (Segment, bool) {
	if l.pos+1 >= len(l.src) || l.src[l.pos] != '$' {
		return Segment{}, false
	}

	a, ok := autoSigils[l.src[l.pos+1]]
	if !ok {
		return Segment{}, false
	}

	l.advance(2)

	return AutoSegment(a), true
}

// scanDollar recognizes the ordinary '$' forms:
//
//	$X            single word character X
//	$(NAME)       NAME optionally padded with spaces, ')' required
//	$$            literal "$" word
//	$<space>      empty word, the space is consumed
//	$<line end>   literal "$" word, the line end is left in place
//	$<EOF>        literal "$" word
func (l *lexer) scanDollar() (Token, bool, error) {
	if l.src[l.pos] != '$' {
		return Token{}, false, nil
	}

	if l.pos+1 >= len(l.src) {
		l.advance(1)

		return Word("$"), true, nil
	}

	switch c := l.src[l.pos+1]; {
	case c == '(':
		return l.scanDelimited()

	case isWordChar(c):
		l.advance(2)

		return VarRef(string(c)), true, nil

	case c == '$':
		l.advance(2)

		return Word("$"), true, nil

	case c == ' ':
		l.advance(2)

		return Word(""), true, nil

	case lineEndWidth(l.src[l.pos+1:]) > 0:
		l.advance(1)

		return Word("$"), true, nil
	}

	return Token{}, false, nil
}

// scanDelimited scans $(NAME). Once the opening parenthesis is seen the
// reference must be well formed.
func (l *lexer) scanDelimited() (Token, bool, error) {
	i := l.pos + 2
	for i < len(l.src) && l.src[i] == ' ' {
		i++
	}

	n := wordLen(l.src[i:])
	if n == 0 {
		return Token{}, false, l.errorAt(i, "expected variable name", runeAt(l.src, i))
	}

	name := l.src[i : i+n]

	i += n
	for i < len(l.src) && l.src[i] == ' ' {
		i++
	}

	if i >= len(l.src) || l.src[i] != ')' {
		return Token{}, false, l.errorAt(
			i, "unterminated variable reference, expected )", runeAt(l.src, i),
		)
	}

	l.advance(i + 1 - l.pos)

	return VarRef(name), true, nil
}

// escapes lists the characters that may follow a backslash in a quoted
// string and what they stand for.
var escapes = map[byte]byte{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'#':  '#',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

func (l *lexer) lexQuotedString() (Token, bool, error) {
	if l.src[l.pos] != '"' {
		return Token{}, false, nil
	}

	start := l.pos
	segments := []Segment{}

	var chunk strings.Builder

	flush := func() {
		if chunk.Len() > 0 {
			segments = append(segments, LiteralSegment(chunk.String()))
			chunk.Reset()
		}
	}

	l.advance(1)

	for {
		if l.eof() {
			return Token{}, false, l.errorAt(start, "unterminated quoted string", '"')
		}

		if l.atLineEnd() {
			return Token{}, false, l.errorf("newline in quoted string", 0)
		}

		switch c := l.src[l.pos]; c {
		case '"':
			l.advance(1)
			flush()

			return QuotedString(segments...), true, nil

		case '\\':
			if l.pos+1 >= len(l.src) {
				return Token{}, false, l.errorAt(start, "unterminated quoted string", '"')
			}

			esc, ok := escapes[l.src[l.pos+1]]
			if !ok {
				return Token{}, false, l.errorAt(
					l.pos+1, "invalid escape sequence", runeAt(l.src, l.pos+1),
				)
			}

			chunk.WriteByte(esc)
			l.advance(2)

		case '$':
			// Automatic references are matched before ordinary ones here as
			// well, so "$@" is a hole bound per rule and never a reference
			// to a variable named "@".
			if seg, ok := l.scanAuto(); ok {
				flush()

				segments = append(segments, seg)

				continue
			}

			tok, ok, err := l.scanDollar()
			if err != nil {
				return Token{}, false, err
			}

			if !ok {
				return Token{}, false, l.errorAt(
					l.pos, "invalid reference in quoted string", runeAt(l.src, l.pos+1),
				)
			}

			if tok.Kind == KindWord {
				chunk.WriteString(tok.Text)

				continue
			}

			flush()

			segments = append(segments, VarSegment(tok.Text))

		default:
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			chunk.WriteString(l.src[l.pos : l.pos+size])
			l.advance(size)
		}
	}
}

func (l *lexer) lexAssign() (Token, bool, error) {
	for _, op := range []string{"=", ":="} {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.advance(len(op))

			return Token{Kind: KindAssign, Text: op}, true, nil
		}
	}

	return Token{}, false, nil
}

func (l *lexer) lexColon() (Token, bool, error) {
	if l.src[l.pos] != ':' {
		return Token{}, false, nil
	}

	l.advance(1)

	return Token{Kind: KindColon, Text: ":"}, true, nil
}

// lexIndent emits one Indent per tab, wherever the tab appears.
func (l *lexer) lexIndent() (Token, bool, error) {
	if l.src[l.pos] != '\t' {
		return Token{}, false, nil
	}

	l.advance(1)

	return Token{Kind: KindIndent}, true, nil
}

func (l *lexer) lexLineEnd() (Token, bool, error) {
	n := lineEndWidth(l.src[l.pos:])
	if n == 0 {
		return Token{}, false, nil
	}

	l.pos += n
	l.line++
	l.col = 1
	l.spaced = false

	return Token{Kind: KindLineEnd}, true, nil
}

// Helper methods

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) atLineEnd() bool {
	return lineEndWidth(l.src[l.pos:]) > 0
}

// advance moves the cursor n bytes forward on the current line.
func (l *lexer) advance(n int) {
	l.col += utf8.RuneCountInString(l.src[l.pos : l.pos+n])
	l.pos += n
}

func (l *lexer) peekRune() rune {
	return runeAt(l.src, l.pos)
}

func (l *lexer) errorf(reason string, char rune) *LexError {
	return &LexError{
		Line:   l.line,
		Column: l.col,
		Char:   char,
		Reason: reason,
	}
}

// errorAt reports an error at byte offset i on the current line.
func (l *lexer) errorAt(i int, reason string, char rune) *LexError {
	col := l.col
	if i >= l.pos {
		col += utf8.RuneCountInString(l.src[l.pos:min(i, len(l.src))])
	} else {
		col -= utf8.RuneCountInString(l.src[i:l.pos])
	}

	return &LexError{
		Line:   l.line,
		Column: col,
		Char:   char,
		Reason: reason,
	}
}

// Character classification

func wordLen(s string) int {
	n := 0
	for n < len(s) && isWordChar(s[n]) {
		n++
	}

	return n
}

// lineEndWidth returns the width of the line terminator at the start of s,
// or 0 if s does not begin with "\n" or "\r\n".
func lineEndWidth(s string) int {
	switch {
	case strings.HasPrefix(s, "\n"):
		return 1

	case strings.HasPrefix(s, "\r\n"):
		return 2

	default:
		return 0
	}
}

func runeAt(s string, i int) rune {
	if i >= len(s) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s[i:])

	return r
}
