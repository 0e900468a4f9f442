package lang

import "slices"

// Parse consumes a token sequence and returns the variable definitions and
// rules it contains, in source order.
//
// Parsing is all-or-nothing: if any top-level construct is unrecognized, or
// tokens remain after the last recognized construct, Parse returns a
// [*ParseError] describing the token at which the furthest attempt failed.
func Parse(tokens []Token) ([]VarDef, []Rule, error) {
	p := &parser{tokens: tokens, fail: -1}

	defs := make([]VarDef, 0)
	rules := make([]Rule, 0)

	for {
		p.skipLineEnds()

		if p.eof() {
			break
		}

		if def, ok := p.parseVarDef(); ok {
			defs = append(defs, def)
			p.recover()

			continue
		}

		if rule, ok := p.parseRule(); ok {
			rules = append(rules, rule)
			p.recover()

			continue
		}

		break
	}

	if !p.eof() {
		return nil, nil, p.error()
	}

	return defs, rules, nil
}

// Expected token descriptions used in parse errors.
const (
	expectWord    = "word"
	expectVarRef  = "variable reference"
	expectColon   = "':'"
	expectAssign  = "'='"
	expectLineEnd = "end of line"
	expectRecipe  = "recipe item"
)

// parser holds a cursor into an owned token sequence. Productions report
// failure by returning false and leave the cursor where they found it.
type parser struct {
	tokens   []Token
	expected []string
	pos      int
	fail     int // furthest index at which a production failed
}

// parseVarDef parses: Word Assign (Word|VarRef)* (LineEnd|EOF).
func (p *parser) parseVarDef() (VarDef, bool) {
	start := p.pos

	if !p.at(start, KindWord) {
		p.miss(start, expectWord)

		return VarDef{}, false
	}

	if !p.at(start+1, KindAssign) {
		p.miss(start+1, expectAssign)

		return VarDef{}, false
	}

	def := VarDef{
		Name:  cloneToken(p.tokens[start]),
		Value: make([]Token, 0),
		Line:  p.tokens[start].Line,
	}

	p.pos = start + 2

	for !p.eof() && p.peek().Kind != KindLineEnd {
		tok := p.peek()

		switch tok.Kind {
		case KindWord, KindVarRef:
			def.Value = append(def.Value, cloneToken(tok))
			p.pos++

		default:
			p.miss(p.pos, expectWord, expectVarRef, expectLineEnd)
			p.pos = start

			return VarDef{}, false
		}
	}

	p.skipLineEnd()

	return def, true
}

// parseRule parses:
//
//	(Word|VarRef)+ Colon (Word|VarRef)* (LineEnd|EOF) RecipeLine*
func (p *parser) parseRule() (Rule, bool) {
	start := p.pos

	targets, ok := p.parseNames(KindColon, expectColon)
	if !ok || len(targets) == 0 {
		p.miss(p.pos, expectWord, expectVarRef)
		p.pos = start

		return Rule{}, false
	}

	p.pos++ // ':'

	prereqs, ok := p.parseNames(KindLineEnd, expectLineEnd)
	if !ok && !p.eof() {
		p.pos = start

		return Rule{}, false
	}

	p.skipLineEnd()

	rule := Rule{
		Targets: targets,
		Prereqs: prereqs,
		Recipe:  make([][]Token, 0),
		Line:    p.tokens[start].Line,
	}

	for {
		line, ok, more := p.parseRecipeLine()
		if !ok {
			p.pos = start

			return Rule{}, false
		}

		if !more {
			break
		}

		if len(line) > 0 {
			rule.Recipe = append(rule.Recipe, line)
		}
	}

	return rule, true
}

// parseNames collects Word and VarRef tokens up to a token of kind stop,
// which is left unconsumed. It reports false if any other token intervenes
// or the input ends first.
func (p *parser) parseNames(stop Kind, expect string) ([]Token, bool) {
	names := make([]Token, 0)

	for !p.eof() {
		tok := p.peek()

		switch tok.Kind {
		case KindWord, KindVarRef:
			names = append(names, cloneToken(tok))
			p.pos++

		case stop:
			return names, true

		default:
			p.miss(p.pos, expectWord, expectVarRef, expect)

			return names, false
		}
	}

	p.miss(p.pos, expectWord, expectVarRef, expect)

	return names, false
}

// parseRecipeLine parses one recipe line: Indent+ Item* (LineEnd|EOF).
// Blank lines before it are skipped. It reports more=false, without
// consuming the line, when the next non-blank line is not indented.
// Any token other than an item or the line end fails the line, and with it
// the rule.
func (p *parser) parseRecipeLine() (line []Token, ok, more bool) {
	p.skipLineEnds()

	if p.eof() || p.peek().Kind != KindIndent {
		return nil, true, false
	}

	for !p.eof() && p.peek().Kind == KindIndent {
		p.pos++
	}

	line = make([]Token, 0)

	for !p.eof() && p.peek().Kind != KindLineEnd {
		tok := p.peek()

		switch tok.Kind {
		case KindWord, KindVarRef, KindAutoVarRef, KindQuotedString:
			line = append(line, cloneToken(tok))

		default:
			p.miss(p.pos, expectRecipe, expectLineEnd)

			return nil, false, false
		}

		p.pos++
	}

	p.skipLineEnd()

	return line, true, true
}

// Helper methods

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) at(i int, kind Kind) bool {
	return i < len(p.tokens) && p.tokens[i].Kind == kind
}

func (p *parser) skipLineEnd() {
	if !p.eof() && p.peek().Kind == KindLineEnd {
		p.pos++
	}
}

func (p *parser) skipLineEnds() {
	for !p.eof() && p.peek().Kind == KindLineEnd {
		p.pos++
	}
}

// miss records that a production failed at index i expecting one of
// expected. Only the furthest failure is kept.
func (p *parser) miss(i int, expected ...string) {
	switch {
	case i > p.fail:
		p.fail = i
		p.expected = append(p.expected[:0], expected...)

	case i == p.fail:
		for _, e := range expected {
			if !slices.Contains(p.expected, e) {
				p.expected = append(p.expected, e)
			}
		}
	}
}

// error builds the ParseError for the furthest failure.
func (p *parser) error() *ParseError {
	i := max(p.fail, p.pos)

	if i >= len(p.tokens) {
		last := p.tokens[len(p.tokens)-1]

		return &ParseError{
			Token:    last,
			Expected: p.expected,
			Line:     last.Line,
			Column:   0,
			EOF:      true,
		}
	}

	tok := p.tokens[i]

	return &ParseError{
		Token:    tok,
		Expected: p.expected,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// recover forgets failures from alternatives abandoned before a construct
// was recognized.
func (p *parser) recover() {
	p.fail = -1
	p.expected = p.expected[:0]
}
