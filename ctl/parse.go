package ctl

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"unicode"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokLParen
	tokRParen
	tokWord
	tokNumber
	tokGreater
	tokEquals
	tokInvalid
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

type tokenizer struct {
	input []rune
	pos   int
}

func isWordStart(c rune) bool {
	return c == '_' || (c < unicode.MaxASCII && unicode.IsLetter(c))
}

func isWordPart(c rune) bool {
	return isWordStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func (t *tokenizer) next() token {
	for t.pos < len(t.input) && unicode.IsSpace(t.input[t.pos]) {
		t.pos++
	}
	start := t.pos
	if t.pos >= len(t.input) {
		return token{typ: tokEOF, pos: start}
	}
	c := t.input[t.pos]
	t.pos++
	switch {
	case c == '(':
		return token{tokLParen, "(", start}
	case c == ')':
		return token{tokRParen, ")", start}
	case c == '>':
		return token{tokGreater, ">", start}
	case c == '=' && t.pos < len(t.input) && t.input[t.pos] == '=':
		t.pos++
		return token{tokEquals, "==", start}
	case c >= '0' && c <= '9':
		for t.pos < len(t.input) && t.input[t.pos] >= '0' && t.input[t.pos] <= '9' {
			t.pos++
		}
		return token{tokNumber, string(t.input[start:t.pos]), start}
	case isWordStart(c):
		for t.pos < len(t.input) && isWordPart(t.input[t.pos]) {
			t.pos++
		}
		return token{tokWord, string(t.input[start:t.pos]), start}
	}
	return token{tokInvalid, string(c), start}
}

type parser struct {
	tokenizer *tokenizer
	current   token
	lookahead token
}

// Parse reads a formula in the syntax produced by Render, so that
// Parse(f.Render()) equals f. NOT may also wrap propositions and constants,
// in which case the dual is returned.
func Parse(s string) (Formula, error) {
	p := &parser{tokenizer: &tokenizer{input: []rune(s)}}
	p.current = p.tokenizer.next()
	p.lookahead = p.tokenizer.next()
	f, err := p.formula()
	if err != nil {
		return nil, err
	}
	if p.current.typ != tokEOF {
		return nil, p.unexpected("end of formula")
	}
	return f, nil
}

func (p *parser) advance() token {
	tok := p.current
	p.current = p.lookahead
	p.lookahead = p.tokenizer.next()
	return tok
}

func (p *parser) unexpected(want string) error {
	if p.current.typ == tokEOF {
		return fmt.Errorf("%w: expected %s, got end of formula", petri.ErrFormula, want)
	}
	return fmt.Errorf("%w: expected %s at offset %d, got %q", petri.ErrFormula, want, p.current.pos, p.current.text)
}

func (p *parser) expect(typ tokenType, want string) error {
	if p.current.typ != typ || (typ == tokWord && p.current.text != want) {
		return p.unexpected(fmt.Sprintf("%q", want))
	}
	p.advance()
	return nil
}

// operator reports whether the current word is keyword applied to a
// parenthesised argument, as opposed to a place of the same name.
func (p *parser) operator(keyword string) bool {
	return p.current.typ == tokWord && p.current.text == keyword && p.lookahead.typ == tokLParen
}

func (p *parser) formula() (Formula, error) {
	switch {
	case p.operator("NOT"):
		return p.not()
	case p.operator("EX"):
		return p.unary(ExistNext)
	case p.operator("EG"):
		return p.unary(ExistGlobally)
	case p.operator("E"):
		return p.until()
	case p.current.typ == tokLParen:
		p.advance()
		left, err := p.formula()
		if err != nil {
			return nil, err
		}
		if p.current.typ == tokRParen {
			p.advance()
			return left, nil
		}
		if err := p.expect(tokWord, "AND"); err != nil {
			return nil, err
		}
		right, err := p.formula()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return And(left, right)
	case p.current.typ == tokWord:
		return p.atom()
	}
	return nil, p.unexpected("formula")
}

func (p *parser) atom() (Formula, error) {
	name := p.advance().text
	var build func(string) (Formula, error)
	switch p.current.typ {
	case tokGreater:
		build = Atomic
	case tokEquals:
		build = NegatedAtomic
	default:
		switch name {
		case "TRUE":
			return True, nil
		case "FALSE":
			return False, nil
		}
		return nil, p.unexpected("\">\" or \"==\"")
	}
	p.advance()
	if p.current.typ != tokNumber || p.current.text != "0" {
		return nil, p.unexpected("0")
	}
	p.advance()
	return build(name)
}

func (p *parser) unary(build func(Formula) (Formula, error)) (Formula, error) {
	p.advance()
	p.advance()
	phi, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	return build(phi)
}

func (p *parser) until() (Formula, error) {
	p.advance()
	p.advance()
	left, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokWord, "U"); err != nil {
		return nil, err
	}
	right, err := p.formula()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	return ExistUntil(left, right)
}

// not handles NOT(φ) and the unparenthesised conjunction NOT(φ1 AND φ2).
func (p *parser) not() (Formula, error) {
	p.advance()
	p.advance()
	left, err := p.formula()
	if err != nil {
		return nil, err
	}
	if p.current.typ == tokWord && p.current.text == "AND" {
		p.advance()
		right, err := p.formula()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return NegatedAnd(left, right)
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	return left.Negate(), nil
}
