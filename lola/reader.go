package lola

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"io"
	"strconv"
)

type parser struct {
	tokens []Token
	pos    int
	net    *petri.Net
}

type pair struct {
	name  string
	value int
}

// Read parses net text as produced by RenderNet. Keywords, separators and
// numbers are checked by the grammar; names and weights by the net itself.
func Read(r io.Reader, opts ...petri.Option) (*petri.Net, petri.Marking, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	tokens, err := Tokens(string(src))
	if err != nil {
		return nil, nil, err
	}
	p := &parser{tokens: tokens, net: petri.New(opts...)}
	m, err := p.parseNet()
	if err != nil {
		return nil, nil, err
	}
	return p.net, m, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) unexpected(want string) error {
	tok, ok := p.peek()
	if !ok {
		return fmt.Errorf("%w: expected %s, found end of input", ErrSyntax, want)
	}
	return fmt.Errorf("%w: expected %s, found %q at offset %d", ErrSyntax, want, tok.Text, tok.Offset)
}

func (p *parser) accept(kind TokenKind, text string) bool {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind || (text != "" && tok.Text != text) {
		return false
	}
	p.pos++
	return true
}

func (p *parser) expect(kind TokenKind, text string) (string, error) {
	tok, _ := p.peek()
	if !p.accept(kind, text) {
		want := text
		if want == "" {
			want = kind.String()
		}
		return "", p.unexpected(want)
	}
	return tok.Text, nil
}

func (p *parser) parseNet() (petri.Marking, error) {
	if _, err := p.expect(IdentifierToken, "PLACE"); err != nil {
		return nil, err
	}
	places, err := p.parseNames()
	if err != nil {
		return nil, err
	}
	for _, name := range places {
		if err := p.net.AddPlace(name); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(IdentifierToken, "MARKING"); err != nil {
		return nil, err
	}
	marks, err := p.parsePairs()
	if err != nil {
		return nil, err
	}
	m := make(petri.Marking, len(marks))
	for _, mark := range marks {
		m[mark.name] = mark.value
	}
	m, err = p.net.Complete(m)
	if err != nil {
		return nil, err
	}
	for p.accept(IdentifierToken, "TRANSITION") {
		if err := p.parseTransition(); err != nil {
			return nil, err
		}
	}
	if _, ok := p.peek(); ok {
		return nil, p.unexpected("TRANSITION")
	}
	return m, nil
}

func (p *parser) parseTransition() error {
	t, err := p.expect(IdentifierToken, "")
	if err != nil {
		return err
	}
	if err := p.net.AddTransition(t); err != nil {
		return err
	}
	flows := []struct {
		keyword string
		set     func(place, transition string, w int) error
	}{
		{"CONSUME", p.net.SetInputFlow},
		{"PRODUCE", p.net.SetOutputFlow},
	}
	for _, f := range flows {
		if _, err := p.expect(IdentifierToken, f.keyword); err != nil {
			return err
		}
		pairs, err := p.parsePairs()
		if err != nil {
			return err
		}
		for _, pr := range pairs {
			if err := f.set(pr.name, t, pr.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseNames reads `name, name, ... ;`.
func (p *parser) parseNames() ([]string, error) {
	names := make([]string, 0)
	if p.accept(SeparatorToken, ";") {
		return names, nil
	}
	for {
		name, err := p.expect(IdentifierToken, "")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.accept(SeparatorToken, ";") {
			return names, nil
		}
		if _, err := p.expect(SeparatorToken, ","); err != nil {
			return nil, err
		}
	}
}

// parsePairs reads `name: n, name: n, ... ;`.
func (p *parser) parsePairs() ([]pair, error) {
	pairs := make([]pair, 0)
	if p.accept(SeparatorToken, ";") {
		return pairs, nil
	}
	for {
		name, err := p.expect(IdentifierToken, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SeparatorToken, ":"); err != nil {
			return nil, err
		}
		text, err := p.expect(NumberToken, "")
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrSyntax, text)
		}
		pairs = append(pairs, pair{name, v})
		if p.accept(SeparatorToken, ";") {
			return pairs, nil
		}
		if _, err := p.expect(SeparatorToken, ","); err != nil {
			return nil, err
		}
	}
}
