package lola

import (
	"errors"
	"fmt"
	"unicode"
)

var ErrSyntax = errors.New("syntax error")

// Input is the character class of a rune.
type Input int

const (
	Invalid Input = iota - 1
	Separator
	Digit
	Dash
	Character
)

// State is a state of the tokenizer automaton.
type State int

const (
	ErrorState State = iota - 1
	Start
	SeparatorState
	DashStart
	Numeric
	IdentifierState
)

var table = map[State]map[Input]State{
	Start:           {Separator: SeparatorState, Dash: DashStart, Digit: Numeric, Character: IdentifierState, Invalid: ErrorState},
	SeparatorState:  {Separator: ErrorState, Dash: ErrorState, Digit: ErrorState, Character: ErrorState, Invalid: ErrorState},
	DashStart:       {Separator: ErrorState, Dash: IdentifierState, Digit: Numeric, Character: IdentifierState, Invalid: ErrorState},
	Numeric:         {Separator: ErrorState, Dash: IdentifierState, Digit: Numeric, Character: IdentifierState, Invalid: ErrorState},
	IdentifierState: {Separator: ErrorState, Dash: IdentifierState, Digit: IdentifierState, Character: IdentifierState, Invalid: ErrorState},
}

// Classify maps r to its input class. ':', ';' and ',' separate; '_' counts
// as a letter so that place names such as p_idle stay one identifier.
func Classify(r rune) Input {
	switch {
	case r == ':', r == ';', r == ',':
		return Separator
	case r >= '0' && r <= '9':
		return Digit
	case r == '-':
		return Dash
	case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return Character
	}
	return Invalid
}

// Step returns the state reached from s on input in.
func Step(s State, in Input) State {
	row, ok := table[s]
	if !ok {
		return ErrorState
	}
	return row[in]
}

// NextObject returns the longest prefix of s accepted before the automaton
// fails, and the state it ended in.
func NextObject(s string) (string, State) {
	state := Start
	end := 0
	for i, r := range s {
		next := Step(state, Classify(r))
		if next == ErrorState {
			return s[:i], state
		}
		state = next
		end = i + len(string(r))
	}
	return s[:end], state
}

type TokenKind int

const (
	SeparatorToken TokenKind = iota
	NumberToken
	IdentifierToken
)

func (k TokenKind) String() string {
	switch k {
	case SeparatorToken:
		return "separator"
	case NumberToken:
		return "number"
	default:
		return "identifier"
	}
}

type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Lexer splits net text into tokens, skipping whitespace.
type Lexer struct {
	src string
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. ok is false at the end of input.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
	if l.pos == len(l.src) {
		return Token{}, false, nil
	}
	text, state := NextObject(l.src[l.pos:])
	offset := l.pos
	switch state {
	case SeparatorState:
		tok = Token{SeparatorToken, text, offset}
	case Numeric:
		tok = Token{NumberToken, text, offset}
	case IdentifierState:
		tok = Token{IdentifierToken, text, offset}
	case DashStart:
		return Token{}, false, fmt.Errorf("%w: dangling '-' at offset %d", ErrSyntax, offset)
	default:
		return Token{}, false, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, l.src[offset], offset)
	}
	l.pos += len(text)
	return tok, true, nil
}

// Tokens lexes the whole input.
func Tokens(src string) ([]Token, error) {
	l := NewLexer(src)
	tokens := make([]Token, 0)
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
