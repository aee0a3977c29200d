// Package ctl builds CTL formulas over place markings and renders them in the
// textual format read by the external checker.
//
// Formulas are immutable values. Every variant is comparable, so two formulas
// are equal exactly when they have the same structure.
package ctl

import (
	"fmt"
	"github.com/jt05610/modelrepair"
)

type Kind int

const (
	TrueKind Kind = iota
	FalseKind
	AtomicKind
	NegatedAtomicKind
	ExistNextKind
	NegatedExistNextKind
	ExistGloballyKind
	NegatedExistGloballyKind
	AndKind
	NegatedAndKind
	ExistUntilKind
	NegatedExistUntilKind
)

var kindNames = [...]string{
	TrueKind:                 "True",
	FalseKind:                "False",
	AtomicKind:               "AtomicProposition",
	NegatedAtomicKind:        "NegatedAtomicProposition",
	ExistNextKind:            "ExistNext",
	NegatedExistNextKind:     "NegatedExistNext",
	ExistGloballyKind:        "ExistGlobally",
	NegatedExistGloballyKind: "NegatedExistGlobally",
	AndKind:                  "And",
	NegatedAndKind:           "NegatedAnd",
	ExistUntilKind:           "ExistUntil",
	NegatedExistUntilKind:    "NegatedExistUntil",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Dual returns the kind whose formula is the logical complement of k.
func (k Kind) Dual() Kind {
	// kinds are declared in dual pairs
	return k ^ 1
}

// Formula is a CTL state formula. The set of implementations is closed.
type Formula interface {
	Kind() Kind
	// Render returns the formula in checker syntax.
	Render() string
	// Negate returns the dual formula. Negate(Negate(f)) equals f.
	Negate() Formula
	Operands() []Formula
	String() string
	formula()
}

// Proposition is a validated place name.
type Proposition string

func NewProposition(place string) (Proposition, error) {
	if !petri.ValidIdentifier(place) {
		return "", fmt.Errorf("%w: place %q is not a valid proposition", petri.ErrFormula, place)
	}
	return Proposition(place), nil
}

type constant struct {
	kind Kind
}

type atom struct {
	kind  Kind
	place Proposition
}

type unary struct {
	kind Kind
	phi  Formula
}

type binary struct {
	kind  Kind
	left  Formula
	right Formula
}

var (
	True  Formula = constant{TrueKind}
	False Formula = constant{FalseKind}
)

func (c constant) Kind() Kind { return c.kind }
func (c constant) Negate() Formula { return constant{c.kind.Dual()} }
func (c constant) Operands() []Formula { return nil }
func (c constant) String() string { return c.Render() }
func (c constant) formula() {}
func (a atom) Kind() Kind { return a.kind }
func (a atom) Negate() Formula { return atom{a.kind.Dual(), a.place} }
func (a atom) Operands() []Formula { return nil }
func (a atom) String() string { return a.Render() }
func (a atom) formula() {}
func (u unary) Kind() Kind { return u.kind }
func (u unary) Negate() Formula { return unary{u.kind.Dual(), u.phi} }
func (u unary) Operands() []Formula { return []Formula{u.phi} }
func (u unary) String() string { return u.Render() }
func (u unary) formula() {}
func (b binary) Kind() Kind { return b.kind }
func (b binary) Negate() Formula { return binary{b.kind.Dual(), b.left, b.right} }
func (b binary) Operands() []Formula { return []Formula{b.left, b.right} }
func (b binary) String() string { return b.Render() }
func (b binary) formula() {}

func (c constant) Render() string {
	if c.kind == TrueKind {
		return "TRUE"
	}
	return "FALSE"
}

func (a atom) Render() string {
	if a.kind == AtomicKind {
		return string(a.place) + " > 0"
	}
	return string(a.place) + " == 0"
}

func (u unary) Render() string {
	phi := u.phi.Render()
	switch u.kind {
	case ExistNextKind:
		return "EX(" + phi + ")"
	case NegatedExistNextKind:
		return "NOT(EX(" + phi + "))"
	case ExistGloballyKind:
		return "EG(" + phi + ")"
	default:
		return "NOT(EG(" + phi + "))"
	}
}

func (b binary) Render() string {
	l, r := b.left.Render(), b.right.Render()
	switch b.kind {
	case AndKind:
		return "(" + l + " AND " + r + ")"
	case NegatedAndKind:
		return "NOT(" + l + " AND " + r + ")"
	case ExistUntilKind:
		return "E(" + l + " U " + r + ")"
	default:
		return "NOT(E(" + l + " U " + r + "))"
	}
}

func newAtom(kind Kind, place string) (Formula, error) {
	p, err := NewProposition(place)
	if err != nil {
		return nil, err
	}
	return atom{kind, p}, nil
}

func newUnary(kind Kind, phi Formula) (Formula, error) {
	if phi == nil {
		return nil, fmt.Errorf("%w: %s operand is not a CTL formula", petri.ErrFormula, kind)
	}
	return unary{kind, phi}, nil
}

func newBinary(kind Kind, left, right Formula) (Formula, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: %s operand is not a CTL formula", petri.ErrFormula, kind)
	}
	return binary{kind, left, right}, nil
}

// Atomic holds when place p is marked: "p > 0".
func Atomic(p string) (Formula, error) { return newAtom(AtomicKind, p) }

// NegatedAtomic holds when place p is empty: "p == 0".
func NegatedAtomic(p string) (Formula, error) { return newAtom(NegatedAtomicKind, p) }

func ExistNext(phi Formula) (Formula, error) { return newUnary(ExistNextKind, phi) }

func NegatedExistNext(phi Formula) (Formula, error) { return newUnary(NegatedExistNextKind, phi) }

func ExistGlobally(phi Formula) (Formula, error) { return newUnary(ExistGloballyKind, phi) }

func NegatedExistGlobally(phi Formula) (Formula, error) {
	return newUnary(NegatedExistGloballyKind, phi)
}

func And(phi1, phi2 Formula) (Formula, error) { return newBinary(AndKind, phi1, phi2) }

func NegatedAnd(phi1, phi2 Formula) (Formula, error) { return newBinary(NegatedAndKind, phi1, phi2) }

// ExistUntil holds when some path keeps phi1 until phi2 holds.
func ExistUntil(phi1, phi2 Formula) (Formula, error) { return newBinary(ExistUntilKind, phi1, phi2) }

func NegatedExistUntil(phi1, phi2 Formula) (Formula, error) {
	return newBinary(NegatedExistUntilKind, phi1, phi2)
}

// Must panics if err is not nil.
func Must(f Formula, err error) Formula {
	if err != nil {
		panic(err)
	}
	return f
}

// Equal reports whether a and b have the same structure.
func Equal(a, b Formula) bool {
	return a == b
}

// Places lists the places referenced by f in first occurrence order.
func Places(f Formula) []string {
	seen := make(map[Proposition]bool)
	places := make([]string, 0)
	var walk func(Formula)
	walk = func(f Formula) {
		if a, ok := f.(atom); ok && !seen[a.place] {
			seen[a.place] = true
			places = append(places, string(a.place))
		}
		for _, o := range f.Operands() {
			walk(o)
		}
	}
	walk(f)
	return places
}
