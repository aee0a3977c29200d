package petri

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain reports a reference to an unknown place or transition, a
	// malformed weight or an invalid marking.
	ErrDomain = errors.New("domain error")
	// ErrFormula reports an ill-formed CTL formula operand.
	ErrFormula = errors.New("formula error")
	// ErrIO reports a persistence read or parse failure.
	ErrIO = errors.New("io error")
	// ErrNotEnabled is returned when firing a transition that is not enabled.
	ErrNotEnabled = errors.New("transition not enabled")
)

func UnknownPlace(p string) error {
	return fmt.Errorf("%w: place %q is not in P", ErrDomain, p)
}

func UnknownTransition(t string) error {
	return fmt.Errorf("%w: transition %q is not in T", ErrDomain, t)
}

func NegativeWeight(p, t string, w int) error {
	return fmt.Errorf("%w: weight %d for (%s, %s) is not an integer greater or equal than 0", ErrDomain, w, p, t)
}

func NotEnabled(t string) error {
	return fmt.Errorf("%w: %s", ErrNotEnabled, t)
}
