package petrifile

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"regexp"
)

// Document is the persisted form of a net. I and O map a pair key, as
// produced by PairKey, to a weight.
type Document struct {
	Name string         `json:"name,omitempty" yaml:"name,omitempty"`
	P    []string       `json:"P" yaml:"P"`
	T    []string       `json:"T" yaml:"T"`
	I    map[string]int `json:"I" yaml:"I"`
	O    map[string]int `json:"O" yaml:"O"`
}

var pairKey = regexp.MustCompile(`^\('(.*)', '(.*)'\)$`)

// PairKey renders (p, t) as a textual 2-tuple: ('p', 't').
func PairKey(p, t string) string {
	return fmt.Sprintf("('%s', '%s')", p, t)
}

// ParsePairKey is the inverse of PairKey.
func ParsePairKey(key string) (p, t string, err error) {
	m := pairKey.FindStringSubmatch(key)
	if m == nil {
		return "", "", fmt.Errorf("%w: malformed pair key %q", petri.ErrIO, key)
	}
	return m[1], m[2], nil
}

// FromNet captures every (place, transition) pair of n, zero weights included.
func FromNet(n *petri.Net) *Document {
	d := &Document{
		Name: n.Name,
		P:    n.Places(),
		T:    n.Transitions(),
		I:    make(map[string]int),
		O:    make(map[string]int),
	}
	for _, p := range d.P {
		for _, t := range d.T {
			k := PairKey(p, t)
			d.I[k] = n.Input(p, t)
			d.O[k] = n.Output(p, t)
		}
	}
	return d
}

// Net rebuilds the net described by d. Pairs missing from I or O load as 0.
func (d *Document) Net(opts ...petri.Option) (*petri.Net, error) {
	if d.Name != "" {
		opts = append([]petri.Option{petri.WithName(d.Name)}, opts...)
	}
	n := petri.New(opts...)
	for _, p := range d.P {
		if err := n.AddPlace(p); err != nil {
			return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
	}
	for _, t := range d.T {
		if err := n.AddTransition(t); err != nil {
			return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
	}
	if err := setFlows(d.I, n.SetInputFlow); err != nil {
		return nil, err
	}
	if err := setFlows(d.O, n.SetOutputFlow); err != nil {
		return nil, err
	}
	return n, nil
}

func setFlows(weights map[string]int, set func(p, t string, w int) error) error {
	for k, w := range weights {
		p, t, err := ParsePairKey(k)
		if err != nil {
			return err
		}
		if err := set(p, t, w); err != nil {
			return fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
	}
	return nil
}
