package petri

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Marking assigns a token count to each place.
type Marking map[string]int

func (m Marking) Clone() Marking {
	c := make(Marking, len(m))
	for p, v := range m {
		c[p] = v
	}
	return c
}

// String renders the marking as sorted "place: count" pairs.
func (m Marking) String() string {
	names := make([]string, 0, len(m))
	for p := range m {
		names = append(names, p)
	}
	sort.Strings(names)
	pairs := make([]string, len(names))
	for i, p := range names {
		pairs[i] = fmt.Sprintf("%s: %d", p, m[p])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Key is the canonical encoding of a complete marking: token counts in place
// registration order.
type Key string

// Complete returns a copy of m with an entry for every place, absent places
// holding 0 tokens.
func (n *Net) Complete(m Marking) (Marking, error) {
	for p, v := range m {
		if !n.HasPlace(p) {
			return nil, fmt.Errorf("%w: invalid place in marking: %q", ErrDomain, p)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: negative token count %d for place %q", ErrDomain, v, p)
		}
	}
	c := make(Marking, len(n.places))
	for _, p := range n.places {
		c[p] = m[p]
	}
	return c, nil
}

// Key encodes m independently of map iteration order.
func (n *Net) Key(m Marking) Key {
	var sb strings.Builder
	for i, p := range n.places {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(m[p]))
	}
	return Key(sb.String())
}

// Enabled reports whether t may fire at m, that is m(p) >= I(p, t) for every
// place p.
func (n *Net) Enabled(m Marking, t string) bool {
	if !n.HasTransition(t) {
		return false
	}
	for _, p := range n.places {
		if m[p] < n.input[Flow{p, t}] {
			return false
		}
	}
	return true
}

// EnabledTransitions lists the transitions enabled at m in registration order.
func (n *Net) EnabledTransitions(m Marking) []string {
	enabled := make([]string, 0)
	for _, t := range n.transitions {
		if n.Enabled(m, t) {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// Fire returns the marking reached by firing t at m. m is not modified.
func (n *Net) Fire(m Marking, t string) (Marking, error) {
	if !n.HasTransition(t) {
		return nil, UnknownTransition(t)
	}
	if !n.Enabled(m, t) {
		return nil, NotEnabled(t)
	}
	next := make(Marking, len(n.places))
	for _, p := range n.places {
		f := Flow{p, t}
		next[p] = m[p] - n.input[f] + n.output[f]
	}
	return next, nil
}
