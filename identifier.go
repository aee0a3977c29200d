package petri

import "fmt"

// ValidIdentifier reports whether s may name a place or a transition. The
// first rune is an ASCII letter or underscore, the rest may also contain
// digits and dashes.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}

func checkIdentifier(kind, s string) error {
	if !ValidIdentifier(s) {
		return fmt.Errorf("%w: %s %q is not a valid identifier", ErrDomain, kind, s)
	}
	return nil
}
