package ctl

// Or is built from the And dual: NOT(¬phi1 AND ¬phi2).
func Or(phi1, phi2 Formula) (Formula, error) {
	if phi1 == nil || phi2 == nil {
		return NegatedAnd(phi1, phi2)
	}
	return NegatedAnd(phi1.Negate(), phi2.Negate())
}

// ExistFinally holds when some path eventually reaches phi: E(TRUE U phi).
func ExistFinally(phi Formula) (Formula, error) {
	return ExistUntil(True, phi)
}

// AllGlobally holds when phi holds on every reachable marking:
// NOT(E(TRUE U ¬phi)).
func AllGlobally(phi Formula) (Formula, error) {
	if phi == nil {
		return NegatedExistUntil(True, phi)
	}
	return NegatedExistUntil(True, phi.Negate())
}
