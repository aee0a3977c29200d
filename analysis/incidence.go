package analysis

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"gonum.org/v1/gonum/mat"
)

// Incidence returns the |T|×|P| matrix C with C[t][p] = O(p, t) - I(p, t).
func Incidence(net *petri.Net) *mat.Dense {
	places := net.Places()
	transitions := net.Transitions()
	if len(places) == 0 || len(transitions) == 0 {
		return &mat.Dense{}
	}
	m := len(places)
	d := make([]float64, len(transitions)*m)
	for i, t := range transitions {
		for j, p := range places {
			d[i*m+j] = float64(net.Output(p, t) - net.Input(p, t))
		}
	}
	return mat.NewDense(len(transitions), m, d)
}

// StateEquation computes m0 + sigma·C, where sigma counts how often each
// transition fires, in registration order. A solution is necessary, not
// sufficient, for the result to be reachable.
func StateEquation(net *petri.Net, m0 petri.Marking, sigma []int) (petri.Marking, error) {
	initial, err := net.Complete(m0)
	if err != nil {
		return nil, err
	}
	places := net.Places()
	transitions := net.Transitions()
	if len(sigma) != len(transitions) {
		return nil, fmt.Errorf("%w: firing vector has %d entries, want %d", petri.ErrDomain, len(sigma), len(transitions))
	}
	if len(places) == 0 || len(transitions) == 0 {
		return initial, nil
	}
	f := make([]float64, len(sigma))
	for i, s := range sigma {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative firing count %d for %s", petri.ErrDomain, s, transitions[i])
		}
		f[i] = float64(s)
	}
	s := make([]float64, len(places))
	for j, p := range places {
		s[j] = float64(initial[p])
	}
	var delta mat.Dense
	delta.Mul(mat.NewDense(1, len(f), f), Incidence(net))
	var out mat.Dense
	out.Add(mat.NewDense(1, len(s), s), &delta)

	ret := make(petri.Marking, len(places))
	for j, p := range places {
		v := int(out.At(0, j))
		if v < 0 {
			return nil, fmt.Errorf("%w: firing vector drives %s to %d tokens", petri.ErrDomain, p, v)
		}
		ret[p] = v
	}
	return ret, nil
}
