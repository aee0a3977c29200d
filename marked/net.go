package marked

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"go.uber.org/zap"
)

// Net is a net together with its current marking.
type Net struct {
	*petri.Net
	marking petri.Marking
}

func New(n *petri.Net, initial petri.Marking) (*Net, error) {
	m, err := n.Complete(initial)
	if err != nil {
		return nil, err
	}
	return &Net{Net: n, marking: m}, nil
}

// Marking returns a copy of the current marking.
func (net *Net) Marking() petri.Marking {
	return net.marking.Clone()
}

func (net *Net) Mark(p string) int {
	return net.marking[p]
}

// Enabled returns true if the transition is enabled
func (net *Net) Enabled(t string) bool {
	return net.Net.Enabled(net.marking, t)
}

func (net *Net) Available() []string {
	return net.EnabledTransitions(net.marking)
}

func (net *Net) Fire(t string) error {
	next, err := net.Net.Fire(net.marking, t)
	if err != nil {
		return err
	}
	net.Logger().Debug("transition fired",
		zap.String("transition", t),
		zap.Stringer("before", net.marking),
		zap.Stringer("after", next),
	)
	net.marking = next
	return nil
}

// Run fires seq in order and stops at the first transition that cannot fire.
func (net *Net) Run(seq ...string) error {
	for i, t := range seq {
		if err := net.Fire(t); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
