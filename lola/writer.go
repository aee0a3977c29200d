// Package lola renders nets and formulas in the textual format consumed by
// the LoLA model checker, and reads that net format back.
package lola

import (
	"fmt"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/ctl"
	"go.uber.org/zap"
	"io"
	"strings"
)

const (
	netTemplate        = "\nPLACE\n    %s;\n\nMARKING\n    %s;\n\n%s"
	transitionTemplate = "\nTRANSITION %s\n    CONSUME %s;\n    PRODUCE %s;\n"
	pairTemplate       = "%s: %d"
)

var _ petri.Flusher[Model] = (*Writer)(nil)

// Model is a net together with its initial marking.
type Model struct {
	Net     *petri.Net
	Marking petri.Marking
}

// Artifact is the full input handed to the external checker.
type Artifact struct {
	Net     string
	Formula string
}

// String concatenates the net and the formula, the formula on its own line.
func (a Artifact) String() string {
	return a.Net + a.Formula + "\n"
}

type Writer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

func (w *Writer) Flush(out io.Writer, m Model) error {
	text, err := RenderNet(m.Net, m.Marking)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	if err != nil {
		return err
	}
	w.logger.Debug("net exported", zap.String("net", m.Net.ID), zap.Int("bytes", len(text)))
	return nil
}

// RenderArtifact renders m and phi. Every place named by phi must be in the
// net.
func (w *Writer) RenderArtifact(m Model, phi ctl.Formula) (Artifact, error) {
	if phi == nil {
		return Artifact{}, fmt.Errorf("%w: missing formula", petri.ErrFormula)
	}
	for _, p := range ctl.Places(phi) {
		if !m.Net.HasPlace(p) {
			return Artifact{}, fmt.Errorf("%w: formula references place %q", petri.ErrDomain, p)
		}
	}
	text, err := RenderNet(m.Net, m.Marking)
	if err != nil {
		return Artifact{}, err
	}
	a := Artifact{Net: text, Formula: phi.Render()}
	w.logger.Info("artifact rendered", zap.String("net", m.Net.ID), zap.String("formula", a.Formula))
	return a, nil
}

// RenderNet renders the place list, the completed marking and one block per
// transition, all in registration order.
func RenderNet(net *petri.Net, marking petri.Marking) (string, error) {
	m, err := net.Complete(marking)
	if err != nil {
		return "", err
	}
	places := net.Places()
	pairs := func(value func(p string) int) string {
		ret := make([]string, len(places))
		for i, p := range places {
			ret[i] = fmt.Sprintf(pairTemplate, p, value(p))
		}
		return strings.Join(ret, ", ")
	}
	var transitions strings.Builder
	for _, t := range net.Transitions() {
		consume := pairs(func(p string) int { return net.Input(p, t) })
		produce := pairs(func(p string) int { return net.Output(p, t) })
		_, _ = fmt.Fprintf(&transitions, transitionTemplate, t, consume, produce)
	}
	marks := pairs(func(p string) int { return m[p] })
	return fmt.Sprintf(netTemplate, strings.Join(places, ", "), marks, transitions.String()), nil
}
