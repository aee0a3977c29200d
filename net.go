package petri

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"io"
)

// Flow is a (place, transition) pair, the domain of the input and output
// functions.
type Flow struct {
	Place      string
	Transition string
}

// Net is a place-transition net. The input function I and the output function
// O are kept total over Places × Transitions: registering a node extends both
// with zero weights for every existing counterpart.
type Net struct {
	ID          string
	Name        string
	places      []string
	transitions []string
	placeIndex  map[string]int
	transIndex  map[string]int
	input       map[Flow]int
	output      map[Flow]int
	logger      *zap.Logger
}

type Option func(*Net)

func WithLogger(logger *zap.Logger) Option {
	return func(n *Net) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func WithName(name string) Option {
	return func(n *Net) {
		n.Name = name
	}
}

// New creates an empty net.
func New(opts ...Option) *Net {
	n := &Net{
		ID:         ID(),
		places:     make([]string, 0),
		placeIndex: make(map[string]int),
		transIndex: make(map[string]int),
		input:      make(map[Flow]int),
		output:     make(map[Flow]int),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func ID() string {
	return uuid.New().String()
}

func (n *Net) Logger() *zap.Logger {
	return n.logger
}

// AddPlace registers p. Registering a place twice is a no-op.
func (n *Net) AddPlace(p string) error {
	if err := checkIdentifier("place", p); err != nil {
		return err
	}
	if _, found := n.placeIndex[p]; found {
		n.logger.Debug("place already in P", zap.String("place", p))
		return nil
	}
	n.placeIndex[p] = len(n.places)
	n.places = append(n.places, p)
	for _, t := range n.transitions {
		n.input[Flow{p, t}] = 0
		n.output[Flow{p, t}] = 0
	}
	n.logger.Debug("place added to P", zap.String("place", p))
	return nil
}

// AddTransition registers t. Registering a transition twice is a no-op.
func (n *Net) AddTransition(t string) error {
	if err := checkIdentifier("transition", t); err != nil {
		return err
	}
	if _, found := n.transIndex[t]; found {
		n.logger.Debug("transition already in T", zap.String("transition", t))
		return nil
	}
	n.transIndex[t] = len(n.transitions)
	n.transitions = append(n.transitions, t)
	for _, p := range n.places {
		n.input[Flow{p, t}] = 0
		n.output[Flow{p, t}] = 0
	}
	n.logger.Debug("transition added to T", zap.String("transition", t))
	return nil
}

// SetInputFlow sets I(p, t) = w.
func (n *Net) SetInputFlow(p, t string, w int) error {
	return n.setFlow(n.input, "I", p, t, w)
}

// SetOutputFlow sets O(p, t) = w.
func (n *Net) SetOutputFlow(p, t string, w int) error {
	return n.setFlow(n.output, "O", p, t, w)
}

func (n *Net) setFlow(fn map[Flow]int, name, p, t string, w int) error {
	if !n.HasPlace(p) {
		return UnknownPlace(p)
	}
	if !n.HasTransition(t) {
		return UnknownTransition(t)
	}
	if w < 0 {
		return NegativeWeight(p, t, w)
	}
	fn[Flow{p, t}] = w
	n.logger.Debug("flow updated",
		zap.String("function", name),
		zap.String("place", p),
		zap.String("transition", t),
		zap.Int("weight", w),
	)
	return nil
}

func (n *Net) Places() []string {
	return append([]string(nil), n.places...)
}

func (n *Net) Transitions() []string {
	return append([]string(nil), n.transitions...)
}

func (n *Net) HasPlace(p string) bool {
	_, ok := n.placeIndex[p]
	return ok
}

func (n *Net) HasTransition(t string) bool {
	_, ok := n.transIndex[t]
	return ok
}

// PlaceIndex returns the registration index of p, or -1.
func (n *Net) PlaceIndex(p string) int {
	if i, ok := n.placeIndex[p]; ok {
		return i
	}
	return -1
}

// TransitionIndex returns the registration index of t, or -1.
func (n *Net) TransitionIndex(t string) int {
	if i, ok := n.transIndex[t]; ok {
		return i
	}
	return -1
}

// Input returns I(p, t), or 0 if the pair is not registered.
func (n *Net) Input(p, t string) int {
	return n.input[Flow{p, t}]
}

// Output returns O(p, t), or 0 if the pair is not registered.
func (n *Net) Output(p, t string) int {
	return n.output[Flow{p, t}]
}

type Flusher[T any] interface {
	Flush(io.Writer, T) error
}
