package analysis

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"time"
)

const tracerName = "github.com/jt05610/modelrepair/analysis"

// ErrExplorationAborted is returned together with the partial graph when a
// budget is exhausted or the context is done.
var ErrExplorationAborted = errors.New("exploration aborted")

type Explorer struct {
	logger    *zap.Logger
	metrics   *observability.Collector
	maxStates int
	timeout   time.Duration
}

type Option func(*Explorer)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Explorer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records every exploration with c.
func WithMetrics(c *observability.Collector) Option {
	return func(e *Explorer) {
		e.metrics = c
	}
}

// WithMaxStates bounds the number of visited markings. Zero means unbounded.
func WithMaxStates(n int) Option {
	return func(e *Explorer) {
		e.maxStates = n
	}
}

// WithTimeout bounds the wall-clock time of one exploration. Zero means no
// limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Explorer) {
		e.timeout = d
	}
}

func NewExplorer(opts ...Option) *Explorer {
	e := &Explorer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeReachabilitySet explores the full state space of net from initial
// without any budget. It only terminates on bounded nets.
func ComputeReachabilitySet(net *petri.Net, initial petri.Marking) (*Graph, error) {
	return NewExplorer(WithLogger(net.Logger())).Explore(context.Background(), net, initial)
}

// Explore computes the reachability graph of net from initial with a FIFO
// breadth-first search. The net must not be mutated while Explore runs.
func (e *Explorer) Explore(ctx context.Context, net *petri.Net, initial petri.Marking) (g *Graph, err error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, tracerName, "Explore",
		attribute.String("net", net.ID),
		attribute.Int("maxStates", e.maxStates),
	)
	defer func() {
		outcome, size := observability.Complete, 0
		if g != nil {
			size = g.Len()
		}
		switch {
		case errors.Is(err, ErrExplorationAborted):
			outcome = observability.Aborted
		case err != nil:
			outcome = observability.Failed
		}
		span.SetAttributes(attribute.Int("size", size), attribute.String("outcome", outcome))
		observability.EndSpan(span, err)
		e.metrics.ObserveExploration(outcome, size, time.Since(start))
	}()
	return e.explore(ctx, net, initial)
}

func (e *Explorer) explore(ctx context.Context, net *petri.Net, initial petri.Marking) (*Graph, error) {
	m0, err := net.Complete(initial)
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	logger := e.logger.With(zap.String("run", uuid.New().String()), zap.String("net", net.ID))
	logger.Info("computing reachability set", zap.Stringer("initial", m0))

	g := newGraph(net, m0)
	transitions := net.Transitions()
	open := petri.NewFIFO(m0)
	for {
		m, ok := open.Pop()
		if !ok {
			break
		}
		k := net.Key(m)
		if _, seen := g.markings[k]; seen {
			continue
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("reachability aborted", zap.Int("size", g.Len()), zap.Error(err))
			return g, fmt.Errorf("%w after %d markings: %w", ErrExplorationAborted, g.Len(), err)
		}
		if e.maxStates > 0 && g.Len() >= e.maxStates {
			logger.Warn("reachability aborted", zap.Int("size", g.Len()), zap.Int("maxStates", e.maxStates))
			return g, fmt.Errorf("%w: more than %d markings", ErrExplorationAborted, e.maxStates)
		}
		edges := make([]Edge, 0)
		for _, t := range transitions {
			next, err := net.Fire(m, t)
			if err != nil {
				continue
			}
			edges = append(edges, Edge{Transition: t, Target: next})
			open.Push(next)
		}
		logger.Debug("marking added to reachability set", zap.Stringer("marking", m), zap.Int("successors", len(edges)))
		g.add(k, m, edges)
	}
	logger.Info("reachability set calculated", zap.Int("size", g.Len()))
	return g, nil
}
