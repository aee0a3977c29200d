// Package observability collects Prometheus metrics for state space
// explorations and checker runs, and sets up OpenTelemetry tracing.
package observability

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"net/http"
	"strconv"
	"time"
)

// Exploration outcomes used as label values.
const (
	Complete = "complete"
	Aborted  = "aborted"
	Failed   = "failed"
)

// Collector bundles the toolkit's metrics. A nil *Collector records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Explorations     *prometheus.CounterVec
	ExploredMarkings prometheus.Histogram
	ExploreDurations prometheus.Histogram
	CheckerRuns      *prometheus.CounterVec
	CheckerDurations prometheus.Histogram
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry returns the
// collectors registered first.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	explorations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petri_explorations_total",
		Help: "Reachability explorations, labeled by outcome.",
	}, []string{"outcome"}), "petri_explorations_total")
	if err != nil {
		return nil, err
	}
	markings, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "petri_explored_markings",
		Help:    "Markings visited by one exploration.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "petri_explored_markings")
	if err != nil {
		return nil, err
	}
	exploreDurations, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "petri_exploration_duration_seconds",
		Help:    "Wall-clock time of one exploration in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
	}), "petri_exploration_duration_seconds")
	if err != nil {
		return nil, err
	}
	runs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petri_checker_runs_total",
		Help: "External checker invocations, labeled by exit code.",
	}, []string{"rc"}), "petri_checker_runs_total")
	if err != nil {
		return nil, err
	}
	checkDurations, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "petri_checker_duration_seconds",
		Help:    "Wall-clock time of one checker invocation in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60, 300},
	}), "petri_checker_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Explorations:     explorations,
		ExploredMarkings: markings,
		ExploreDurations: exploreDurations,
		CheckerRuns:      runs,
		CheckerDurations: checkDurations,
	}, nil
}

func (c *Collector) ObserveExploration(outcome string, size int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Explorations.WithLabelValues(outcome).Inc()
	c.ExploredMarkings.Observe(float64(size))
	c.ExploreDurations.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveCheck(code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.CheckerRuns.WithLabelValues(strconv.Itoa(code)).Inc()
	c.CheckerDurations.Observe(elapsed.Seconds())
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	var gatherer prometheus.Gatherer
	if c != nil {
		gatherer = c.gatherer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Push sends every gathered metric to the Pushgateway at url under job.
func (c *Collector) Push(url, job string) error {
	if c == nil {
		return nil
	}
	if err := push.New(url, job).Gatherer(c.gatherer).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
