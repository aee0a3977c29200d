package analysis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/analysis"
	"github.com/jt05610/modelrepair/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flow struct {
	place, transition string
	in, out           int
}

func build(t testing.TB, places, transitions []string, flows ...flow) *petri.Net {
	net := petri.New()
	for _, p := range places {
		require.NoError(t, net.AddPlace(p))
	}
	for _, tr := range transitions {
		require.NoError(t, net.AddTransition(tr))
	}
	for _, f := range flows {
		require.NoError(t, net.SetInputFlow(f.place, f.transition, f.in))
		require.NoError(t, net.SetOutputFlow(f.place, f.transition, f.out))
	}
	return net
}

// twoProcesses is two independent idle/active toggles.
func twoProcesses(t testing.TB) *petri.Net {
	return build(t,
		[]string{"p_idle", "p_active", "q_idle", "q_active"},
		[]string{"t_1", "t_2", "t_3", "t_4"},
		flow{"p_idle", "t_1", 1, 0}, flow{"p_active", "t_1", 0, 1},
		flow{"p_active", "t_2", 1, 0}, flow{"p_idle", "t_2", 0, 1},
		flow{"q_idle", "t_3", 1, 0}, flow{"q_active", "t_3", 0, 1},
		flow{"q_active", "t_4", 1, 0}, flow{"q_idle", "t_4", 0, 1},
	)
}

func TestComputeReachabilitySet_Minimal(t *testing.T) {
	net := build(t, []string{"a", "b"}, []string{"t"}, flow{"a", "t", 1, 0}, flow{"b", "t", 0, 1})
	g, err := analysis.ComputeReachabilitySet(net, petri.Marking{"a": 1})
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())

	m0 := petri.Marking{"a": 1, "b": 0}
	m1 := petri.Marking{"a": 0, "b": 1}
	assert.Equal(t, m0, g.Initial())
	assert.True(t, g.Contains(m0))
	assert.True(t, g.Contains(m1))
	assert.Equal(t, []petri.Marking{m1}, g.Successors(g.Key(m0)))
	assert.Empty(t, g.Successors(g.Key(m1)))
	assert.Equal(t, []petri.Key{g.Key(m1)}, g.Deadlocks())
	assert.Equal(t, []analysis.Edge{{Transition: "t", Target: m1}}, g.Edges(g.Key(m0)))
}

func TestComputeReachabilitySet_TwoProcesses(t *testing.T) {
	net := twoProcesses(t)
	g, err := analysis.ComputeReachabilitySet(net, petri.Marking{"p_idle": 1, "q_idle": 1})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Empty(t, g.Deadlocks())

	k0 := g.Keys()[0]
	succ := g.Successors(k0)
	require.Len(t, succ, 2)
	assert.Equal(t, petri.Marking{"p_idle": 0, "p_active": 1, "q_idle": 1, "q_active": 0}, succ[0])
	assert.Equal(t, petri.Marking{"p_idle": 1, "p_active": 0, "q_idle": 0, "q_active": 1}, succ[1])
	for _, e := range g.Edges(k0) {
		assert.Contains(t, []string{"t_1", "t_3"}, e.Transition)
	}
}

func TestExplore_Deterministic(t *testing.T) {
	net := twoProcesses(t)
	m0 := petri.Marking{"p_idle": 1, "q_idle": 1}
	first, err := analysis.ComputeReachabilitySet(net, m0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		g, err := analysis.ComputeReachabilitySet(net, m0)
		require.NoError(t, err)
		assert.Equal(t, first.Keys(), g.Keys())
		for _, k := range g.Keys() {
			assert.Equal(t, first.Successors(k), g.Successors(k))
		}
	}
}

func TestExplore_UnknownPlace(t *testing.T) {
	net := build(t, []string{"a"}, []string{"t"})
	_, err := analysis.ComputeReachabilitySet(net, petri.Marking{"z": 1})
	assert.ErrorIs(t, err, petri.ErrDomain)
}

func unbounded(t testing.TB) *petri.Net {
	return build(t, []string{"a"}, []string{"grow"}, flow{"a", "grow", 0, 1})
}

func TestExplore_MaxStates(t *testing.T) {
	e := analysis.NewExplorer(analysis.WithMaxStates(10))
	g, err := e.Explore(context.Background(), unbounded(t), petri.Marking{})
	assert.ErrorIs(t, err, analysis.ErrExplorationAborted)
	require.NotNil(t, g)
	assert.Equal(t, 10, g.Len())
}

func TestExplore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := analysis.NewExplorer().Explore(ctx, unbounded(t), petri.Marking{})
	assert.ErrorIs(t, err, analysis.ErrExplorationAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, g.Len())
}

func TestExplore_Timeout(t *testing.T) {
	e := analysis.NewExplorer(analysis.WithTimeout(20 * time.Millisecond))
	_, err := e.Explore(context.Background(), unbounded(t), petri.Marking{})
	assert.ErrorIs(t, err, analysis.ErrExplorationAborted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExplore_WithinBudget(t *testing.T) {
	e := analysis.NewExplorer(analysis.WithMaxStates(4))
	g, err := e.Explore(context.Background(), twoProcesses(t), petri.Marking{"p_idle": 1, "q_idle": 1})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
}

func TestExplore_Metrics(t *testing.T) {
	c, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	e := analysis.NewExplorer(analysis.WithMetrics(c), analysis.WithMaxStates(10))

	_, err = e.Explore(context.Background(), twoProcesses(t), petri.Marking{"p_idle": 1, "q_idle": 1})
	require.NoError(t, err)
	_, err = e.Explore(context.Background(), unbounded(t), petri.Marking{})
	require.Error(t, err)
	_, err = e.Explore(context.Background(), unbounded(t), petri.Marking{"b": 1})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Explorations.WithLabelValues(observability.Complete)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Explorations.WithLabelValues(observability.Aborted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Explorations.WithLabelValues(observability.Failed)))
}

func ExampleIncidence() {
	net := petri.New()
	for i := 1; i <= 4; i++ {
		_ = net.AddPlace(fmt.Sprintf("p%d", i))
	}
	for i := 1; i <= 3; i++ {
		_ = net.AddTransition(fmt.Sprintf("t%d", i))
	}
	_ = net.SetInputFlow("p1", "t1", 1)
	_ = net.SetInputFlow("p3", "t1", 1)
	_ = net.SetOutputFlow("p2", "t1", 1)
	_ = net.SetInputFlow("p2", "t2", 1)
	_ = net.SetOutputFlow("p3", "t2", 1)
	_ = net.SetOutputFlow("p4", "t2", 1)
	_ = net.SetInputFlow("p4", "t3", 1)
	_ = net.SetOutputFlow("p1", "t3", 1)
	inc := analysis.Incidence(net)
	places := net.Places()
	fmt.Printf("┌%s┐\n", strings.Repeat(" ", 3*len(places)-1))
	for i := range net.Transitions() {
		fmt.Print("│")
		s := " "
		for j := range places {
			if j == len(places)-1 {
				s = ""
			}
			fmt.Printf("%2d%s", int(inc.At(i, j)), s)
		}
		fmt.Print("│\n")
	}
	fmt.Printf("└%s┘", strings.Repeat(" ", 3*len(places)-1))
	// Output:
	// ┌           ┐
	// │-1  1 -1  0│
	// │ 0 -1  1  1│
	// │ 1  0  0 -1│
	// └           ┘
}

func TestStateEquation(t *testing.T) {
	net := twoProcesses(t)
	m0 := petri.Marking{"p_idle": 1, "q_idle": 1}
	m, err := analysis.StateEquation(net, m0, []int{1, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, petri.Marking{"p_idle": 0, "p_active": 1, "q_idle": 0, "q_active": 1}, m)

	_, err = analysis.StateEquation(net, m0, []int{2, 0, 0, 0})
	assert.ErrorIs(t, err, petri.ErrDomain)
	_, err = analysis.StateEquation(net, m0, []int{1})
	assert.ErrorIs(t, err, petri.ErrDomain)
	_, err = analysis.StateEquation(net, m0, []int{-1, 0, 0, 0})
	assert.ErrorIs(t, err, petri.ErrDomain)
}

func TestQuery(t *testing.T) {
	net := twoProcesses(t)
	g, err := analysis.ComputeReachabilitySet(net, petri.Marking{"p_idle": 1, "q_idle": 1})
	require.NoError(t, err)

	both, err := analysis.Query(g, "p_active > 0 && q_active > 0")
	require.NoError(t, err)
	require.Len(t, both, 1)
	m, ok := g.Marking(both[0])
	require.True(t, ok)
	assert.Equal(t, 1, m["p_active"])
	assert.Equal(t, 1, m["q_active"])

	all, err := analysis.Query(g, "p_idle + p_active == 1")
	require.NoError(t, err)
	assert.Equal(t, g.Keys(), all)

	_, err = analysis.Query(g, "p_idle +")
	assert.ErrorIs(t, err, analysis.ErrQuery)
	_, err = analysis.Query(g, "p_idle + 1")
	assert.ErrorIs(t, err, analysis.ErrQuery)
}
