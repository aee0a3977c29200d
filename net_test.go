package petri_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jt05610/modelrepair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExampleNet builds the two place net from the first demo and fires its only
// transition.
func ExampleNet() {
	net := petri.New(petri.WithName("demo"))
	for _, p := range []string{"a", "b"} {
		if err := net.AddPlace(p); err != nil {
			panic(err)
		}
	}
	if err := net.AddTransition("t"); err != nil {
		panic(err)
	}
	if err := net.SetInputFlow("a", "t", 1); err != nil {
		panic(err)
	}
	if err := net.SetOutputFlow("b", "t", 1); err != nil {
		panic(err)
	}
	m0, err := net.Complete(petri.Marking{"a": 1})
	if err != nil {
		panic(err)
	}
	m1, err := net.Fire(m0, "t")
	if err != nil {
		panic(err)
	}
	fmt.Println(m0, "->", m1)
	fmt.Println(net.EnabledTransitions(m1))
	// Output:
	// {a: 1, b: 0} -> {a: 0, b: 1}
	// []
}

func TestNet_FlowsDefaultToZero(t *testing.T) {
	orders := [][]string{
		{"p:a", "t:x", "p:b", "t:y"},
		{"t:x", "t:y", "p:a", "p:b"},
		{"p:a", "p:b", "t:x", "t:y"},
	}
	for i, order := range orders {
		t.Run(fmt.Sprintf("order%d", i), func(t *testing.T) {
			net := petri.New()
			for _, step := range order {
				var err error
				if step[0] == 'p' {
					err = net.AddPlace(step[2:])
				} else {
					err = net.AddTransition(step[2:])
				}
				require.NoError(t, err)
			}
			for _, p := range net.Places() {
				for _, tr := range net.Transitions() {
					assert.Equal(t, 0, net.Input(p, tr))
					assert.Equal(t, 0, net.Output(p, tr))
				}
			}
		})
	}
}

func TestNet_AddIsIdempotent(t *testing.T) {
	once := petri.New()
	twice := petri.New()
	for _, n := range []*petri.Net{once, twice} {
		require.NoError(t, n.AddPlace("a"))
		require.NoError(t, n.AddTransition("t"))
		require.NoError(t, n.SetInputFlow("a", "t", 2))
	}
	require.NoError(t, twice.AddPlace("a"))
	require.NoError(t, twice.AddTransition("t"))

	assert.Equal(t, once.Places(), twice.Places())
	assert.Equal(t, once.Transitions(), twice.Transitions())
	assert.Equal(t, 2, twice.Input("a", "t"))
	assert.Equal(t, once.Output("a", "t"), twice.Output("a", "t"))
}

func TestNet_RegistrationOrder(t *testing.T) {
	net := petri.New()
	for _, p := range []string{"c", "a", "b", "a"} {
		require.NoError(t, net.AddPlace(p))
	}
	assert.Equal(t, []string{"c", "a", "b"}, net.Places())
	assert.Equal(t, 1, net.PlaceIndex("a"))
	assert.Equal(t, -1, net.PlaceIndex("z"))
	assert.Equal(t, -1, net.TransitionIndex("t"))
}

func TestNet_InvalidIdentifiers(t *testing.T) {
	net := petri.New()
	for _, name := range []string{"", "1a", "-a", "a b", "a;", "ä"} {
		assert.ErrorIs(t, net.AddPlace(name), petri.ErrDomain, name)
		assert.ErrorIs(t, net.AddTransition(name), petri.ErrDomain, name)
	}
	assert.Empty(t, net.Places())
	assert.Empty(t, net.Transitions())
	for _, name := range []string{"a", "_a", "a-1", "p_idle", "T2"} {
		assert.True(t, petri.ValidIdentifier(name), name)
	}
}

func TestNet_SetFlow(t *testing.T) {
	net := petri.New()
	require.NoError(t, net.AddPlace("a"))
	require.NoError(t, net.AddTransition("t"))

	require.NoError(t, net.SetInputFlow("a", "t", 3))
	require.NoError(t, net.SetInputFlow("a", "t", 1))
	assert.Equal(t, 1, net.Input("a", "t"))

	err := net.SetInputFlow("a", "t", -1)
	assert.ErrorIs(t, err, petri.ErrDomain)
	assert.Equal(t, 1, net.Input("a", "t"))

	assert.ErrorIs(t, net.SetOutputFlow("z", "t", 1), petri.ErrDomain)
	assert.ErrorIs(t, net.SetOutputFlow("a", "z", 1), petri.ErrDomain)
	assert.ErrorIs(t, net.SetOutputFlow("a", "t", -4), petri.ErrDomain)
	assert.Equal(t, 0, net.Output("a", "t"))
}

func TestNet_Fire(t *testing.T) {
	net := petri.New()
	require.NoError(t, net.AddPlace("a"))
	require.NoError(t, net.AddPlace("b"))
	require.NoError(t, net.AddTransition("t"))
	require.NoError(t, net.SetInputFlow("a", "t", 2))
	require.NoError(t, net.SetOutputFlow("b", "t", 3))

	m := petri.Marking{"a": 1, "b": 0}
	assert.False(t, net.Enabled(m, "t"))
	_, err := net.Fire(m, "t")
	assert.True(t, errors.Is(err, petri.ErrNotEnabled))

	m = petri.Marking{"a": 2, "b": 0}
	next, err := net.Fire(m, "t")
	require.NoError(t, err)
	assert.Equal(t, petri.Marking{"a": 0, "b": 3}, next)
	assert.Equal(t, petri.Marking{"a": 2, "b": 0}, m)

	_, err = net.Fire(m, "u")
	assert.ErrorIs(t, err, petri.ErrDomain)
	assert.False(t, net.Enabled(m, "u"))
}
