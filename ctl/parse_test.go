package ctl_test

import (
	"errors"
	"testing"

	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/ctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.render, func(t *testing.T) {
			got, err := ctl.Parse(v.render)
			require.NoError(t, err)
			assert.True(t, ctl.Equal(v.formula, got), "got %s", got)
		})
	}
	nested := ctl.Must(ctl.ExistUntil(
		ctl.Must(ctl.NegatedAnd(ctl.Must(ctl.Atomic("p-1")), ctl.True)),
		ctl.Must(ctl.NegatedExistGlobally(ctl.Must(ctl.NegatedAtomic("q_2")))),
	))
	got, err := ctl.Parse(nested.Render())
	require.NoError(t, err)
	assert.True(t, ctl.Equal(nested, got))
}

func TestParse_Lenient(t *testing.T) {
	cases := map[string]string{
		"  EX( a>0 )":       "EX(a > 0)",
		"NOT(a > 0)":        "a == 0",
		"NOT(TRUE)":         "FALSE",
		"((a > 0))":         "a > 0",
		"E(E > 0 U U == 0)": "E(E > 0 U U == 0)",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := ctl.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, want, got.Render())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"a",
		"a > 1",
		"EX(a > 0",
		"(a > 0 OR b > 0)",
		"E(a > 0 b > 0)",
		"a > 0 b",
		"3a > 0",
		"$",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ctl.Parse(in)
			assert.True(t, errors.Is(err, petri.ErrFormula), "got %v", err)
		})
	}
}
