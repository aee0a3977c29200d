package runner_test

import (
	"context"
	"errors"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/lola"
	"github.com/jt05610/modelrepair/observability"
	"github.com/jt05610/modelrepair/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunner_Run(t *testing.T) {
	requireSh(t)
	r := runner.New(runner.Config{})
	res, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Code)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRunner_RunMissingBinary(t *testing.T) {
	r := runner.New(runner.Config{})
	_, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-checker"))
	assert.True(t, errors.Is(err, petri.ErrIO))
}

func TestRunner_RunCanceled(t *testing.T) {
	requireSh(t)
	r := runner.New(runner.Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := r.Run(ctx, "sh", "-c", "sleep 5")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRunner_Check(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	checker := filepath.Join(dir, "checker.sh")
	script := "#!/bin/sh\ncat \"$1\"\necho \"$2\"\n"
	require.NoError(t, os.WriteFile(checker, []byte(script), 0o755))

	n := petri.New()
	require.NoError(t, n.AddPlace("a"))
	require.NoError(t, n.AddTransition("t"))
	require.NoError(t, n.SetInputFlow("a", "t", 1))
	net, err := lola.RenderNet(n, petri.Marking{"a": 1})
	require.NoError(t, err)

	c, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	r := runner.New(runner.Config{Checker: checker, Dir: dir, Metrics: c})
	res, err := r.Check(context.Background(), lola.Artifact{Net: net, Formula: "EX(a == 0)"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Code)
	assert.Contains(t, res.Stdout, "TRANSITION t")
	assert.Contains(t, res.Stdout, "--formula=EX(a == 0)")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.CheckerRuns.WithLabelValues("0")))

	left, err := filepath.Glob(filepath.Join(dir, "*.lola"))
	require.NoError(t, err)
	assert.Empty(t, left)
}
