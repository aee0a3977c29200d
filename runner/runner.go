// Package runner invokes external programs, the model checker in particular,
// and reports their raw results.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/lola"
	"github.com/jt05610/modelrepair/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const tracerName = "github.com/jt05610/modelrepair/runner"

// Result is what a finished process left behind. A non-zero Code is not an
// error.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

type Config struct {
	// Checker is the checker binary, looked up in PATH when not absolute.
	Checker string
	// Dir holds the artifacts written by Check. Defaults to os.TempDir().
	Dir string
	// Keep leaves artifacts on disk after Check returns.
	Keep    bool
	Logger  *zap.Logger
	Metrics *observability.Collector
}

type Runner struct {
	checker string
	dir     string
	keep    bool
	logger  *zap.Logger
	metrics *observability.Collector
}

func New(cfg Config) *Runner {
	r := &Runner{
		checker: cfg.Checker,
		dir:     cfg.Dir,
		keep:    cfg.Keep,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	if r.checker == "" {
		r.checker = "lola"
	}
	if r.dir == "" {
		r.dir = os.TempDir()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Run executes name with args and waits for it to exit. The error is non-nil
// only when the process could not be started or ctx ended first.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	command := strings.Join(append([]string{name}, args...), " ")
	r.logger.Info("running command", zap.String("command", command))
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return res, fmt.Errorf("%w: %s: %w", petri.ErrIO, command, ctx.Err())
	case errors.As(err, &exitErr):
		res.Code = exitErr.ExitCode()
	case err != nil:
		return res, fmt.Errorf("%w: %s: %w", petri.ErrIO, command, err)
	}
	r.logger.Info("command finished",
		zap.String("command", command),
		zap.Int("rc", res.Code),
		zap.String("stdout", res.Stdout),
		zap.String("stderr", res.Stderr),
	)
	return res, nil
}

// Check writes the net of a to a file and hands it to the checker along with
// the formula.
func (r *Runner) Check(ctx context.Context, a lola.Artifact) (res Result, err error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, tracerName, "Check",
		attribute.String("checker", r.checker),
		attribute.String("formula", a.Formula),
	)
	defer func() {
		span.SetAttributes(attribute.Int("rc", res.Code))
		observability.EndSpan(span, err)
		if err == nil {
			r.metrics.ObserveCheck(res.Code, time.Since(start))
		}
	}()
	fn := filepath.Join(r.dir, uuid.New().String()+".lola")
	if err := os.WriteFile(fn, []byte(a.Net), 0o644); err != nil {
		return Result{}, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	if !r.keep {
		defer func() {
			if err := os.Remove(fn); err != nil {
				r.logger.Warn("artifact not removed", zap.String("file", fn), zap.Error(err))
			}
		}()
	}
	return r.Run(ctx, r.checker, fn, "--formula="+a.Formula)
}
