package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"ucrtpack/internal/logging"
	"ucrtpack/internal/types"
)

// Step is one unit of the packaging sequence.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

// Options contains configuration for the runner. A nil Logger selects the
// default component logger; a provided one is used as-is, silent or not.
type Options struct {
	Logger *zerolog.Logger
}

// Runner executes steps strictly in order and stops at the first failure.
// There are no retries and no rollback: a failed step leaves whatever it
// wrote on disk and the orchestrator sees the failure.
type Runner struct {
	logger zerolog.Logger
}

// New creates a runner.
func New(opts Options) *Runner {
	logger := logging.GetLogger("pipeline")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Runner{logger: logger}
}

// Run executes the steps in order. The returned error wraps the first
// failure; steps after it are never started.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		r.logger.Info().
			Int("step", i+1).
			Int("total", len(steps)).
			Str("name", step.Name()).
			Msg("Running step")

		if err := step.Run(ctx); err != nil {
			r.logger.Error().
				Err(err).
				Str("name", step.Name()).
				Int("exit_code", ExitCode(err)).
				Msg("Step failed")
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}

		r.logger.Debug().
			Str("name", step.Name()).
			Dur("duration", time.Since(start)).
			Msg("Step completed")
	}
	return nil
}

// ExitCode maps a pipeline error to the process exit status: the failing
// tool's own code when one is known, 0 on success, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var toolErr *types.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Code
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
