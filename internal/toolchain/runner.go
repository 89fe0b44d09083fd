package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spachava753/purpltools/internal/models"
)

// Result is the outcome of a finished child process.
type Result struct {
	ExitCode int
	Output   []byte // combined stdout and stderr
}

// Runner launches a tool invocation and waits for it to finish.
type Runner interface {
	// Run executes inv. A non-zero exit code is reported through Result, not
	// as an error; the error is reserved for processes that could not run.
	Run(ctx context.Context, inv models.Invocation) (Result, error)
}

// ExecRunner runs invocations as local child processes.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the invocation, capturing stdout and stderr into one buffer.
func (r *ExecRunner) Run(ctx context.Context, inv models.Invocation) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Env = append(os.Environ(), inv.EnvList()...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	slog.Debug("starting tool", "path", inv.Path, "args", inv.Args, "env", inv.EnvList())

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return Result{ExitCode: exitErr.ExitCode(), Output: output.Bytes()}, nil
		}
		if ctx.Err() != nil {
			return Result{ExitCode: -1, Output: output.Bytes()}, fmt.Errorf("running %s: %w", inv.Path, ctx.Err())
		}
		return Result{ExitCode: -1, Output: output.Bytes()}, fmt.Errorf("running %s: %w", inv.Path, err)
	}

	return Result{Output: output.Bytes()}, nil
}
