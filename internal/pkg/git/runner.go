// Package git runs the git executable on behalf of aim.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// Result holds the captured outcome of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err is set when the process could not be started or was interrupted.
	Err error
}

// Success reports whether the command ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner executes git with an argument vector.
type Runner interface {
	Run(ctx context.Context, args ...string) Result
}

// ExecRunner implements Runner using exec.CommandContext.
type ExecRunner struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
	binary  string
}

// NewRunner creates an ExecRunner for the current directory.
func NewRunner() *ExecRunner {
	return &ExecRunner{binary: "git"}
}

// NewRunnerWithWorkDir creates an ExecRunner with a specific working directory.
func NewRunnerWithWorkDir(workDir string) *ExecRunner {
	return &ExecRunner{workDir: workDir, binary: "git"}
}

// Run spawns one git process, waits for it and buffers both output streams.
func (r *ExecRunner) Run(ctx context.Context, args ...string) Result {
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Err = ctx.Err()
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Err = err
	}

	apperrors.LogGitCommand(args, res.ExitCode, len(res.Stdout), time.Since(start))
	return res
}
