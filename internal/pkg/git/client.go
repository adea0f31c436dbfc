package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// Client wraps the git commands aim needs.
type Client struct {
	runner Runner
	out    io.Writer
	errOut io.Writer
}

// NewClient creates a Client. Add and Commit echo the command line, git's
// stdout and the success line to out, and git's stderr to errOut.
func NewClient(runner Runner, out, errOut io.Writer) *Client {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return &Client{runner: runner, out: out, errOut: errOut}
}

// StagedDiff returns the output of git diff --cached.
func (c *Client) StagedDiff(ctx context.Context, nameOnly bool) (string, error) {
	args := []string{"diff", "--cached"}
	if nameOnly {
		args = append(args, "--name-only")
	}
	return c.output(ctx, args)
}

// LastCommitDiff returns the patch (or file list) of HEAD without its header.
func (c *Client) LastCommitDiff(ctx context.Context, nameOnly bool) (string, error) {
	args := []string{"show", "--pretty=format:"}
	if nameOnly {
		args = append(args, "--name-only")
	}
	return c.output(ctx, args)
}

// Add stages the given paths, defaulting to the whole working tree.
func (c *Client) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	args := append([]string{"add"}, paths...)
	return c.echo(ctx, args, "✓ Files staged successfully")
}

// Commit records a commit with message. amend rewrites HEAD and stageAll
// passes -a so tracked modifications are included.
func (c *Client) Commit(ctx context.Context, message string, amend, stageAll bool) error {
	args := []string{"commit"}
	if amend {
		args = append(args, "--amend")
	}
	if stageAll {
		args = append(args, "-a")
	}
	args = append(args, "-m", message)
	return c.echo(ctx, args, "✓ Commit successful")
}

func (c *Client) output(ctx context.Context, args []string) (string, error) {
	res := c.runner.Run(ctx, args...)
	if !res.Success() {
		return res.Stdout, resultError(args, res)
	}
	return res.Stdout, nil
}

// echo runs a mutating command and mirrors it on the console.
func (c *Client) echo(ctx context.Context, args []string, success string) error {
	fmt.Fprintf(c.out, "→ git %s\n", displayArgs(args))

	res := c.runner.Run(ctx, args...)
	if out := strings.TrimRight(res.Stdout, "\n"); out != "" {
		fmt.Fprintln(c.out, out)
	}
	if errOut := strings.TrimRight(res.Stderr, "\n"); errOut != "" {
		fmt.Fprintln(c.errOut, errOut)
	}

	if !res.Success() {
		return resultError(args, res)
	}

	fmt.Fprintln(c.out, success)
	return nil
}

func resultError(args []string, res Result) error {
	switch {
	case errors.Is(res.Err, context.Canceled):
		return apperrors.NewCancelledError(res.Err)
	case res.Err != nil:
		return apperrors.NewGitError(args, res.Err, res.Stderr)
	default:
		return apperrors.NewGitError(args, fmt.Errorf("exit status %d", res.ExitCode), res.Stderr)
	}
}

// displayArgs renders args for the console, quoting any that contain spaces.
func displayArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
