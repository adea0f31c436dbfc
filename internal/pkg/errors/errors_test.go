package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_ExitCode(t *testing.T) {
	codes := []ErrorCode{
		ErrMissingAPIKey,
		ErrNoChanges,
		ErrEmptyMessage,
		ErrInvalidConfig,
		ErrInvalidArguments,
		ErrGitCommandFailed,
		ErrConfigIO,
		ErrCompletionFailed,
		ErrAuthenticationFailed,
		ErrCancelled,
	}

	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			assert.Equal(t, 1, code.ExitCode())
			assert.NotEqual(t, "Unknown", code.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "without cause",
			err: &AppError{
				Code:    ErrNoChanges,
				Message: "no changes",
			},
			expected: "no changes",
		},
		{
			name: "with cause",
			err: &AppError{
				Code:    ErrGitCommandFailed,
				Message: "git command failed",
				Cause:   errors.New("exit status 1"),
			},
			expected: "git command failed: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 1, GetExitCode(errors.New("plain")))
	assert.Equal(t, 1, GetExitCode(NewNoChangesError()))
	assert.Equal(t, 1, GetExitCode(fmt.Errorf("wrapped: %w", NewCancelledError(context.Canceled))))
}

func TestGetAppError_Wrapped(t *testing.T) {
	inner := NewMissingAPIKeyError()
	wrapped := fmt.Errorf("commit: %w", inner)

	assert.True(t, IsAppError(wrapped))
	assert.Same(t, inner, GetAppError(wrapped))
	assert.True(t, HasCode(wrapped, ErrMissingAPIKey))
	assert.False(t, HasCode(wrapped, ErrNoChanges))
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(NewCancelledError(nil)))
	assert.True(t, IsCancelled(fmt.Errorf("call: %w", context.Canceled)))
	assert.False(t, IsCancelled(NewCompletionError(errors.New("boom"))))
	assert.False(t, IsCancelled(nil))
}

func TestNewGitError(t *testing.T) {
	err := NewGitError([]string{"diff", "--cached"}, errors.New("exit status 128"), "fatal: not a git repository\n")

	assert.Equal(t, ErrGitCommandFailed, err.Code)
	assert.Equal(t, "Error running git diff --cached", err.Message)
	assert.Equal(t, "fatal: not a git repository", err.Context["stderr"])
	assert.Contains(t, err.Error(), "exit status 128")
}

func TestNewGitError_StderrBecomesCause(t *testing.T) {
	err := NewGitError([]string{"commit"}, nil, "nothing to commit")

	assert.EqualError(t, err.Cause, "nothing to commit")
}

func TestWithSuggestion(t *testing.T) {
	err := NewInvalidConfigError("Unknown configuration key: provider").
		WithSuggestion("Valid keys: apikey, model")

	assert.Equal(t, "Valid keys: apikey, model", err.Suggestion)
	assert.Equal(t,
		"Error: Unknown configuration key: provider\n  Suggestion: Valid keys: apikey, model",
		FormatError(err))
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
		excludes []string
	}{
		{
			name:     "nil",
			err:      nil,
			contains: []string{},
		},
		{
			name:     "plain error",
			err:      errors.New("something broke"),
			contains: []string{"Error: something broke"},
		},
		{
			name:     "app error with suggestion",
			err:      NewNoChangesError(),
			contains: []string{"Error: No changes to commit", "Suggestion:"},
		},
		{
			name:     "app error with cause",
			err:      NewCompletionError(errors.New("status 500")),
			contains: []string{"Error: Error calling AI API", "Cause: status 500"},
		},
		{
			name:     "cancellation hides cause",
			err:      NewCancelledError(context.Canceled),
			contains: []string{"Operation was cancelled"},
			excludes: []string{"Cause:"},
		},
		{
			name:     "masks api keys",
			err:      NewCompletionError(errors.New("invalid key sk-abcdefghijklmnopqrstuvwxyz")),
			contains: []string{"wxyz"},
			excludes: []string{"sk-abcdefghijklmnop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if tt.err == nil {
				assert.Empty(t, got)
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestFormatErrorVerbose(t *testing.T) {
	err := NewGitError([]string{"diff", "--cached"}, fmt.Errorf("run: %w", errors.New("exit status 1")), "fatal: bad revision")

	got := FormatErrorVerbose(err)

	assert.Contains(t, got, "Error [GitCommandFailed]")
	assert.Contains(t, got, "Error chain:")
	assert.Contains(t, got, "stderr: fatal: bad revision")
	assert.Equal(t, 2, strings.Count(got, "- *"), "both links of the chain should be listed")
}

func TestSanitizeErrorMessage(t *testing.T) {
	msg := "Incorrect API key provided: sk-proj-abcdefghijklmnopqrstuvwxyz0123"
	got := SanitizeErrorMessage(msg)

	assert.NotContains(t, got, "abcdefghijklmnop")
	assert.True(t, strings.HasSuffix(got, "0123"))
	assert.Equal(t, "no secrets here", SanitizeErrorMessage("no secrets here"))
}
