// Package errors provides error types, user-facing formatting and logging for aim.
package errors

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors
	ErrMissingAPIKey ErrorCode = iota + 100
	ErrNoChanges
	ErrEmptyMessage
	ErrInvalidConfig
	ErrInvalidArguments

	// System errors
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrConfigIO

	// External errors
	ErrCompletionFailed ErrorCode = iota + 300
	ErrAuthenticationFailed
	ErrCancelled
)

// ExitCode returns the process exit code for an error code.
// Every failure terminates the invocation with status 1.
func (c ErrorCode) ExitCode() int {
	return 1
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrNoChanges:
		return "NoChanges"
	case ErrEmptyMessage:
		return "EmptyMessage"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrConfigIO:
		return "ConfigIO"
	case ErrCompletionFailed:
		return "CompletionFailed"
	case ErrAuthenticationFailed:
		return "AuthenticationFailed"
	case ErrCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// GetExitCode returns the process exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1
}

// IsCancelled reports whether err stems from a cancelled operation.
func IsCancelled(err error) bool {
	return HasCode(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// NewMissingAPIKeyError creates an error for a missing API key.
func NewMissingAPIKeyError() *AppError {
	return &AppError{
		Code:       ErrMissingAPIKey,
		Message:    "OpenAI API key is required",
		Suggestion: "Run 'aim config --set apikey=YOUR_KEY' to save it, or set AIM_API_KEY",
	}
}

// NewNoChangesError creates an error for an empty staged diff.
func NewNoChangesError() *AppError {
	return &AppError{
		Code:       ErrNoChanges,
		Message:    "No changes to commit. Run 'git add' first.",
		Suggestion: "Use 'git add <files>' or 'aim commit --all' to stage changes",
	}
}

// NewEmptyMessageError creates an error for a blank completion.
func NewEmptyMessageError() *AppError {
	return &AppError{
		Code:    ErrEmptyMessage,
		Message: "Failed to generate commit message",
	}
}

// NewInvalidConfigError creates an error for invalid configuration input.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidConfig,
		Message: message,
	}
}

// NewConfigIOError creates an error for configuration file failures.
func NewConfigIOError(err error, message string) *AppError {
	return &AppError{
		Code:    ErrConfigIO,
		Message: message,
		Cause:   err,
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(args []string, err error, stderr string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: fmt.Sprintf("Error running git %s", strings.Join(args, " ")),
		Cause:   err,
	}
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		appErr.Context = map[string]interface{}{
			"stderr": stderr,
		}
		if err == nil {
			appErr.Cause = errors.New(stderr)
		}
	}
	return appErr
}

// NewCompletionError creates an error for chat-completion failures.
func NewCompletionError(err error) *AppError {
	return &AppError{
		Code:       ErrCompletionFailed,
		Message:    "Error calling AI API",
		Cause:      err,
		Suggestion: "Check your API key, endpoint and network connectivity",
	}
}

// NewAuthenticationError creates an error for rejected credentials.
func NewAuthenticationError(endpoint string) *AppError {
	return &AppError{
		Code:       ErrAuthenticationFailed,
		Message:    fmt.Sprintf("authentication failed with %s", endpoint),
		Suggestion: "Check your API key is valid and has not expired",
	}
}

// NewCancelledError creates an error for a user interrupt.
func NewCancelledError(err error) *AppError {
	return &AppError{
		Code:    ErrCancelled,
		Message: "Operation was cancelled",
		Cause:   err,
	}
}

// FormatError formats an error for user display.
// API keys are masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil && appErr.Code != ErrCancelled {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, SanitizeErrorMessage(err.Error())))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys in error messages.
func SanitizeErrorMessage(msg string) string {
	return apiKeyPattern.ReplaceAllStringFunc(msg, MaskAPIKey)
}

// apiKeyPattern matches common API key patterns.
var apiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`)

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(apiKey string) string {
	if len(apiKey) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(apiKey)-4) + apiKey[len(apiKey)-4:]
}
