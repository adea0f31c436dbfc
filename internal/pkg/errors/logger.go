package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a diagnostic line.
type Level int

const (
	// LevelWarn marks recoverable problems the run continued past.
	LevelWarn Level = iota
	// LevelDebug marks tracing of git and API calls.
	LevelDebug
)

// String returns the label printed for the level.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// logger writes timestamped diagnostics. It is silent unless verbose is set;
// failures reach the user through FormatError instead.
type logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

var std = &logger{out: os.Stderr}

// SetVerbose enables or disables diagnostic output.
func SetVerbose(verbose bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.verbose = verbose
}

// IsVerbose returns whether diagnostic output is enabled.
func IsVerbose() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.verbose
}

// SetOutput redirects diagnostic output.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
}

func (l *logger) printf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.verbose {
		return
	}

	line := SanitizeErrorMessage(fmt.Sprintf(format, args...))
	fmt.Fprintf(l.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), level, line)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...interface{}) {
	std.printf(LevelWarn, format, args...)
}

// Debug logs a tracing message.
func Debug(format string, args ...interface{}) {
	std.printf(LevelDebug, format, args...)
}

// LogAPIRequest traces an outgoing chat-completion request. The key is never logged.
func LogAPIRequest(endpoint, model string, promptLength int) {
	Debug("API Request: endpoint=%s, model=%s, prompt_length=%d", endpoint, model, promptLength)
}

// LogAPIResponse traces a chat-completion response.
func LogAPIResponse(model string, choices int, responseLength int, duration time.Duration) {
	Debug("API Response: model=%s, choices=%d, response_length=%d, duration=%v",
		model, choices, responseLength, duration)
}

// LogGitCommand traces a finished git invocation.
func LogGitCommand(args []string, exitCode int, stdoutLength int, duration time.Duration) {
	Debug("git %s: exit=%d, stdout_length=%d, duration=%v",
		strings.Join(args, " "), exitCode, stdoutLength, duration)
}
