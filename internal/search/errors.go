package search

import (
	"fmt"
	"strings"
)

// ToolUnavailableError is returned when the configured search executable
// cannot be located or started.
type ToolUnavailableError struct {
	Path  string
	Cause error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("search tool %q is not available: %v", e.Path, e.Cause)
}
func (e *ToolUnavailableError) Unwrap() error { return e.Cause }

// ExecutionFailedError is returned when the search process exits with a
// status other than "success" or "no matches".
type ExecutionFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecutionFailedError) Error() string {
	diag := strings.TrimSpace(e.Stderr)
	if diag == "" {
		return fmt.Sprintf("search tool exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("search tool exited with code %d: %s", e.ExitCode, diag)
}
