package search

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Output is the buffered result of one finished process.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner launches the external search tool. Consumer-defined so tests can
// substitute a fake process.
type Runner interface {
	Run(ctx context.Context, argv []string, dir string) (*Output, error)
}

// OSRunner runs real processes via os/exec.
type OSRunner struct{}

// Run executes argv as a discrete vector (never through a shell), buffers
// both streams until exit and reports the exit code. A non-zero exit is not
// an error here; the invoker interprets exit codes.
func (OSRunner) Run(ctx context.Context, argv []string, dir string) (*Output, error) {
	if len(argv) == 0 {
		return nil, os.ErrInvalid
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never ran (missing binary, permission, ...).
			return nil, err
		}
		out.ExitCode = exitErr.ExitCode()
	}
	return out, nil
}
