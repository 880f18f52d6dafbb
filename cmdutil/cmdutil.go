// Package cmdutil runs short-lived helper commands and captures their output.
package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// maxStderrInError caps how much of a helper's stderr ends up in an error message.
const maxStderrInError = 512

// ExitError reports a helper that ran but exited unsuccessfully.
type ExitError struct {
	Name     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Output runs a command and returns its stdout.
// stdin is empty and stderr is captured into the returned error.
// The command inherits environment variables from the parent process.
func Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Name:     name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   truncate(strings.TrimSpace(stderr.String()), maxStderrInError),
				Err:      err,
			}
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return stdout.Bytes(), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
