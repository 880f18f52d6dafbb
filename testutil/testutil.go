package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/jongio/session-env/pathutil"
)

// CaptureOutput runs fn with os.Stdout redirected to a pipe and returns what
// fn printed. os.Stdout is restored before returning; an error from fn is
// logged, not fatal, so commands that fail after printing can be inspected.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    return cmd.Execute()
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe and block fn.
	outCh := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		outCh <- string(data)
	}()

	fnErr := fn()

	os.Stdout = orig
	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	output := <-outCh
	_ = r.Close()

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}
	return output
}

// RequireCommand returns the path of an executable helper, skipping the test
// when it is not installed. Tests that round-trip output through a real shell
// use it so they still pass on machines without that shell.
//
// Example:
//
//	fish := testutil.RequireCommand(t, "fish")
func RequireCommand(t *testing.T, name string) string {
	t.Helper()

	path := pathutil.Lookup(name)
	if path == "" {
		t.Skipf("%s not installed", name)
	}
	return path
}
