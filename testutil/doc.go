// Package testutil holds helpers shared by session-env tests:
// CaptureOutput for commands that print to os.Stdout, and RequireCommand for
// tests that need a real shell on the machine.
package testutil
