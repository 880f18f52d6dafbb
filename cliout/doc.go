// Package cliout provides the human-facing output helpers used by the
// session-env command.
//
// Diagnostics (Error, Warning) always go to the diagnostic writer, stderr by
// default, and are folded onto a single line. Color and Unicode symbols are
// only used when that writer is a terminal (golang.org/x/term) and neither
// NoColor nor the NO_COLOR environment variable disabled them, so redirected
// output reads as plain "error: ..." lines.
//
//	cliout.Error("%v", err)
//	// terminal:  ✗ no session found
//	// pipe/file: error: no session found
//
// Warning reports variables dropped by --skip-missing. Header, Label and
// PrintJSON write to the normal writer and are used by the version command. SetWriters redirects both writers, which is how the cobra
// command routes output through cmd.OutOrStdout and cmd.ErrOrStderr.
package cliout
