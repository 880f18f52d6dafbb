// Package cliout formats what session-env prints for humans: the one-line
// diagnostics on stderr and the version banner.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
)

// Unicode symbols used on color terminals
const (
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
)

// Plain prefixes used when output is not a terminal
const (
	PrefixError   = "error:"
	PrefixWarning = "warning:"
)

// EnvNoColor disables color when set to any non-empty value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

var (
	// mu protects the writers and noColor
	mu sync.RWMutex

	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
	noColor           = false
)

// SetWriters redirects normal and diagnostic output. Nil keeps the current writer.
func SetWriters(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// ResetWriters restores os.Stdout and os.Stderr and re-enables color on
// terminals.
func ResetWriters() {
	mu.Lock()
	defer mu.Unlock()
	stdout = os.Stdout
	stderr = os.Stderr
	noColor = false
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

func writers() (io.Writer, io.Writer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return stdout, stderr, noColor
}

// colorEnabled reports whether w is a terminal that should get ANSI colors.
func colorEnabled(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv(EnvNoColor) != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// singleLine folds a message onto one line so each diagnostic is exactly one line.
func singleLine(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	return strings.ReplaceAll(msg, "\n", " ")
}

// Error prints a one-line error message to the diagnostic writer.
func Error(format string, args ...interface{}) {
	_, errOut, disabled := writers()
	msg := singleLine(fmt.Sprintf(format, args...))
	if colorEnabled(errOut, disabled) {
		fmt.Fprintf(errOut, "%s%s%s %s\n", BrightRed, SymbolCross, Reset, msg)
		return
	}
	fmt.Fprintf(errOut, "%s %s\n", PrefixError, msg)
}

// Warning prints a one-line warning message to the diagnostic writer.
func Warning(format string, args ...interface{}) {
	_, errOut, disabled := writers()
	msg := singleLine(fmt.Sprintf(format, args...))
	if colorEnabled(errOut, disabled) {
		fmt.Fprintf(errOut, "%s%s%s  %s\n", BrightYellow, SymbolWarning, Reset, msg)
		return
	}
	fmt.Fprintf(errOut, "%s %s\n", PrefixWarning, msg)
}

// Header prints a bold header with a divider
func Header(text string) {
	out, _, disabled := writers()
	if colorEnabled(out, disabled) {
		fmt.Fprintf(out, "\n%s%s%s\n", Bold, text, Reset)
	} else {
		fmt.Fprintf(out, "\n%s\n", text)
	}
	fmt.Fprintln(out, strings.Repeat("=", len(text)))
}

// Label prints a label and value pair
func Label(label, value string) {
	out, _, disabled := writers()
	if colorEnabled(out, disabled) {
		fmt.Fprintf(out, "   %s%-12s%s %s\n", Dim, label+":", Reset, value)
		return
	}
	fmt.Fprintf(out, "   %-12s %s\n", label+":", value)
}

// PrintJSON prints data as indented JSON to the normal writer.
func PrintJSON(data interface{}) error {
	out, _, _ := writers()
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
