// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Environment variable names for logging configuration.
const (
	// EnvDebug enables debug logging when set to "true".
	EnvDebug = "SESSION_ENV_DEBUG"
)

// Log output formats accepted by ParseFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	debugEnabled           = false
	isStructured           = false
	outputWriter io.Writer = os.Stderr
)

func init() {
	SetupLogger(false, false)
}

// SetupLogger configures the global logger to write to stderr.
//
// Parameters:
//   - debug: When true, enables debug-level logging
//   - structured: When true, outputs JSON-formatted logs; otherwise uses text format
//
// Debug logging is also enabled when SESSION_ENV_DEBUG=true.
// This function is safe for concurrent use.
func SetupLogger(debug, structured bool) {
	SetupLoggerWithWriter(os.Stderr, debug, structured)
}

// SetupLoggerWithWriter configures the logger with a custom writer.
// This is useful for testing or redirecting logs.
// This function is safe for concurrent use.
func SetupLoggerWithWriter(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	outputWriter = w
	debugEnabled = debug || os.Getenv(EnvDebug) == "true"
	isStructured = structured
	rebuildLocked()
}

// rebuildLocked recreates the global logger. Caller must hold mu.Lock().
func rebuildLocked() {
	level := slog.LevelInfo
	if debugEnabled {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isStructured {
		handler = slog.NewJSONHandler(outputWriter, opts)
	} else {
		handler = slog.NewTextHandler(outputWriter, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// ParseFormat reports whether a --log-format value selects structured output.
// Valid values are "text" and "json"; anything else is rejected.
func ParseFormat(s string) (structured bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatText, "":
		return false, true
	case FormatJSON:
		return true, true
	default:
		return false, false
	}
}

// IsDebugEnabled returns true if debug logging is enabled.
// This function is safe for concurrent use.
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugEnabled
}

// Debug logs a debug message with optional key-value pairs.
// Debug messages are only logged when debug mode is enabled.
//
// Example:
//
//	logutil.Debug("quoting value", "dialect", "fish")
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Logger returns the underlying slog.Logger for advanced usage.
// This function is safe for concurrent use.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}
