// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import "log/slog"

// ComponentLogger tags records with the part of session-env that emitted
// them (locator, extractor, session) plus any attributes added by With*.
//
// The global logger is looked up on every call, so a ComponentLogger created
// before SetupLogger still honors the final level, format and writer.
type ComponentLogger struct {
	component string
	attrs     []any
}

// NewLogger creates a logger scoped to a named component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{component: component}
}

// WithPID returns a copy that also records the target process.
func (l *ComponentLogger) WithPID(pid int32) *ComponentLogger {
	return l.WithFields("pid", pid)
}

// WithFields returns a copy with extra alternating key-value attributes.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	attrs := make([]any, 0, len(l.attrs)+len(fields))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, fields...)
	return &ComponentLogger{component: l.component, attrs: attrs}
}

// Component returns the component name.
func (l *ComponentLogger) Component() string {
	return l.component
}

func (l *ComponentLogger) slogger() *slog.Logger {
	return Logger().With("component", l.component).With(l.attrs...)
}

func (l *ComponentLogger) Debug(msg string, args ...any) {
	l.slogger().Debug(msg, args...)
}
