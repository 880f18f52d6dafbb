// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// Logs always go to stderr so that stdout carries nothing but the shell
// statements session-env prints. A normal run only logs at debug level, which
// is off by default.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Debug records are dropped unless debug mode is on
//	logutil.Debug("process table scanned", "matched", n)
//
//	// Component loggers tag every record with component=<name>
//	log := logutil.NewLogger("locator").WithPID(pid)
//	log.Debug("environment read", "entries", len(env))
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger (the --debug flag)
//   - Set SESSION_ENV_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger (--log-format json), logs are
// output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"DEBUG","msg":"process matched","component":"locator","pid":2211}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2024-01-15T10:30:00Z level=DEBUG msg="process matched" component=locator pid=2211
package logutil
