// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"fmt"
	"strings"
)

// Dialect selects the syntax of the rendered output.
type Dialect string

const (
	// DialectFish renders fish `set -x` statements.
	DialectFish Dialect = "fish"

	// DialectPosix renders POSIX sh `export` statements.
	DialectPosix Dialect = "posix"

	// DialectJSON renders a JSON object of name to value.
	DialectJSON Dialect = "json"
)

// Shell binaries invoked as helpers.
const (
	// ShellFish is the fish executable name.
	ShellFish = "fish"
)

// Dialects returns the accepted dialect names in help order.
func Dialects() []string {
	return []string{string(DialectFish), string(DialectPosix), string(DialectJSON)}
}

// ParseDialect parses a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectFish, DialectPosix, DialectJSON:
		return d, nil
	default:
		return "", fmt.Errorf("invalid shell %q (valid options: %s)", s, strings.Join(Dialects(), ", "))
	}
}

// String returns the dialect name.
func (d Dialect) String() string {
	return string(d)
}
