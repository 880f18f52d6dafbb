// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrInsecureFilePermissions indicates a file is writable by group or others.
var ErrInsecureFilePermissions = errors.New("insecure file permissions")

// writableByOthers are the mode bits that let another user modify a file.
const writableByOthers os.FileMode = 0o022

// ValidateFilePermissions checks that path is a regular file writable only by
// its owner. A group- or world-writable file yields ErrInsecureFilePermissions
// wrapped with the offending mode.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	if perm := info.Mode().Perm(); perm&writableByOthers != 0 {
		return fmt.Errorf("%w: %s has mode %04o (must not be group or world writable)", ErrInsecureFilePermissions, path, perm)
	}

	return nil
}
