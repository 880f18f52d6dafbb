// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	if toolName == "" {
		return ""
	}

	path, err := exec.LookPath(toolName)
	if err != nil {
		return ""
	}
	return path
}

// systemSearchPaths lists directories checked when a tool is not on PATH.
func systemSearchPaths() []string {
	homeDir, _ := os.UserHomeDir()
	paths := []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/opt/homebrew/bin",
		"/run/current-system/sw/bin",
	}
	if homeDir != "" {
		paths = append(paths,
			filepath.Join(homeDir, ".local", "bin"),
			filepath.Join(homeDir, ".nix-profile", "bin"),
		)
	}
	return paths
}

// SearchToolInSystemPath searches for a tool in common install directories.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	if toolName == "" {
		return ""
	}

	for _, dir := range systemSearchPaths() {
		fullPath := filepath.Join(dir, toolName)
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode().Perm()&0o111 != 0 {
			return fullPath
		}
	}
	return ""
}

// Lookup returns the first executable named toolName found on PATH or in a
// well-known install directory, or "" if there is none.
func Lookup(toolName string) string {
	if path := FindToolInPath(toolName); path != "" {
		return path
	}
	return SearchToolInSystemPath(toolName)
}

// GetInstallSuggestion returns a suggestion for how to install a missing tool.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"fish":     "Install from https://fishshell.com/ or your distribution's package manager",
		"procstat": "procstat(1) ships with the FreeBSD base system",
	}

	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}
