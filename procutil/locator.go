// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jongio/session-env/env"
	"github.com/jongio/session-env/logutil"
)

// MatchMode selects how a process name is compared with the target name.
type MatchMode int

const (
	// MatchExact requires the process name to equal the target.
	MatchExact MatchMode = iota
	// MatchSubstring requires the process name to contain the target.
	MatchSubstring
)

// Match mode names accepted by ParseMatchMode.
const (
	matchExactName     = "exact"
	matchSubstringName = "substring"
)

var (
	// ErrNoSession is returned by SelectOne when nothing matched.
	ErrNoSession = errors.New("no session found")
	// ErrAmbiguousSession is returned by SelectOne when several processes matched.
	ErrAmbiguousSession = errors.New("more than one session found")
)

// ParseMatchMode parses "exact" or "substring" (case-insensitive).
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case matchExactName:
		return MatchExact, nil
	case matchSubstringName:
		return MatchSubstring, nil
	default:
		return MatchExact, fmt.Errorf("invalid match mode: %q (valid options: %s, %s)", s, matchExactName, matchSubstringName)
	}
}

// String returns the flag spelling of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return matchExactName
	case MatchSubstring:
		return matchSubstringName
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// MatchModes lists the accepted match mode names.
func MatchModes() []string {
	return []string{matchExactName, matchSubstringName}
}

// Filter describes which processes Find keeps.
type Filter struct {
	User string
	Name string
	Mode MatchMode
}

// matches reports whether a process name satisfies the filter.
func (f Filter) matches(name string) bool {
	switch f.Mode {
	case MatchExact:
		return name == f.Name
	case MatchSubstring:
		return strings.Contains(name, f.Name)
	default:
		return false
	}
}

// Find returns every process in table owned by filter.User whose name matches.
// Processes whose owner or name cannot be read are skipped.
// The only error is a failure to enumerate the table itself.
func Find(ctx context.Context, table Table, filter Filter) ([]Process, error) {
	log := logutil.NewLogger("locator").WithFields("user", filter.User, "target", filter.Name, "match", filter.Mode.String())

	procs, err := table.Processes(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Process
	for _, p := range procs {
		username, err := p.Username(ctx)
		if err != nil {
			log.Debug("skipping process with unreadable owner", "pid", p.PID(), "error", err)
			continue
		}
		if username != filter.User {
			continue
		}

		name, err := p.Name(ctx)
		if err != nil {
			log.Debug("skipping process with unreadable name", "pid", p.PID(), "error", err)
			continue
		}

		if filter.matches(name) {
			log.Debug("process matched", "pid", p.PID(), "name", name)
			matches = append(matches, p)
		}
	}

	log.Debug("process table scanned", "scanned", len(procs), "matched", len(matches))
	return matches, nil
}

// SelectOne enforces exactly one match.
func SelectOne(matches []Process) (Process, error) {
	switch len(matches) {
	case 0:
		return nil, ErrNoSession
	case 1:
		return matches[0], nil
	default:
		pids := make([]string, 0, len(matches))
		for _, p := range matches {
			pids = append(pids, fmt.Sprintf("%d", p.PID()))
		}
		return nil, fmt.Errorf("%w (%d processes: %s)", ErrAmbiguousSession, len(matches), strings.Join(pids, ", "))
	}
}

// Environ reads the environment of p as a map.
func Environ(ctx context.Context, p Process) (map[string]string, error) {
	entries, err := p.Environ(ctx)
	if err != nil {
		if !IsProcessRunning(int(p.PID())) {
			return nil, fmt.Errorf("error getting environment of process %d: process has exited: %w", p.PID(), err)
		}
		return nil, fmt.Errorf("error getting environment of process %d: %w", p.PID(), err)
	}

	logutil.NewLogger("extractor").Debug("environment read", "pid", p.PID(), "entries", len(entries))
	return env.SliceToMap(entries), nil
}
