// Package session ties the locator, the environment extractor and the shell
// formatter together into one run of session-env.
//
// A run is strictly linear:
//
//	locate (procutil.Find) -> gate (procutil.SelectOne) -> extract (procutil.Environ)
//	  -> pick variables (env.Lookup) -> render (shellutil.Formatter.Render)
//
// Every failure is fatal and nothing is written to the output unless all steps
// succeeded.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jongio/session-env/cliout"
	"github.com/jongio/session-env/env"
	"github.com/jongio/session-env/logutil"
	"github.com/jongio/session-env/procutil"
	"github.com/jongio/session-env/shellutil"
)

// EnvUser is the environment variable naming the invoking user.
const EnvUser = "USER"

// ErrUserUnset is returned when USER is unset or empty.
var ErrUserUnset = errors.New("USER is not set")

// Options fully describes one run. It is built once from the command line and
// the config file and never changes afterwards.
type Options struct {
	// User owns the session process.
	User string
	// Target is the process name to look for. Ignored when PID is set.
	Target string
	// PID selects a process directly, bypassing the name lookup.
	PID int
	// Mode is how Target is compared with process names.
	Mode procutil.MatchMode
	// Variables are exported in this order.
	Variables []string
	// Dialect selects the output syntax.
	Dialect shellutil.Dialect
	// SkipMissing leaves out variables the session does not define instead of failing.
	SkipMissing bool
}

// Validate checks options that do not depend on the process table.
func (o Options) Validate() error {
	if o.PID == 0 {
		if o.User == "" {
			return ErrUserUnset
		}
		if o.Target == "" {
			return errors.New("process name must not be empty")
		}
	}
	if o.PID < 0 {
		return fmt.Errorf("invalid PID %d", o.PID)
	}
	if _, err := shellutil.ParseDialect(o.Dialect.String()); err != nil {
		return err
	}
	return env.ValidateNames(o.Variables)
}

// Deps are the collaborators of a run, replaceable in tests.
type Deps struct {
	Table     procutil.Table
	FindByPID func(ctx context.Context, pid int) (procutil.Process, error)
	Formatter *shellutil.Formatter
	// Warn reports variables left out by SkipMissing. Nil discards them.
	Warn func(format string, args ...any)
}

// DefaultDeps returns the host process table and the fish-backed formatter.
func DefaultDeps() Deps {
	return Deps{
		Table:     procutil.SystemTable{},
		FindByPID: procutil.FindByPID,
		Formatter: shellutil.NewFormatter(),
		Warn:      cliout.Warning,
	}
}

// CurrentUser returns the invoking user's name from getenv(USER).
// The OS user database is not consulted.
func CurrentUser(getenv func(string) string) (string, error) {
	user := getenv(EnvUser)
	if user == "" {
		return "", ErrUserUnset
	}
	return user, nil
}

// Run locates the session, reads its environment and writes the export
// statements to w.
func Run(ctx context.Context, opts Options, deps Deps, w io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	proc, err := locate(ctx, opts, deps)
	if err != nil {
		return err
	}

	log := logutil.NewLogger("session").WithPID(proc.PID())

	sessionEnv, err := procutil.Environ(ctx, proc)
	if err != nil {
		return err
	}

	vars, err := env.Lookup(sessionEnv, opts.Variables, opts.SkipMissing)
	if err != nil {
		return err
	}

	log.Debug("rendering", "dialect", opts.Dialect.String(), "variables", len(vars))
	if err := deps.Formatter.Render(ctx, w, opts.Dialect, vars); err != nil {
		return err
	}

	// Warn only after a successful render; a failed run prints one line.
	if deps.Warn != nil {
		for _, name := range skipped(opts.Variables, vars) {
			deps.Warn("%s is not set in the session environment, skipped", name)
		}
	}
	return nil
}

// skipped returns the names missing from vars, in request order.
func skipped(names []string, vars []env.Var) []string {
	found := make(map[string]bool, len(vars))
	for _, v := range vars {
		found[v.Name] = true
	}
	var missing []string
	for _, name := range names {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func locate(ctx context.Context, opts Options, deps Deps) (procutil.Process, error) {
	if opts.PID > 0 {
		return deps.FindByPID(ctx, opts.PID)
	}

	matches, err := procutil.Find(ctx, deps.Table, procutil.Filter{
		User: opts.User,
		Name: opts.Target,
		Mode: opts.Mode,
	})
	if err != nil {
		return nil, err
	}
	return procutil.SelectOne(matches)
}
