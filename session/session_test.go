package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/session-env/env"
	"github.com/jongio/session-env/procutil"
	"github.com/jongio/session-env/shellutil"
)

type fakeProcess struct {
	pid    int32
	user   string
	name   string
	env    []string
	envErr error
}

func (p *fakeProcess) PID() int32 { return p.pid }

func (p *fakeProcess) Username(context.Context) (string, error) { return p.user, nil }

func (p *fakeProcess) Name(context.Context) (string, error) { return p.name, nil }

func (p *fakeProcess) Environ(context.Context) ([]string, error) { return p.env, p.envErr }

type fakeTable []procutil.Process

func (t fakeTable) Processes(context.Context) ([]procutil.Process, error) { return t, nil }

type wrapQuoter struct{}

func (wrapQuoter) Quote(_ context.Context, s string) (string, error) { return "'" + s + "'", nil }

var sessionEnviron = []string{
	"HOME=/home/alice",
	"SSH_AUTH_SOCK=/tmp/ssh-agent.sock",
	"DBUS_SESSION_BUS_ADDRESS=unix:path=/tmp/bus",
	"DISPLAY=:0",
}

func deps(procs ...procutil.Process) Deps {
	return Deps{
		Table: fakeTable(procs),
		FindByPID: func(_ context.Context, pid int) (procutil.Process, error) {
			for _, p := range procs {
				if int(p.PID()) == pid {
					return p, nil
				}
			}
			return nil, errors.New("process not found")
		},
		Formatter: &shellutil.Formatter{Fish: wrapQuoter{}},
	}
}

func options(dialect shellutil.Dialect) Options {
	return Options{
		User:      "alice",
		Target:    "mate-session",
		Mode:      procutil.MatchExact,
		Variables: env.DefaultVariables(),
		Dialect:   dialect,
	}
}

func TestRunPosixSingleSession(t *testing.T) {
	var out bytes.Buffer
	d := deps(
		&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: sessionEnviron},
		&fakeProcess{pid: 11, user: "bob", name: "mate-session", env: sessionEnviron},
		&fakeProcess{pid: 12, user: "alice", name: "mate-panel"},
	)

	require.NoError(t, Run(context.Background(), options(shellutil.DialectPosix), d, &out))

	want := "export DISPLAY=:0\n" +
		"export DBUS_SESSION_BUS_ADDRESS=unix:path=/tmp/bus\n" +
		"export SSH_AUTH_SOCK=/tmp/ssh-agent.sock\n"
	assert.Equal(t, want, out.String())
}

func TestRunFishSingleSession(t *testing.T) {
	var out bytes.Buffer
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: sessionEnviron})

	require.NoError(t, Run(context.Background(), options(shellutil.DialectFish), d, &out))

	want := "set -x 'DISPLAY' ':0'\n" +
		"set -x 'DBUS_SESSION_BUS_ADDRESS' 'unix:path=/tmp/bus'\n" +
		"set -x 'SSH_AUTH_SOCK' '/tmp/ssh-agent.sock'\n"
	assert.Equal(t, want, out.String())
}

func TestRunNoSession(t *testing.T) {
	var out bytes.Buffer
	d := deps(&fakeProcess{pid: 11, user: "bob", name: "mate-session", env: sessionEnviron})

	err := Run(context.Background(), options(shellutil.DialectPosix), d, &out)
	assert.ErrorIs(t, err, procutil.ErrNoSession)
	assert.Empty(t, out.String())
}

func TestRunAmbiguousSession(t *testing.T) {
	var out bytes.Buffer
	d := deps(
		&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: sessionEnviron},
		&fakeProcess{pid: 20, user: "alice", name: "mate-session", env: sessionEnviron},
	)

	err := Run(context.Background(), options(shellutil.DialectPosix), d, &out)
	assert.ErrorIs(t, err, procutil.ErrAmbiguousSession)
	assert.Empty(t, out.String())
}

func TestRunSubstringMatch(t *testing.T) {
	var out bytes.Buffer
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "gnome-session-binary", env: sessionEnviron})

	opts := options(shellutil.DialectPosix)
	opts.Target = "gnome-session"

	err := Run(context.Background(), opts, d, &out)
	assert.ErrorIs(t, err, procutil.ErrNoSession, "exact match must not accept a longer name")

	opts.Mode = procutil.MatchSubstring
	require.NoError(t, Run(context.Background(), opts, d, &out))
	assert.Contains(t, out.String(), "export DISPLAY=:0\n")
}

func TestRunMissingVariable(t *testing.T) {
	var out bytes.Buffer
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: []string{"DISPLAY=:0"}})

	err := Run(context.Background(), options(shellutil.DialectPosix), d, &out)

	var missing *env.MissingVariableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "DBUS_SESSION_BUS_ADDRESS", missing.Name)
	assert.Empty(t, out.String(), "no line may be printed when a variable is missing")
}

func TestRunSkipMissing(t *testing.T) {
	var out bytes.Buffer
	var warnings []string
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: []string{"DISPLAY=:0"}})
	d.Warn = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	opts := options(shellutil.DialectPosix)
	opts.SkipMissing = true

	require.NoError(t, Run(context.Background(), opts, d, &out))
	assert.Equal(t, "export DISPLAY=:0\n", out.String())
	assert.Equal(t, []string{
		"DBUS_SESSION_BUS_ADDRESS is not set in the session environment, skipped",
		"SSH_AUTH_SOCK is not set in the session environment, skipped",
	}, warnings)
}

func TestRunOrderFollowsVariableList(t *testing.T) {
	var out bytes.Buffer
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: sessionEnviron})

	opts := options(shellutil.DialectPosix)
	opts.Variables = []string{"SSH_AUTH_SOCK", "HOME", "DISPLAY"}

	require.NoError(t, Run(context.Background(), opts, d, &out))
	assert.Equal(t, "export SSH_AUTH_SOCK=/tmp/ssh-agent.sock\nexport HOME=/home/alice\nexport DISPLAY=:0\n", out.String())
}

func TestRunEnvironError(t *testing.T) {
	var out bytes.Buffer
	denied := errors.New("permission denied")
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", envErr: denied})

	err := Run(context.Background(), options(shellutil.DialectPosix), d, &out)
	assert.ErrorIs(t, err, denied)
	assert.Empty(t, out.String())
}

func TestRunByPID(t *testing.T) {
	var out bytes.Buffer
	d := deps(
		&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: []string{"DISPLAY=:1"}},
		&fakeProcess{pid: 20, user: "alice", name: "mate-session", env: []string{"DISPLAY=:2"}},
	)

	opts := options(shellutil.DialectJSON)
	opts.PID = 20
	opts.Variables = []string{"DISPLAY"}

	require.NoError(t, Run(context.Background(), opts, d, &out))
	assert.JSONEq(t, `{"DISPLAY": ":2"}`, out.String())
}

func TestRunValidation(t *testing.T) {
	d := deps()

	tests := map[string]func(*Options){
		"no user":        func(o *Options) { o.User = "" },
		"no target":      func(o *Options) { o.Target = "" },
		"bad dialect":    func(o *Options) { o.Dialect = "tcsh" },
		"no variables":   func(o *Options) { o.Variables = nil },
		"negative pid":   func(o *Options) { o.PID = -1 },
		"duplicate vars": func(o *Options) { o.Variables = []string{"DISPLAY", "DISPLAY"} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			opts := options(shellutil.DialectPosix)
			mutate(&opts)
			assert.Error(t, Run(context.Background(), opts, d, &out))
			assert.Empty(t, out.String())
		})
	}
}

func TestCurrentUser(t *testing.T) {
	user, err := CurrentUser(func(key string) string {
		if key == "USER" {
			return "alice"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	_, err = CurrentUser(func(string) string { return "" })
	assert.ErrorIs(t, err, ErrUserUnset)
}

func TestRunRejectsNonIdentifierNames(t *testing.T) {
	d := deps(&fakeProcess{pid: 10, user: "alice", name: "mate-session", env: []string{"A B=x", "1X=y"}})

	opts := options(shellutil.DialectPosix)
	opts.Variables = []string{"A B", "1X"}

	var out bytes.Buffer
	assert.Error(t, Run(context.Background(), opts, d, &out))
	assert.Empty(t, out.String())
}
