package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/session-env/cliout"
	"github.com/jongio/session-env/config"
	"github.com/jongio/session-env/logutil"
	"github.com/jongio/session-env/procutil"
	"github.com/jongio/session-env/session"
	"github.com/jongio/session-env/shellutil"
	"github.com/jongio/session-env/version"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const appName = "session-env"

// usageError marks errors caused by a malformed command line.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

type rootFlags struct {
	match       string
	pid         int
	vars        []string
	skipMissing bool
	debug       bool
	logFormat   string
	configPath  string
	noColor     bool
}

func newRootCmd(deps session.Deps, getenv func(string) string) *cobra.Command {
	flags := rootFlags{}

	cmd := &cobra.Command{
		Use:   appName + " <" + strings.Join(shellutil.Dialects(), "|") + "> [process-name]",
		Short: "Print the session environment of a running desktop session as shell statements",
		Long: `Print the session environment of a running desktop session as shell statements.

session-env finds the one process owned by $USER whose name matches
process-name (default: mate-session), reads its environment and prints
DISPLAY, DBUS_SESSION_BUS_ADDRESS and SSH_AUTH_SOCK for the chosen shell.
Nothing is printed unless every variable could be rendered.`,
		Example: `  eval "$(session-env posix)"
  session-env fish | source
  session-env --match substring posix gnome-session
  session-env --pid 1234 --var DISPLAY --var WAYLAND_DISPLAY json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			if _, err := shellutil.ParseDialect(args[0]); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return shellutil.Dialects(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			structured, ok := logutil.ParseFormat(flags.logFormat)
			if !ok {
				return usageErrorf("invalid log format %q (valid options: %s, %s)", flags.logFormat, logutil.FormatText, logutil.FormatJSON)
			}
			logutil.SetupLoggerWithWriter(cmd.ErrOrStderr(), flags.debug, structured)
			cliout.SetWriters(nil, cmd.ErrOrStderr())
			if flags.noColor {
				cliout.NoColor()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, flags, args, getenv)
			if err != nil {
				return err
			}
			logutil.Debug("options resolved",
				"user", opts.User,
				"target", opts.Target,
				"pid", opts.PID,
				"match", opts.Mode.String(),
				"dialect", opts.Dialect.String(),
			)
			return session.Run(cmd.Context(), opts, deps, cmd.OutOrStdout())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags.register(cmd.Flags())
	flags.registerPersistent(cmd.PersistentFlags())

	_ = cmd.RegisterFlagCompletionFunc("match", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return procutil.MatchModes(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(version.NewCommand(version.New(appName)))

	return cmd
}

func (f *rootFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.match, "match", "", "How process-name is compared: "+strings.Join(procutil.MatchModes(), " or ")+" (default exact)")
	fs.IntVar(&f.pid, "pid", 0, "Read the environment of this PID instead of searching by name")
	fs.StringArrayVar(&f.vars, "var", nil, "Variable to export, repeatable; replaces the default list")
	fs.BoolVar(&f.skipMissing, "skip-missing", false, "Leave out variables the session does not define instead of failing")
	fs.StringVar(&f.configPath, "config", "", "Path to the config file (default $"+config.EnvConfigPath+" or <config dir>/session-env/config.yaml)")
}

// registerPersistent adds the flags shared with subcommands.
func (f *rootFlags) registerPersistent(fs *pflag.FlagSet) {
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging on stderr")
	fs.StringVar(&f.logFormat, "log-format", logutil.FormatText, "Log format: text or json")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored diagnostics")
}

// buildOptions merges the config file, the flags and the positional
// arguments into the options of one run. Flags win over the file.
func buildOptions(cmd *cobra.Command, flags rootFlags, args []string, getenv func(string) string) (session.Options, error) {
	dialect, err := shellutil.ParseDialect(args[0])
	if err != nil {
		return session.Options{}, &usageError{err: err}
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return session.Options{}, err
	}

	user, err := session.CurrentUser(getenv)
	if err != nil {
		return session.Options{}, err
	}

	matchName := cfg.Match
	if cmd.Flags().Changed("match") {
		matchName = flags.match
	}
	mode, err := procutil.ParseMatchMode(matchName)
	if err != nil {
		return session.Options{}, &usageError{err: err}
	}

	if cmd.Flags().Changed("pid") && flags.pid <= 0 {
		return session.Options{}, usageErrorf("invalid PID %d", flags.pid)
	}
	if cmd.Flags().Changed("pid") && len(args) > 1 {
		return session.Options{}, usageErrorf("--pid cannot be combined with a process name (%s)", args[1])
	}

	opts := session.Options{
		User:        user,
		Target:      cfg.Process,
		PID:         flags.pid,
		Mode:        mode,
		Variables:   cfg.Variables,
		Dialect:     dialect,
		SkipMissing: cfg.SkipMissing,
	}
	if len(args) > 1 {
		opts.Target = args[1]
	}
	if len(flags.vars) > 0 {
		opts.Variables = flags.vars
	}
	if cmd.Flags().Changed("skip-missing") {
		opts.SkipMissing = flags.skipMissing
	}

	if err := opts.Validate(); err != nil {
		return session.Options{}, &usageError{err: err}
	}
	return opts, nil
}

// execute runs the command line and returns the process exit status.
// On failure exactly one diagnostic line is written to stderr.
func execute(ctx context.Context, args []string, deps session.Deps, getenv func(string) string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(deps, getenv)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	cliout.SetWriters(nil, stderr)
	cliout.Error("%v", err)

	var usage *usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return exitError
}
