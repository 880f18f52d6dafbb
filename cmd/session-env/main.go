// Command session-env prints the graphical session's DISPLAY, D-Bus and SSH
// agent variables as shell statements, so that a terminal started outside the
// session (an SSH login, a tmux server) can join it:
//
//	eval "$(session-env posix)"
//	session-env fish | source
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jongio/session-env/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], session.DefaultDeps(), os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
