// Package pathutil finds helper executables that session-env shells out to.
//
// Lookup checks PATH first and then a short list of well-known install
// directories, so a helper installed by Homebrew or into ~/.local/bin is still
// found when session-env runs from a minimal environment (cron, a systemd unit,
// a display manager hook). GetInstallSuggestion returns a hint for the error
// message when a helper is missing.
package pathutil
