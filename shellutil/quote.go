// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/jongio/session-env/cmdutil"
	"github.com/jongio/session-env/logutil"
	"github.com/jongio/session-env/pathutil"
)

// ErrFishNotFound is returned when no fish executable can be located.
var ErrFishNotFound = errors.New("fish not found")

// fishEscapeScript prints its first argument escaped for the fish parser.
const fishEscapeScript = `string escape -- "$argv[1]"`

// fishNoConfig keeps config.fish from running, and from printing into the
// escaped value. Requires fish 3.3 or later.
const fishNoConfig = "--no-config"

// Quoter quotes a string for one shell dialect.
type Quoter interface {
	Quote(ctx context.Context, s string) (string, error)
}

// PosixQuote quotes s for a POSIX shell.
func PosixQuote(s string) string {
	return shellescape.Quote(s)
}

// FishQuoter quotes strings by asking fish's own `string escape`.
type FishQuoter struct {
	// Binary is the fish executable. Empty means look it up on PATH and in
	// common install directories.
	Binary string
}

// Quote runs fish to escape s.
func (q FishQuoter) Quote(ctx context.Context, s string) (string, error) {
	bin := q.Binary
	if bin == "" {
		bin = pathutil.Lookup(ShellFish)
		if bin == "" {
			return "", fmt.Errorf("%w: %s", ErrFishNotFound, pathutil.GetInstallSuggestion(ShellFish))
		}
	}

	out, err := cmdutil.Output(ctx, bin, fishNoConfig, "-c", fishEscapeScript, s)
	if err != nil {
		return "", fmt.Errorf("fish quoting failed: %w", err)
	}

	quoted := strings.TrimSuffix(string(out), "\n")
	if quoted == "" {
		// string escape always prints at least '' for an empty argument.
		return "", fmt.Errorf("fish quoting failed: %s printed nothing", bin)
	}

	logutil.Debug("fish quoted value", "binary", bin, "length", len(s))
	return quoted, nil
}
