// Package version holds build information for session-env and the `version`
// subcommand that prints it.
package version

import "fmt"

// Info holds version information for the binary.
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	Name      string `json:"name"`
}

// Build metadata, set via -ldflags "-X github.com/jongio/session-env/version.Version=...".
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// New creates an Info for name from the linked build metadata.
func New(name string) *Info {
	return &Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		Name:      name,
	}
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
