package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/session-env/cliout"
)

// NewCommand creates a version command that displays build info.
func NewCommand(info *Info) *cobra.Command {
	var (
		quiet  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if asJSON {
				cliout.SetWriters(out, nil)
				return cliout.PrintJSON(info)
			}

			if quiet {
				_, err := fmt.Fprintln(out, info.Version)
				return err
			}

			cliout.SetWriters(out, nil)
			cliout.Header(fmt.Sprintf("%s Version", info.Name))
			cliout.Label("Version", info.Version)
			cliout.Label("Build Date", info.BuildDate)
			cliout.Label("Git Commit", info.GitCommit)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")
	return cmd
}
