package cli

import (
	"github.com/spf13/cobra"

	"github.com/raveheart1/relbump/internal/config"
	"github.com/raveheart1/relbump/internal/release"
)

var releaseDryRun bool

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Classify commits, bump the version, and commit the release",
	Long: `Classify conventional commits since the last release marker, bump the
version in the metadata file accordingly, prepend the new section to the
changelog, and create the release commit.

Exits 0 when there is nothing to release ("no relevant changes") and 1
when the metadata file is missing.

Examples:
  relbump release              # Full release run
  relbump release --dry-run    # Decide and render, write nothing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}
		return runner.Run(repoFlag, releaseDryRun)
	},
}

func init() {
	releaseCmd.Flags().BoolVar(&releaseDryRun, "dry-run", false, "Print the bump decision and section without writing")
	rootCmd.AddCommand(releaseCmd)
}

// newRunner loads configuration for the target repository and builds a
// release runner writing to the command's stdout.
func newRunner(cmd *cobra.Command) (*release.Runner, error) {
	dir := repoFlag
	if dir == "" {
		dir = "."
	}
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Dir:           dir,
		Path:          configFlag,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return release.NewRunner(cfg, cmd.OutOrStdout()), nil
}
