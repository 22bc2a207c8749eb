package cli

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the planned bump and changelog section without releasing",
	Long: `Classify commits since the last release marker and print the planned
version bump and rendered changelog section. Equivalent to
'relbump release --dry-run'. Nothing is written or committed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cmd)
		if err != nil {
			return err
		}
		return runner.Run(repoFlag, true)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
