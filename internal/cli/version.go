package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relbump/internal/build"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "relbump %s\n", build.Version)
		fmt.Fprintf(out, "  commit:  %s\n", build.Commit)
		fmt.Fprintf(out, "  built:   %s\n", build.BuildDate)
		fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
