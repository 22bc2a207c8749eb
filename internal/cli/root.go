// Package cli wires the relbump commands together with cobra.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relbump/internal/errors"
	"github.com/raveheart1/relbump/internal/gitrepo"
)

var (
	configFlag  string
	repoFlag    string
	debugFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "relbump",
	Short: "Semantic-version and changelog automation from conventional commits",
	Long: `relbump derives the next semantic version and changelog entries from
conventional-commit messages since the last release marker, then persists
the updated metadata and changelog and creates the release commit.

It is designed as a one-shot helper for CI pipelines: run it after merging
to the release branch and it decides whether (and how far) to bump.`,
	Example: `  # Perform a release in the current repository
  relbump release

  # See what would happen without touching anything
  relbump preview

  # Release a repository elsewhere on disk
  relbump release --repo /path/to/checkout`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
		if debugFlag {
			logger := log.New(cmd.ErrOrStderr(), "", log.Ltime)
			gitrepo.SetDebugLogger(logger.Printf)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: .relbump.yml at the repo root)")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Path to the git repository (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute runs the root command. Structured errors are printed with their
// remediation steps; the caller maps a non-nil return to exit status 1.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		fmt.Fprint(os.Stderr, errors.FormatError(cliErr))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
