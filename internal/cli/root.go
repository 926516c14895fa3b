// Package cli implements the gh-docs-index command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gh-docs-index/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "gh-docs-index",
	Short: "Build a search index over GitHub issues and discussions",
	Long: `gh-docs-index fetches issue and discussion metadata for a single
repository and builds a compact full-text search index (title, excerpt,
labels) for consumption by a static docs site.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"path to the TOML config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
