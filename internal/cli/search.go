package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gh-docs-index/internal/index"
)

var (
	flagSearchIndex string
	flagSearchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Query a built index",
	Long: `Runs a query against a previously built index file and prints the
ranked document references. Intended for verifying an index before it
is published.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchIndex, "index", "out/"+IndexFileName, "index file to query")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 10, "maximum results to print")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	idx, err := index.Read(flagSearchIndex)
	if err != nil {
		return err
	}

	analyzer, err := index.NewAnalyzer()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := index.Search(idx, analyzer, query, flagSearchLimit)
	if len(results) == 0 {
		cmd.Println("No results.")
		return nil
	}

	for _, r := range results {
		cmd.Printf("%-12s %.4f\n", r.Ref, r.Score)
	}
	return nil
}
