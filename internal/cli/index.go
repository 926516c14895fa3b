package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
	"github.com/custodia-labs/gh-docs-index/internal/index"
)

var (
	flagIndexIn  string
	flagIndexOut string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index from an existing document file",
	Long: `Re-runs only the index stage over a previously fetched document
file. Useful for rebuilding after a boost change without touching the
network.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagIndexIn, "in", "out/"+DocsFileName, "input document file")
	indexCmd.Flags().StringVar(&flagIndexOut, "out", "out/"+IndexFileName, "output index file")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	documents, err := docs.Load(flagIndexIn)
	if err != nil {
		return err
	}

	builder, err := index.NewBuilder(cfg.Boosts)
	if err != nil {
		return err
	}

	idx := builder.Build(documents)
	if err := idx.Write(flagIndexOut); err != nil {
		return err
	}

	cmd.Printf("Indexed %d documents\n", idx.DocCount())
	return nil
}
