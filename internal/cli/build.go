package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gh-docs-index/internal/config"
	"github.com/custodia-labs/gh-docs-index/internal/docs"
	"github.com/custodia-labs/gh-docs-index/internal/github"
	"github.com/custodia-labs/gh-docs-index/internal/index"
	"github.com/custodia-labs/gh-docs-index/internal/logger"
	"github.com/custodia-labs/gh-docs-index/internal/state"
)

// Output file names under the out directory. The publishing step copies
// both to the static host under /latest/.
const (
	DocsFileName  = "github-docs.json"
	IndexFileName = "github-lunr-index.json"
)

// TokenEnvVar is the environment variable holding the GitHub token.
const TokenEnvVar = "GH_TOKEN"

var (
	flagRepo string
	flagOut  string
	flagFull bool
	flagMax  int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch issues and discussions and build the search index",
	Long: `Runs the nightly job end to end: fetches issue and discussion
metadata for the configured repository, writes the document file, and
builds the serialized search index next to it.

Requires a GitHub token in the GH_TOKEN environment variable.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagRepo, "repo", "", "repository as owner/name")
	buildCmd.Flags().StringVar(&flagOut, "out", "", "output directory")
	buildCmd.Flags().BoolVar(&flagFull, "full", false, "ignore the cached since watermark")
	buildCmd.Flags().IntVar(&flagMax, "max", 0, "limit total items per source (testing)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	owner, name, err := splitRepo(cfg.Repo)
	if err != nil {
		return err
	}

	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return fmt.Errorf("%s environment variable required (PAT or Actions token)", TokenEnvVar)
	}

	ctx := context.Background()
	client := github.NewClient(ctx, token)

	store, err := state.NewStore(cfg.CacheDir)
	if err != nil {
		return err
	}

	var since time.Time
	if !flagFull {
		since = store.Load().Since
	}

	prior := store.LoadSnapshot()
	logger.Info("seed: prior=%d since=%s", len(prior), formatSince(since))

	logger.Section("fetch")
	issues, err := github.FetchIssues(ctx, client, owner, name, since, cfg.MaxItems)
	if err != nil {
		return fmt.Errorf("fetch issues: %w", err)
	}
	discussions, err := github.FetchDiscussions(ctx, client, owner, name, since, cfg.MaxItems)
	if err != nil {
		return fmt.Errorf("fetch discussions: %w", err)
	}
	logger.Info("fetched: issues=%d discussions=%d", len(issues), len(discussions))

	fetched := append(issues, discussions...)
	documents := fetched
	if !since.IsZero() {
		documents = state.Merge(prior, fetched)
	}
	logger.Info("merged: total=%d", len(documents))

	if err := writeOutputs(cfg, documents); err != nil {
		return err
	}
	cmd.Printf("Indexed %d documents\n", len(documents))

	// Persist the snapshot and watermark for the next incremental run.
	if err := store.SaveSnapshot(documents); err != nil {
		return err
	}
	return store.Save(state.State{
		Since: state.Watermark(documents, since),
	})
}

// writeOutputs writes the document file and the built index under the
// out directory.
func writeOutputs(cfg config.Config, documents []docs.Document) error {
	logger.Section("index")

	docsPath := filepath.Join(cfg.OutDir, DocsFileName)
	if err := docs.Save(docsPath, documents); err != nil {
		return err
	}
	logger.Debug("wrote %s", docsPath)

	builder, err := index.NewBuilder(cfg.Boosts)
	if err != nil {
		return err
	}
	idx := builder.Build(documents)

	indexPath := filepath.Join(cfg.OutDir, IndexFileName)
	if err := idx.Write(indexPath); err != nil {
		return err
	}
	logger.Debug("wrote %s", indexPath)
	return nil
}

// loadConfigFile loads the TOML config from --config or the default path.
func loadConfigFile() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}

// loadConfig loads the TOML config and applies build command overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfigFile()
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("repo") {
		cfg.Repo = flagRepo
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = flagOut
	}
	if cmd.Flags().Changed("max") {
		cfg.MaxItems = flagMax
	}
	return cfg, nil
}

// splitRepo parses an "owner/name" repository reference.
func splitRepo(repo string) (owner, name string, err error) {
	if repo == "" {
		return "", "", errors.New("repository required (config file or --repo)")
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository %q, want owner/name", repo)
	}
	return owner, name, nil
}

func formatSince(since time.Time) string {
	if since.IsZero() {
		return "none"
	}
	return since.Format(time.RFC3339)
}
