// Command gh-docs-index is the nightly batch job that fetches GitHub
// issues and discussions and builds the docs-site search index.
package main

import (
	"os"

	"github.com/custodia-labs/gh-docs-index/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
