// Command redsearchd is the search daemon: it loads a collection schema and
// a backing store from config, then serves indexing and search over that
// store. It plays the role cmd/node and cmd/coordinator play for the
// cluster storage system, generalized to a single-process document search
// service fronted by a cobra CLI instead of a bespoke flag/env main.
//
// Usage:
//
//	redsearchd serve --config redsearch.yaml
//	redsearchd index --config redsearch.yaml --collection cocktails --file docs.ndjson
//	redsearchd search --config redsearch.yaml --collection cocktails --query 'category:rum AND mojito'
//	redsearchd monitor --config redsearch.yaml
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "redsearchd",
		Short: "redsearchd serves document indexing and search over a Redis-backed store",
		Long: `redsearchd is a document search daemon: tokenized free-text search,
facet equality, and approximate (typo-tolerant) token matching, backed by a
Redis-compatible key/value store.`,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a redsearch.yaml config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newIndexCmd(&configPath),
		newSearchCmd(&configPath),
		newMonitorCmd(&configPath),
	)

	return root
}
