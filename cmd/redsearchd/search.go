package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/redsearch/internal/queryparse"
)

func newSearchCmd(configPath *string) *cobra.Command {
	var (
		collectionName string
		query          string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a query-string search against a collection",
		Long: `search compiles a query-string expression (spec.md §6's grammar: AND/OR,
parenthesization, field:value facet matches, and bare tag tokens) and
prints the matching document ids as a JSON array. NOT, ranges (field:a TO b)
and numeric comparisons parse but are rejected as unsupported.`,
		Example: `  redsearchd search --config redsearch.yaml --collection cocktails --query 'category:rum AND mojito'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			col, err := a.collection(collectionName)
			if err != nil {
				return err
			}

			expr, err := queryparse.Compile(query)
			if err != nil {
				return fmt.Errorf("redsearchd: compile query: %w", err)
			}

			ids, err := col.Search(cmd.Context(), expr)
			if err != nil {
				return fmt.Errorf("redsearchd: search %q: %w", collectionName, err)
			}

			return json.NewEncoder(os.Stdout).Encode(ids)
		},
	}

	cmd.Flags().StringVar(&collectionName, "collection", "", "collection name to search (required)")
	cmd.Flags().StringVar(&query, "query", "", "query-string expression (required)")
	cmd.MarkFlagRequired("collection")
	cmd.MarkFlagRequired("query")

	return cmd
}
