package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/redsearch/internal/docmodel"
)

func newIndexCmd(configPath *string) *cobra.Command {
	var (
		collectionName string
		file           string
		batchSize      int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index newline-delimited JSON documents into a collection",
		Long: `index reads a newline-delimited JSON (NDJSON) file, one document object
per line, and writes it into the named collection.`,
		Example: `  redsearchd index --config redsearch.yaml --collection cocktails --file docs.ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			col, err := a.collection(collectionName)
			if err != nil {
				return err
			}

			docs, err := readNDJSON(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := col.IndexDocuments(ctx, docs, batchSize); err != nil {
				return fmt.Errorf("redsearchd: index %q: %w", collectionName, err)
			}

			a.log.Infow("indexed documents", "collection", collectionName, "count", len(docs))
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionName, "collection", "", "collection name to index into (required)")
	cmd.Flags().StringVar(&file, "file", "", "path to an NDJSON file of documents (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "documents per pipelined flush")
	cmd.MarkFlagRequired("collection")
	cmd.MarkFlagRequired("file")

	return cmd
}

func readNDJSON(path string) ([]docmodel.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("redsearchd: open %s: %w", path, err)
	}
	defer f.Close()

	var docs []docmodel.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc docmodel.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("redsearchd: parse document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("redsearchd: read %s: %w", path, err)
	}
	return docs, nil
}
