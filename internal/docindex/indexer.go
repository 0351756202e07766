// Package docindex implements the indexing operation of spec §4.D: turning
// one document into the pipelined mutations that populate the document
// hash, the text-token posting sets and their n-gram shards, the facet
// posting sets and their per-document reverse index, and the numeric
// sorted sets and their per-document reverse index.
package docindex

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/encode"
	"github.com/dreamware/redsearch/internal/ngram"
	"github.com/dreamware/redsearch/internal/store"
	"github.com/dreamware/redsearch/internal/tokenize"
)

// IndexDocument emits one document's mutations into a fresh pipeline and
// flushes it as a single unit, per spec §4.D steps 1-4. A schema violation
// aborts before anything is flushed, so a rejected document leaves the
// store untouched.
func IndexDocument(ctx context.Context, s store.Store, cfg docmodel.CollectionConfig, doc docmodel.Document) error {
	docID, err := doc.ID(cfg.IDField)
	if err != nil {
		return fmt.Errorf("docindex: %w", err)
	}

	pipe := s.Pipeliner()
	if err := stageDocument(ctx, pipe, cfg, docID, doc); err != nil {
		return err
	}
	return pipe.Exec(ctx)
}

// IndexDocuments groups docs into runs of at most batchSize and issues one
// pipelined flush per run. Per spec §4.D, this is insert-only and
// non-atomic across the batch: a mid-batch store failure leaves everything
// staged before the failing document applied, and IndexDocuments returns
// immediately without attempting the remaining runs.
func IndexDocuments(ctx context.Context, s store.Store, cfg docmodel.CollectionConfig, docs []docmodel.Document, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 1
	}
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := indexBatch(ctx, s, cfg, docs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func indexBatch(ctx context.Context, s store.Store, cfg docmodel.CollectionConfig, batch []docmodel.Document) error {
	pipe := s.Pipeliner()
	for _, doc := range batch {
		docID, err := doc.ID(cfg.IDField)
		if err != nil {
			return fmt.Errorf("docindex: %w", err)
		}
		if err := stageDocument(ctx, pipe, cfg, docID, doc); err != nil {
			return err
		}
	}
	return pipe.Exec(ctx)
}

// stageDocument buffers one document's mutations onto pipe without
// executing them, so IndexDocuments can stage many documents before one
// flush.
func stageDocument(ctx context.Context, pipe store.Pipeliner, cfg docmodel.CollectionConfig, docID string, doc docmodel.Document) error {
	body, err := json.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("docindex: document %q: %w", docID, err)
	}
	if err := pipe.HashSet(ctx, encode.Docs(cfg.Name), []byte(docID), body); err != nil {
		return err
	}

	for _, field := range cfg.TextFields {
		raw, present := doc[field]
		if !present {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			continue
		}
		tokens := tokenize.Tokenize(text, cfg.Translit, cfg.StopWords)
		if len(tokens) == 0 {
			continue
		}

		vocabMembers := make([][]byte, len(tokens))
		for i, tok := range tokens {
			vocabMembers[i] = []byte(tok)
		}
		if err := pipe.SetAdd(ctx, encode.Vocabulary(cfg.Name), vocabMembers...); err != nil {
			return err
		}

		for _, tok := range tokens {
			for _, shard := range ngram.Shards(tok) {
				var shardKey []byte
				if shard.Kind == ngram.Start {
					shardKey = encode.StartShard(cfg.Name, shard.Pattern)
				} else {
					shardKey = encode.EndShard(cfg.Name, shard.Pattern)
				}
				if err := pipe.SetAdd(ctx, shardKey, []byte(tok)); err != nil {
					return err
				}
			}
			if err := pipe.SetAdd(ctx, encode.Token(cfg.Name, tok), []byte(docID)); err != nil {
				return err
			}
		}
	}

	for _, field := range cfg.FacetFields {
		raw, present := doc[field]
		if !present {
			continue
		}
		for _, elem := range docmodel.AsList(raw) {
			sc, err := docmodel.ToScalar(elem)
			if err != nil {
				return &SchemaError{Field: field, Value: elem, DocID: docID}
			}
			if err := pipe.SetAdd(ctx, encode.Facet(cfg.Name, field, sc), []byte(docID)); err != nil {
				return err
			}
			if err := pipe.SetAdd(ctx, encode.DocFacets(cfg.Name, docID), []byte(encode.FacetValue(field, sc))); err != nil {
				return err
			}
		}
	}

	for _, field := range cfg.NumberFields {
		raw, present := doc[field]
		if !present {
			continue
		}
		for _, elem := range docmodel.AsList(raw) {
			if elem == nil {
				continue
			}
			val, ok := numericValue(elem)
			if !ok {
				return &SchemaError{Field: field, Value: elem, DocID: docID}
			}
			if err := pipe.SortedSetAdd(ctx, encode.Numeric(cfg.Name, field), val, []byte(docID)); err != nil {
				return err
			}
			if err := pipe.SetAdd(ctx, encode.DocNumbers(cfg.Name, docID), []byte(encode.NumberValue(val))); err != nil {
				return err
			}
		}
	}

	return nil
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
