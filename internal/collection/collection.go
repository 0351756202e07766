// Package collection implements the facade of spec §4.H: binding an
// immutable CollectionConfig to a store handle and exposing indexing,
// retrieval, and search as a single cohesive API, the way the Python
// original's Collection class wrapped a redis.Redis handle.
package collection

import (
	"context"
	"sort"

	"github.com/dreamware/redsearch/internal/docindex"
	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/encode"
	"github.com/dreamware/redsearch/internal/searchctx"
	"github.com/dreamware/redsearch/internal/searchexpr"
	"github.com/dreamware/redsearch/internal/store"
)

// Collection binds an immutable config to a store handle.
type Collection struct {
	cfg   docmodel.CollectionConfig
	store store.Store
}

// Configure returns a Collection bound to cfg and s. cfg is never mutated
// after this call — spec §4.H: "binds an immutable config."
func Configure(cfg docmodel.CollectionConfig, s store.Store) *Collection {
	return &Collection{cfg: cfg, store: s}
}

// Config returns the collection's bound configuration.
func (c *Collection) Config() docmodel.CollectionConfig { return c.cfg }

// IndexDocument pipelines and flushes one document's mutations.
func (c *Collection) IndexDocument(ctx context.Context, doc docmodel.Document) error {
	return docindex.IndexDocument(ctx, c.store, c.cfg, doc)
}

// IndexDocuments batches docs into runs of at most batchSize, one pipelined
// flush per run.
func (c *Collection) IndexDocuments(ctx context.Context, docs []docmodel.Document, batchSize int) error {
	return docindex.IndexDocuments(ctx, c.store, c.cfg, docs, batchSize)
}

// GetAllDocs returns the full document hash decoded as id -> raw JSON
// bytes, per spec §4.H.
func (c *Collection) GetAllDocs(ctx context.Context) (map[string][]byte, error) {
	return c.store.HashGetAll(ctx, encode.Docs(c.cfg.Name))
}

// Search evaluates expr against this collection and returns the matching
// document ids, grounded on the Python original's run_search: build a fresh
// Context, evaluate the tree to a key, then SMEMBERS it.
//
// A root-level ContainsApprox carries no key of its own — it only ever
// yields a candidate token list — so it is resolved via Expand into an
// Or(ContainsToken...) tree before evaluation, the same wrapping every
// other caller is required to apply.
//
// Every scratch key the evaluation minted is unlinked once the final
// members have been read, regardless of outcome — the deferred-unlink
// mitigation spec §9 names for the "no automatic cleanup" open question, in
// place of a background sweeper.
func (c *Collection) Search(ctx context.Context, expr searchexpr.Expr) ([]string, error) {
	sctx := searchctx.New(c.cfg, c.store)
	defer func() {
		if keys := sctx.ScratchKeys(); len(keys) > 0 {
			_ = c.store.Delete(ctx, keys...)
		}
	}()

	if ca, ok := expr.(searchexpr.ContainsApprox); ok {
		expanded, err := ca.Expand(sctx)
		if err != nil {
			return nil, err
		}
		if expanded == nil {
			return []string{}, nil
		}
		expr = expanded
	}

	res, err := expr.Eval(sctx)
	if err != nil {
		return nil, err
	}
	key, err := res.AsKey()
	if err != nil {
		return nil, err
	}

	members, err := c.store.SetMembers(ctx, key)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = string(m)
	}
	sort.Strings(ids)
	return ids, nil
}
