// Package searchctx implements the execution context of spec §4.G: the
// handle an expression tree is evaluated against, carrying the collection
// name, a store handle, and a generator of fresh scratch keys for And/Or's
// intermediate set-intersection/union results.
//
// The store handle is deliberately typed as store.Store rather than
// store.Pipeliner: And/Or/ContainsApprox evaluation reads back the results
// of earlier sub-evaluations (a scan, a prior scratch key) as it walks the
// tree, so those commands must execute as they are issued. Spec §4.G allows
// the collection handle and the pipelined client to be "the same object if
// no buffering is desired" — this is that case. Buffering belongs to
// docindex's batched writes, where nothing downstream needs to observe a
// write before the whole batch commits.
package searchctx

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/store"
)

// Context binds one search evaluation to a collection config and a store
// handle whose commands execute as they are issued. It is not safe for
// concurrent evaluations — spec
// §5 is explicit that "a context is not shared across concurrent
// evaluations."
type Context struct {
	Config docmodel.CollectionConfig
	Store  store.Store

	runPrefix   string
	scratchKeys [][]byte
}

// New builds a Context for one evaluation against cfg, computing run_prefix
// once from the host, process, and a fresh UUID so repeated evaluations
// never collide on scratch-key names even within the same process and the
// same second.
//
// The teacher's Python original hashed `{getnode()}-{pid}-{timestamp}`; this
// keeps that shape but swaps the timestamp component for a UUIDv4 (the pack
// consistently reaches for github.com/google/uuid over raw
// time.Now().UnixNano() for this kind of run-scoped nonce) and hashes with
// xxhash instead of Python's built-in `hash()`.
func New(cfg docmodel.CollectionConfig, s store.Store) *Context {
	hostID, err := os.Hostname()
	if err != nil {
		hostID = "unknown-host"
	}
	seed := fmt.Sprintf("%s-%d-%s", hostID, os.Getpid(), uuid.NewString())

	return &Context{
		Config:    cfg,
		Store:     s,
		runPrefix: fmt.Sprintf("%d", xxhash.Sum64String(seed)),
	}
}

// GenKey returns a fresh scratch key "t/{runPrefix}:{i}" with i incrementing
// from 0, and records it so ScratchKeys can later report every key this
// context has minted.
func (c *Context) GenKey() []byte {
	i := len(c.scratchKeys)
	key := []byte(fmt.Sprintf("t/%s:%d", c.runPrefix, i))
	c.scratchKeys = append(c.scratchKeys, key)
	return key
}

// ScratchKeys returns every key GenKey has minted on this context, in
// generation order. Spec §4.G: "No automatic cleanup; callers that care
// must unlink those keys after consuming the final result" — collection.Search
// is that caller (it defers a Delete over this slice).
func (c *Context) ScratchKeys() [][]byte {
	return c.scratchKeys
}
