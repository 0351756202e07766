// Package store defines the external storage contract of spec.md §6: a
// small set of hash, set, and sorted-set primitives every higher-level
// package (docindex, searchctx, searchexpr, collection, monitor) is built against,
// plus two concrete implementations — a Redis-backed one for production
// and an in-memory one for tests and single-process deployments.
package store

import (
	"context"
	"errors"
)

// ErrNotFound names store-side absence of a key, not a schema or query
// error. Neither MemoryStore nor RedisStore returns it: reading a missing
// key yields an empty result and a nil error.
var ErrNotFound = errors.New("store: key not found")

// ScanIter iterates the members a cursored set scan yields. Next advances
// the cursor and reports whether a member is available; Err reports any
// failure encountered while scanning.
type ScanIter interface {
	Next(ctx context.Context) bool
	Member() []byte
	Err() error
}

// Store is the required surface of spec.md §6, typed over []byte keys and
// values rather than the wire's untyped strings.
type Store interface {
	// Pipeliner returns a handle that buffers commands for one batched
	// flush; the returned handle satisfies Store itself so indexing code
	// does not need to distinguish buffered from immediate execution.
	Pipeliner() Pipeliner

	HashSet(ctx context.Context, key []byte, field, value []byte) error
	HashGetAll(ctx context.Context, key []byte) (map[string][]byte, error)

	SetAdd(ctx context.Context, key []byte, members ...[]byte) error
	SetMembers(ctx context.Context, key []byte) ([][]byte, error)
	Scan(ctx context.Context, key []byte, glob string, count int64) ScanIter

	SetUnionStore(ctx context.Context, dst []byte, src ...[]byte) error
	SetInterStore(ctx context.Context, dst []byte, src ...[]byte) error

	SortedSetAdd(ctx context.Context, key []byte, score float64, member []byte) error

	Keys(ctx context.Context, pattern []byte) ([][]byte, error)
	Delete(ctx context.Context, keys ...[]byte) error
}

// Pipeliner buffers the commands issued against it and only sends them to
// the store when Exec is called, matching spec.md §6's "commands within
// one pipelined flush are executed ... in submission order" guarantee.
type Pipeliner interface {
	Store
	Exec(ctx context.Context) error
}
