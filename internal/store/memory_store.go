package store

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store entirely in heap memory, guarded by a single
// sync.RWMutex in the same copy-on-read/write discipline the teacher's
// storage.MemoryStore used for its flat byte-string map — widened here to
// three typed collections (hashes, sets, sorted sets) since the search index
// needs all three, not just get/put/delete on opaque blobs.
//
// No persistence, no size limits, safe for concurrent use. Intended for unit
// tests and small single-process deployments that do not need a real Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	hashes   map[string]map[string][]byte
	sets     map[string]map[string]struct{}
	sortsets map[string]map[string]float64
}

// NewMemoryStore returns an empty, ready-to-use MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hashes:   make(map[string]map[string][]byte),
		sets:     make(map[string]map[string]struct{}),
		sortsets: make(map[string]map[string]float64),
	}
}

func (m *MemoryStore) Pipeliner() Pipeliner {
	return &memoryPipeliner{store: m}
}

func (m *MemoryStore) HashSet(_ context.Context, key []byte, field, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := string(key)
	h, ok := m.hashes[k]
	if !ok {
		h = make(map[string][]byte)
		m.hashes[k] = h
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	h[string(field)] = stored
	return nil
}

func (m *MemoryStore) HashGetAll(_ context.Context, key []byte) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.hashes[string(key)]
	out := make(map[string][]byte, len(h))
	for field, value := range h {
		cp := make([]byte, len(value))
		copy(cp, value)
		out[field] = cp
	}
	return out, nil
}

func (m *MemoryStore) SetAdd(_ context.Context, key []byte, members ...[]byte) error {
	if len(members) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	k := string(key)
	s, ok := m.sets[k]
	if !ok {
		s = make(map[string]struct{})
		m.sets[k] = s
	}
	for _, mem := range members {
		s[string(mem)] = struct{}{}
	}
	return nil
}

func (m *MemoryStore) SetMembers(_ context.Context, key []byte) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.sets[string(key)]
	out := make([][]byte, 0, len(s))
	for mem := range s {
		out = append(out, []byte(mem))
	}
	return out, nil
}

// Scan walks a snapshot of the shard set's members taken under read lock,
// filtering by glob so tests never need a live Redis to exercise
// ContainsApprox.
func (m *MemoryStore) Scan(_ context.Context, key []byte, glob string, _ int64) ScanIter {
	m.mu.RLock()
	s := m.sets[string(key)]
	members := make([]string, 0, len(s))
	for mem := range s {
		members = append(members, mem)
	}
	m.mu.RUnlock()
	sort.Strings(members)

	return &memoryScanIter{members: members, glob: glob, idx: -1}
}

func (m *MemoryStore) SetUnionStore(_ context.Context, dst []byte, src ...[]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]struct{})
	for _, key := range src {
		for mem := range m.sets[string(key)] {
			out[mem] = struct{}{}
		}
	}
	m.sets[string(dst)] = out
	return nil
}

func (m *MemoryStore) SetInterStore(_ context.Context, dst []byte, src ...[]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(src) == 0 {
		m.sets[string(dst)] = make(map[string]struct{})
		return nil
	}
	out := make(map[string]struct{})
	for mem := range m.sets[string(src[0])] {
		out[mem] = struct{}{}
	}
	for _, key := range src[1:] {
		next := m.sets[string(key)]
		for mem := range out {
			if _, present := next[mem]; !present {
				delete(out, mem)
			}
		}
	}
	m.sets[string(dst)] = out
	return nil
}

func (m *MemoryStore) SortedSetAdd(_ context.Context, key []byte, score float64, member []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := string(key)
	z, ok := m.sortsets[k]
	if !ok {
		z = make(map[string]float64)
		m.sortsets[k] = z
	}
	z[string(member)] = score
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, pattern []byte) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	glob := string(pattern)
	var out [][]byte
	seen := make(map[string]struct{})
	for k := range m.hashes {
		if match(glob, k) {
			if _, ok := seen[k]; !ok {
				out = append(out, []byte(k))
				seen[k] = struct{}{}
			}
		}
	}
	for k := range m.sets {
		if match(glob, k) {
			if _, ok := seen[k]; !ok {
				out = append(out, []byte(k))
				seen[k] = struct{}{}
			}
		}
	}
	for k := range m.sortsets {
		if match(glob, k) {
			if _, ok := seen[k]; !ok {
				out = append(out, []byte(k))
				seen[k] = struct{}{}
			}
		}
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...[]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		k := string(key)
		delete(m.hashes, k)
		delete(m.sets, k)
		delete(m.sortsets, k)
	}
	return nil
}

// match applies Redis-style glob semantics: unlike filepath.Match on its
// own, '*' and '?' also match '/', so "cocktails/*" covers nested keys.
func match(glob, s string) bool {
	glob = strings.ReplaceAll(glob, "/", "\x00")
	s = strings.ReplaceAll(s, "/", "\x00")
	ok, err := filepath.Match(glob, s)
	return err == nil && ok
}

type memoryScanIter struct {
	members []string
	glob    string
	idx     int
}

func (i *memoryScanIter) Next(_ context.Context) bool {
	for {
		i.idx++
		if i.idx >= len(i.members) {
			return false
		}
		if match(i.glob, i.members[i.idx]) {
			return true
		}
	}
}

func (i *memoryScanIter) Member() []byte { return []byte(i.members[i.idx]) }
func (i *memoryScanIter) Err() error     { return nil }

// memoryPipeliner buffers every call as a thunk and replays them against the
// backing MemoryStore on Exec, in submission order — the in-memory analog of
// spec.md §6's pipeline semantics ("commands within one pipelined flush are
// executed ... in submission order").
type memoryPipeliner struct {
	store *MemoryStore
	ops   []func(context.Context) error
}

func (p *memoryPipeliner) Pipeliner() Pipeliner { return p }

func (p *memoryPipeliner) HashSet(_ context.Context, key []byte, field, value []byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.HashSet(ctx, key, field, value) })
	return nil
}

func (p *memoryPipeliner) HashGetAll(ctx context.Context, key []byte) (map[string][]byte, error) {
	return p.store.HashGetAll(ctx, key)
}

func (p *memoryPipeliner) SetAdd(_ context.Context, key []byte, members ...[]byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.SetAdd(ctx, key, members...) })
	return nil
}

func (p *memoryPipeliner) SetMembers(ctx context.Context, key []byte) ([][]byte, error) {
	return p.store.SetMembers(ctx, key)
}

func (p *memoryPipeliner) Scan(ctx context.Context, key []byte, glob string, count int64) ScanIter {
	return p.store.Scan(ctx, key, glob, count)
}

func (p *memoryPipeliner) SetUnionStore(_ context.Context, dst []byte, src ...[]byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.SetUnionStore(ctx, dst, src...) })
	return nil
}

func (p *memoryPipeliner) SetInterStore(_ context.Context, dst []byte, src ...[]byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.SetInterStore(ctx, dst, src...) })
	return nil
}

func (p *memoryPipeliner) SortedSetAdd(_ context.Context, key []byte, score float64, member []byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.SortedSetAdd(ctx, key, score, member) })
	return nil
}

func (p *memoryPipeliner) Keys(ctx context.Context, pattern []byte) ([][]byte, error) {
	return p.store.Keys(ctx, pattern)
}

func (p *memoryPipeliner) Delete(_ context.Context, keys ...[]byte) error {
	p.ops = append(p.ops, func(ctx context.Context) error { return p.store.Delete(ctx, keys...) })
	return nil
}

func (p *memoryPipeliner) Exec(ctx context.Context) error {
	for _, op := range p.ops {
		if err := op(ctx); err != nil {
			p.ops = nil
			return err
		}
	}
	p.ops = nil
	return nil
}
