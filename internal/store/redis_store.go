package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// defaultScanCount is the SSCAN count hint spec.md §6 documents as the
// core's default: advisory, not a hard page size.
const defaultScanCount = 10000

// RedisStore implements Store against a live redis.Cmdable, accepting
// either a *redis.Client or a *redis.Pipeline so the same code path backs
// both immediate execution and buffered pipelines.
type RedisStore struct {
	cmd redis.Cmdable
}

// NewRedisStore wraps an existing *redis.Client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{cmd: client}
}

func (s *RedisStore) Pipeliner() Pipeliner {
	pipe := s.cmd.Pipeline()
	return &redisPipeliner{RedisStore: RedisStore{cmd: pipe}, pipe: pipe}
}

func (s *RedisStore) HashSet(ctx context.Context, key []byte, field, value []byte) error {
	return s.cmd.HSet(ctx, string(key), string(field), value).Err()
}

func (s *RedisStore) HashGetAll(ctx context.Context, key []byte) (map[string][]byte, error) {
	res, err := s.cmd.HGetAll(ctx, string(key)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(res))
	for k, v := range res {
		out[k] = []byte(v)
	}
	return out, nil
}

func (s *RedisStore) SetAdd(ctx context.Context, key []byte, members ...[]byte) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.cmd.SAdd(ctx, string(key), args...).Err()
}

func (s *RedisStore) SetMembers(ctx context.Context, key []byte) ([][]byte, error) {
	res, err := s.cmd.SMembers(ctx, string(key)).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(res))
	for i, m := range res {
		out[i] = []byte(m)
	}
	return out, nil
}

// Scan implements the cursored shard scan with SSCAN, matching members
// against glob using the server-side MATCH clause (spec.md §4.F: "a
// cursored set-scan on that shard, filtering members by glob-match").
func (s *RedisStore) Scan(ctx context.Context, key []byte, glob string, count int64) ScanIter {
	if count <= 0 {
		count = defaultScanCount
	}
	return &redisScanIter{
		iter: s.cmd.SScan(ctx, string(key), 0, glob, count).Iterator(),
	}
}

func (s *RedisStore) SetUnionStore(ctx context.Context, dst []byte, src ...[]byte) error {
	keys := toStrings(src)
	return s.cmd.SUnionStore(ctx, string(dst), keys...).Err()
}

func (s *RedisStore) SetInterStore(ctx context.Context, dst []byte, src ...[]byte) error {
	keys := toStrings(src)
	return s.cmd.SInterStore(ctx, string(dst), keys...).Err()
}

func (s *RedisStore) SortedSetAdd(ctx context.Context, key []byte, score float64, member []byte) error {
	return s.cmd.ZAdd(ctx, string(key), redis.Z{Score: score, Member: member}).Err()
}

func (s *RedisStore) Keys(ctx context.Context, pattern []byte) ([][]byte, error) {
	res, err := s.cmd.Keys(ctx, string(pattern)).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(res))
	for i, k := range res {
		out[i] = []byte(k)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...[]byte) error {
	if len(keys) == 0 {
		return nil
	}
	return s.cmd.Del(ctx, toStrings(keys)...).Err()
}

func toStrings(bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}

type redisScanIter struct {
	iter *redis.ScanIterator
	cur  []byte
}

func (i *redisScanIter) Next(ctx context.Context) bool {
	if !i.iter.Next(ctx) {
		return false
	}
	i.cur = []byte(i.iter.Val())
	return true
}

func (i *redisScanIter) Member() []byte { return i.cur }
func (i *redisScanIter) Err() error     { return i.iter.Err() }

// redisPipeliner adapts a redis.Pipeliner to Store+Exec by delegating every
// command to an embedded RedisStore constructed over the pipeline itself
// (redis.Pipeliner satisfies redis.Cmdable).
type redisPipeliner struct {
	RedisStore
	pipe redis.Pipeliner
}

func (p *redisPipeliner) Exec(ctx context.Context) error {
	_, err := p.pipe.Exec(ctx)
	return err
}
