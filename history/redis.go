package history

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/keystash/internal/wire"
)

// RedisStore shares call history across processes and survives restarts.
// Records are RPUSHed to one list per op; reads skip list members that fail
// wire validation (foreign writes under our prefix) rather than erroring.
type RedisStore struct {
	rdb redis.UniversalClient
	ns  string // logical namespace; should match Options.Namespace
	max int64  // per-op record cap via LTRIM; 0 disables trimming
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed history store without a record cap.
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{rdb: client, ns: namespace}
}

// NewRedisStoreWithCap creates a Redis-backed history store that keeps only
// the newest max records per op. If max <= 0, history grows unbounded.
func NewRedisStoreWithCap(client redis.UniversalClient, namespace string, max int64) *RedisStore {
	return &RedisStore{rdb: client, ns: namespace, max: max}
}

func (s *RedisStore) key(op string) string { return "hist:" + s.ns + ":" + op }

// Append pushes one framed record. When a cap is set, RPUSH + LTRIM are
// pipelined in a single round-trip.
func (s *RedisStore) Append(ctx context.Context, op string, e Entry) error {
	k := s.key(op)
	rec := wire.EncodeRecord(uint64(e.At.UnixNano()), e.Input, e.Output)

	if s.max <= 0 {
		return s.rdb.RPush(ctx, k, rec).Err()
	}

	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, k, rec)
		p.LTrim(ctx, k, -s.max, -1)
		return nil
	})
	return err
}

func (s *RedisStore) Entries(ctx context.Context, op string) ([]Entry, error) {
	raws, err := s.rdb.LRange(ctx, s.key(op), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		ts, in, rout, err := wire.DecodeRecord([]byte(raw))
		if err != nil {
			continue // foreign or corrupt member; skip
		}
		out = append(out, Entry{
			At:     time.Unix(0, int64(ts)),
			Input:  append([]byte(nil), in...),
			Output: append([]byte(nil), rout...),
		})
	}
	return out, nil
}

func (s *RedisStore) Len(ctx context.Context, op string) (int64, error) {
	n, err := s.rdb.LLen(ctx, s.key(op)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close(ctx context.Context) error { return s.rdb.Close() }
