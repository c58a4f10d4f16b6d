package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares counters across processes and survives restarts.
// Optionally, a TTL can be applied to counter keys to prevent unbounded
// growth. If a counter key expires, readers observe 0 and counting restarts.
type RedisStore struct {
	rdb redis.UniversalClient
	ns  string        // logical namespace; should match the owning component's
	ttl time.Duration // optional TTL for counter keys; 0 disables expiry
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed counter store without TTL.
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{rdb: client, ns: namespace}
}

// NewRedisStoreWithTTL creates a Redis-backed counter store with TTL.
// If ttl <= 0, keys do not expire.
func NewRedisStoreWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: client, ns: namespace, ttl: ttl}
}

func (s *RedisStore) key(k string) string { return "count:" + s.ns + ":" + k }

// Incr atomically increments the counter and (optionally) refreshes TTL.
// When ttl > 0, INCR + EXPIRE are pipelined in a single round-trip and the
// INCR result is captured from the pipeline (no extra INCR).
func (s *RedisStore) Incr(ctx context.Context, key string) (uint64, error) {
	k := s.key(key)

	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// Value returns the current count.
// Missing keys are treated as 0.
func (s *RedisStore) Value(ctx context.Context, key string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis counter parse: %w", err)
	}
	return u, nil
}

// ValueMany returns counts for multiple keys.
// Missing keys map to 0.
func (s *RedisStore) ValueMany(ctx context.Context, keys []string) (map[string]uint64, error) {
	if len(keys) == 0 {
		return map[string]uint64{}, nil
	}
	ks := make([]string, len(keys))
	for i, k := range keys {
		ks[i] = s.key(k)
	}
	vals, err := s.rdb.MGet(ctx, ks...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]uint64, len(keys))
	for i, v := range vals {
		if v == nil {
			out[keys[i]] = 0
			continue
		}
		str := fmt.Sprint(v)
		u, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis counter parse at %s: %w", keys[i], err)
		}
		out[keys[i]] = u
	}
	return out, nil
}

// Cleanup is not applicable for RedisStore (Redis handles expiry if TTL is set).
func (s *RedisStore) Cleanup(time.Duration) {}

// Close closes the underlying Redis client.
func (s *RedisStore) Close(ctx context.Context) error { return s.rdb.Close() }
