package keystash

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/keystash/codec"
	"github.com/unkn0wn-root/keystash/history"
	"github.com/unkn0wn-root/keystash/keygen"
	pr "github.com/unkn0wn-root/keystash/provider"
)

type stash[V any] struct {
	ns             string
	provider       pr.Provider
	codec          c.Codec[V]
	keys           keygen.Generator
	log            Logger
	hooks          Hooks
	enabled        bool
	defaultTTL     time.Duration
	computeSetCost SetCostFunc
	hist           history.Store
	histOp         string
	collisionCheck bool
}

func newStash[V any](opts Options[V]) (*stash[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("keystash: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("keystash: codec is required")
	}

	s := &stash[V]{
		ns:             opts.Namespace,
		provider:       opts.Provider,
		codec:          opts.Codec,
		enabled:        !opts.Disabled,
		defaultTTL:     opts.DefaultTTL,
		hist:           opts.History,
		collisionCheck: opts.CollisionCheck,
	}

	// defaults
	s.keys = coalesce[keygen.Generator](opts.KeyGen, keygen.UUID{})
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.histOp = coalesce[string](opts.HistoryOp, "store")

	if opts.ComputeSetCost != nil {
		s.computeSetCost = opts.ComputeSetCost
	} else {
		s.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	return s, nil
}

func (s *stash[V]) Enabled() bool { return s.enabled }

func (s *stash[V]) Close(ctx context.Context) error {
	// Close history first (best effort)
	if s.hist != nil {
		_ = s.hist.Close(ctx)
	}
	if s.provider != nil {
		return s.provider.Close(ctx)
	}
	return nil
}

func (s *stash[V]) Store(ctx context.Context, value V) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}
	payload, err := s.codec.Encode(value)
	if err != nil {
		return "", fmt.Errorf("keystash: encode: %w", err)
	}
	id := s.keys.NewKey()
	if id == "" {
		return "", fmt.Errorf("keystash: key generator produced empty key")
	}
	key := s.storageKey(id)
	if s.collisionCheck {
		if _, exists, _ := s.provider.Get(ctx, key); exists {
			s.hooks.KeyCollision(key)
			s.log.Warn("fresh key already present in store", Fields{"key": key})
		}
	}
	ok, err := s.provider.Set(ctx, key, payload, s.computeSetCost(key, payload), s.defaultTTL)
	if err != nil {
		return "", classifyWrite(key, err)
	}
	if !ok {
		s.hooks.WriteRejected(key)
		return "", &WriteError{Key: key, Err: ErrRejected}
	}
	s.record(ctx, payload, key)
	return key, nil
}

func (s *stash[V]) Load(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !s.enabled {
		return zero, false, nil
	}
	raw, ok, err := s.provider.Get(ctx, key)
	if err != nil {
		return zero, false, classifyRead(key, err)
	}
	if !ok {
		return zero, false, nil
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		s.hooks.LoadDecodeError(key, err)
		return zero, false, fmt.Errorf("keystash: decode %q: %w", key, err)
	}
	return v, true, nil
}

func (s *stash[V]) Delete(ctx context.Context, key string) error {
	if !s.enabled {
		return nil
	}
	return s.provider.Del(ctx, key)
}

// record appends to the call history. Never fails the Store call; errors go
// through hooks and the log only.
func (s *stash[V]) record(ctx context.Context, input []byte, key string) {
	if s.hist == nil {
		return
	}
	e := history.Entry{At: time.Now(), Input: input, Output: []byte(key)}
	if err := s.hist.Append(ctx, s.histOp, e); err != nil {
		s.hooks.HistoryAppendError(s.histOp, err)
		s.log.Warn("history append failed", Fields{"op": s.histOp, "err": err})
	}
}

func (s *stash[V]) storageKey(id string) string {
	if s.ns == "" {
		return id
	}
	// returned keys carry the namespace so plain clients can retrieve them
	return s.ns + ":" + id
}
