package keystash

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/keystash/codec"
	"github.com/unkn0wn-root/keystash/history"
	"github.com/unkn0wn-root/keystash/keygen"
	pr "github.com/unkn0wn-root/keystash/provider"
)

// SetCostFunc computes the cost passed to the provider on writes.
// Only cost-aware providers (e.g. Ristretto) look at it.
type SetCostFunc func(key string, raw []byte) int64

// Stash is the provider-agnostic store façade: every Store persists the value
// under a fresh random key and hands that key back to the caller.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Stash[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Store writes value under a freshly generated key and returns the key.
	// A single attempt is made; on failure no entry exists and the error is
	// *ConnError (store unreachable) or *WriteError (write rejected).
	Store(ctx context.Context, value V) (key string, err error)

	// Load retrieves a previously stored value by its key.
	// A missing key is (zero, false, nil), not an error.
	Load(ctx context.Context, key string) (v V, ok bool, err error)

	// Delete removes an entry (best-effort).
	Delete(ctx context.Context, key string) error
}

// Options tune the behavior of the stash.
// Only Provider and Codec are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Provider pr.Provider
	Codec    c.Codec[V]

	Namespace  string           // optional key prefix. e.g. "session", "upload"; "" => bare keys
	KeyGen     keygen.Generator // nil => keygen.UUID{}
	DefaultTTL time.Duration    // 0 => entries do not expire

	Logger         Logger        // if nil, NopLogger is used
	Hooks          Hooks         // if nil, NopHooks is used
	ComputeSetCost SetCostFunc   // default 1
	History        history.Store // nil => call history disabled
	HistoryOp      string        // history operation label; "" => "store"

	// CollisionCheck reads the fresh key before writing and reports any
	// pre-existing entry via Hooks.KeyCollision. Observation only; the
	// write proceeds either way. Default off.
	CollisionCheck bool

	Disabled bool // default false (enabled)
}

func New[V any](opts Options[V]) (Stash[V], error) {
	return newStash[V](opts)
}
