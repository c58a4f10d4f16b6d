// Package keystash implements a provider-agnostic value drop-box: each Store
// writes the caller's value to a byte store under a freshly generated random
// key and returns the key. Keys are never derived from value content, so two
// Stores of the same value always produce two distinct entries.
//
// Components:
//   - Provider: byte store with TTL (e.g. Redis, Ristretto, BigCache).
//   - Codec[V]: (de)serializes V <-> []byte. Scalar codecs write the store's
//     native text/byte forms, so entries stay readable by plain clients.
//   - keygen.Generator: fresh unique identifiers (UUID by default, ULID optional).
//   - history.Store: optional per-operation call log with Replay.
//
// Values are stored unframed: the bytes under a returned key are exactly the
// codec output, retrievable by any client of the underlying store.
//
// Usage:
//
//	st, _ := keystash.New[string](keystash.Options[string]{
//	    Provider: redisprovider,
//	    Codec:    codec.String{},
//	})
//	key, err := st.Store(ctx, "hello")
//	v, ok, err := st.Load(ctx, key) // "hello", true, nil
package keystash
