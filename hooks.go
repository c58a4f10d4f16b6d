package keystash

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the stash calls them on
// hot paths. Wrap with hooks/async for anything heavier.
type Hooks interface {
	// Provider refused a write without a transport failure.
	WriteRejected(key string)

	// History append failed; the Store call itself already succeeded.
	HistoryAppendError(op string, err error)

	// Load found bytes under the key but the codec could not decode them.
	LoadDecodeError(key string, err error)

	// CollisionCheck observed an existing entry under a freshly generated
	// key. Vanishingly unlikely with 128-bit identifiers.
	KeyCollision(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) WriteRejected(string)             {}
func (NopHooks) HistoryAppendError(string, error) {}
func (NopHooks) LoadDecodeError(string, error)    {}
func (NopHooks) KeyCollision(string)              {}
