package keystash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

var (
	// ErrRejected is wrapped into a *WriteError when the provider refuses a
	// write without a transport failure (pressure, policy).
	ErrRejected = errors.New("keystash: write rejected by provider")

	// ErrDisabled is returned by Store on a disabled stash.
	ErrDisabled = errors.New("keystash: stash disabled")
)

// ConnError reports that the external store could not be reached at call
// time. Not retried; surfaced to the caller immediately.
type ConnError struct {
	Key string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("keystash: store unreachable (key %q): %v", e.Key, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// WriteError reports that the external store rejected or failed the write.
// No entry exists under the key when this is returned.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("keystash: write %q failed: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// isConnErr classifies transport-shaped failures: anything the net package
// models as a network error, context expiry, or a torn connection.
func isConnErr(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func classifyWrite(key string, err error) error {
	if isConnErr(err) {
		return &ConnError{Key: key, Err: err}
	}
	return &WriteError{Key: key, Err: err}
}

func classifyRead(key string, err error) error {
	if isConnErr(err) {
		return &ConnError{Key: key, Err: err}
	}
	return fmt.Errorf("keystash: load %q: %w", key, err)
}
