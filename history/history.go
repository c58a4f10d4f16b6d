// Package history records (input, output) pairs per operation so calls can
// be replayed later. The façade appends one record per successful Store;
// recording is strictly best-effort and never fails the call it describes.
package history

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Entry is one recorded call: what went in, what key came out, and when.
type Entry struct {
	At     time.Time
	Input  []byte
	Output []byte
}

// Store abstracts where history lives.
// Use LocalStore (in-process) or RedisStore for multi-replica / restart persistence.
type Store interface {
	// Append adds one record to the end of op's history.
	Append(ctx context.Context, op string, e Entry) error
	// Entries returns op's history oldest-first. Missing op => empty, no error.
	Entries(ctx context.Context, op string) ([]Entry, error)
	// Len returns the number of records for op.
	Len(ctx context.Context, op string) (int64, error)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}

// Replay writes a call report for op to w:
//
//	store was called 3 times:
//	store(hello) -> 3a8aa1f1-71cd-4c51-9c9b-9a0e2b3f8f30
//	...
func Replay(ctx context.Context, w io.Writer, s Store, op string) error {
	entries, err := s.Entries(ctx, op)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s was called %d times:\n", op, len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s(%s) -> %s\n", op, e.Input, e.Output); err != nil {
			return err
		}
	}
	return nil
}
