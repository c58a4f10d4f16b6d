// Package keygen provides fresh unique identifiers for stored entries.
//
// Generators must be collision-resistant at the caller's expected volume;
// both shipped implementations draw from a 128-bit space (UUIDv4: 122
// random bits, ULID: 48-bit timestamp + 80 random bits).
package keygen

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces one fresh identifier per call.
// Implementations must be safe for concurrent use and must never return "".
type Generator interface {
	NewKey() string
}

// Func adapts a plain function to a Generator.
type Func func() string

func (f Func) NewKey() string { return f() }

// UUID generates random (version 4) UUIDs, e.g.
// "3a8aa1f1-71cd-4c51-9c9b-9a0e2b3f8f30". The zero value is ready to use.
type UUID struct{}

var _ Generator = UUID{}

func (UUID) NewKey() string { return uuid.NewString() }

// ULID generates lexicographically sortable identifiers, e.g.
// "01J4C4Y0M9T1V5W0R8Q2Z3K7XB". Sorts by creation time, which makes listing
// store keyspaces by prefix scan roughly chronological. The zero value is
// ready to use.
type ULID struct{}

var _ Generator = ULID{}

func (ULID) NewKey() string { return ulid.Make().String() }
