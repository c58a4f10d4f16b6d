package keygen

import (
	"regexp"
	"testing"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Crockford base32, the ULID alphabet.
var ulidRe = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

func TestUUIDFormatAndUniqueness(t *testing.T) {
	g := UUID{}
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		k := g.NewKey()
		if !uuidRe.MatchString(k) {
			t.Fatalf("key %q is not a v4 UUID", k)
		}
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate UUID after %d keys: %q", i, k)
		}
		seen[k] = struct{}{}
	}
}

func TestULIDFormatAndUniqueness(t *testing.T) {
	g := ULID{}
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		k := g.NewKey()
		if !ulidRe.MatchString(k) {
			t.Fatalf("key %q is not a ULID", k)
		}
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate ULID after %d keys: %q", i, k)
		}
		seen[k] = struct{}{}
	}
}

func TestFuncAdapter(t *testing.T) {
	g := Func(func() string { return "fixed" })
	if g.NewKey() != "fixed" {
		t.Fatalf("Func adapter did not pass through")
	}
}
