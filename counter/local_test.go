package counter

import (
	"context"
	"testing"
	"time"
)

func TestLocalValueManyIncludesAllAndZeroForMissing(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	keys := []string{"a", "b", "c"}
	// incr b twice -> 2
	if _, err := s.Incr(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Incr(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	got, err := s.ValueMany(ctx, keys)
	if err != nil {
		t.Fatal(err)
	}

	if got["a"] != 0 || got["b"] != 2 || got["c"] != 0 {
		t.Fatalf("got=%v want a=0,b=2,c=0", got)
	}
}

func TestLocalIncrReturnsNewCount(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	for want := uint64(1); want <= 3; want++ {
		got, err := s.Incr(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("Incr returned %d, want %d", got, want)
		}
	}
	if v, _ := s.Value(ctx, "k"); v != 3 {
		t.Fatalf("Value=%d want 3", v)
	}
}

func TestLocalValueManyDoesNotMutateInput(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	in := []string{"x", "y"}
	cp := append([]string(nil), in...)
	if _, err := s.ValueMany(ctx, in); err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if in[i] != cp[i] {
			t.Fatalf("input mutated at %d: %q -> %q", i, cp[i], in[i])
		}
	}
}

func TestLocalCleanupPrunesOld(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(0, time.Second) // retention=1s
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Incr(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1200 * time.Millisecond)
	s.Cleanup(time.Second)

	v, err := s.Value(ctx, "old")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Fatalf("expected pruned -> 0, got %d", v)
	}
}
