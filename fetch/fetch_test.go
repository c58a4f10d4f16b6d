package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/keystash/counter"
	pr "github.com/unkn0wn-root/keystash/provider"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	mu sync.Mutex
	m  map[string]memEntry
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.mu.Lock()
	p.m[key] = memEntry{v: value, exp: exp}
	p.mu.Unlock()
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

func (p *memProvider) Close(_ context.Context) error { return nil }

func (p *memProvider) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

func newTestServer(t *testing.T, hits *atomic.Int64, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPageServesFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := newTestServer(t, &hits, http.StatusOK, "<html>ok</html>")

	counts := counter.NewLocalStore(0, 0)
	t.Cleanup(func() { _ = counts.Close(ctx) })

	f, err := New(Options{
		Cache:  newMemProvider(),
		Client: srv.Client(),
		Counts: counts,
		TTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 3; i++ {
		page, err := f.GetPage(ctx, srv.URL)
		if err != nil {
			t.Fatalf("GetPage #%d: %v", i, err)
		}
		if page != "<html>ok</html>" {
			t.Fatalf("page = %q", page)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("origin fetched %d times, want 1", got)
	}
	// cache hits count as visits too
	if v, err := f.Visits(ctx, srv.URL); err != nil || v != 3 {
		t.Fatalf("Visits: v=%d err=%v, want 3", v, err)
	}
}

func TestGetPageRefetchesAfterExpiry(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := newTestServer(t, &hits, http.StatusOK, "body")

	f, err := New(Options{
		Cache:  newMemProvider(),
		Client: srv.Client(),
		TTL:    50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := f.GetPage(ctx, srv.URL); err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := f.GetPage(ctx, srv.URL); err != nil {
		t.Fatalf("GetPage after expiry: %v", err)
	}

	if got := hits.Load(); got != 2 {
		t.Fatalf("origin fetched %d times, want 2", got)
	}
}

func TestGetPageErrorStatusNotCached(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := newTestServer(t, &hits, http.StatusInternalServerError, "boom")

	cache := newMemProvider()
	counts := counter.NewLocalStore(0, 0)
	t.Cleanup(func() { _ = counts.Close(ctx) })

	f, err := New(Options{Cache: cache, Client: srv.Client(), Counts: counts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := f.GetPage(ctx, srv.URL); err == nil {
		t.Fatalf("expected error on 500")
	}
	if cache.len() != 0 {
		t.Fatalf("error response was cached")
	}
	// the attempt still counts as a visit
	if v, _ := f.Visits(ctx, srv.URL); v != 1 {
		t.Fatalf("Visits = %d, want 1", v)
	}
}

func TestGetPageBodyCap(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := newTestServer(t, &hits, http.StatusOK, strings.Repeat("a", 100))

	f, err := New(Options{Cache: newMemProvider(), Client: srv.Client(), MaxBody: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := f.GetPage(ctx, srv.URL); err == nil {
		t.Fatalf("expected error for oversized body")
	}
}

func TestGetPageUnreachableOrigin(t *testing.T) {
	ctx := context.Background()
	f, err := New(Options{Cache: newMemProvider()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// port 1 on loopback; nothing listens there
	if _, err := f.GetPage(ctx, "http://127.0.0.1:1/none"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestNilCacheRejected(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected ErrNilCache")
	}
}

func TestNamespaceIsolatesPages(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := newTestServer(t, &hits, http.StatusOK, "shared")

	cache := newMemProvider()
	fa, err := New(Options{Cache: cache, Client: srv.Client(), Namespace: "a", TTL: time.Hour})
	if err != nil {
		t.Fatalf("New a: %v", err)
	}
	fb, err := New(Options{Cache: cache, Client: srv.Client(), Namespace: "b", TTL: time.Hour})
	if err != nil {
		t.Fatalf("New b: %v", err)
	}

	if _, err := fa.GetPage(ctx, srv.URL); err != nil {
		t.Fatalf("GetPage a: %v", err)
	}
	if _, err := fb.GetPage(ctx, srv.URL); err != nil {
		t.Fatalf("GetPage b: %v", err)
	}

	// distinct namespaces do not share cached pages
	if got := hits.Load(); got != 2 {
		t.Fatalf("origin fetched %d times, want 2", got)
	}
}
