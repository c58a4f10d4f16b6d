// Package fetch retrieves web pages through a TTL cache and counts how many
// times each URL is requested. The page cache is any provider.Provider; the
// request counter is any counter.Store. Both are borrowed: the fetcher does
// not own or close them.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unkn0wn-root/keystash"
	"github.com/unkn0wn-root/keystash/counter"
	pr "github.com/unkn0wn-root/keystash/provider"
)

const (
	defaultTTL     = 10 * time.Second
	defaultMaxBody = 10 << 20 // 10 MiB
)

var ErrNilCache = errors.New("fetch: nil cache provider")

// Options tune the fetcher. Only Cache is required.
type Options struct {
	Cache  pr.Provider   // required; page bodies live here
	Client *http.Client  // nil => http.DefaultClient
	Counts counter.Store // nil => request counting disabled

	TTL       time.Duration   // cached page lifetime; 0 => 10s
	Namespace string          // cache key prefix; "" => bare "page:" keys
	MaxBody   int64           // response body cap in bytes; 0 => 10 MiB
	Logger    keystash.Logger // if nil, NopLogger is used
}

type Fetcher struct {
	cache   pr.Provider
	client  *http.Client
	counts  counter.Store
	ttl     time.Duration
	ns      string
	maxBody int64
	log     keystash.Logger
}

func New(opts Options) (*Fetcher, error) {
	if opts.Cache == nil {
		return nil, ErrNilCache
	}
	f := &Fetcher{
		cache:  opts.Cache,
		counts: opts.Counts,
		ns:     opts.Namespace,
	}
	f.client = opts.Client
	if f.client == nil {
		f.client = http.DefaultClient
	}
	f.ttl = opts.TTL
	if f.ttl == 0 {
		f.ttl = defaultTTL
	}
	f.maxBody = opts.MaxBody
	if f.maxBody == 0 {
		f.maxBody = defaultMaxBody
	}
	f.log = opts.Logger
	if f.log == nil {
		f.log = keystash.NopLogger{}
	}
	return f, nil
}

// GetPage returns the body of url, served from cache when a fresh copy
// exists. Every call counts as a visit, cache hit or not. Cache and counter
// failures degrade to a plain fetch; only the HTTP request itself can fail
// the call.
func (f *Fetcher) GetPage(ctx context.Context, url string) (string, error) {
	if f.counts != nil {
		if _, err := f.counts.Incr(ctx, url); err != nil {
			f.log.Warn("visit count failed", keystash.Fields{"url": url, "err": err})
		}
	}

	ck := f.pageKey(url)
	if raw, ok, err := f.cache.Get(ctx, ck); err == nil && ok {
		return string(raw), nil
	} else if err != nil {
		f.log.Warn("page cache read failed", keystash.Fields{"url": url, "err": err})
	}

	body, err := f.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if ok, err := f.cache.Set(ctx, ck, body, int64(len(body)), f.ttl); err != nil {
		f.log.Warn("page cache write failed", keystash.Fields{"url": url, "err": err})
	} else if !ok {
		f.log.Debug("page cache rejected write (pressure)", keystash.Fields{"url": url})
	}

	return string(body), nil
}

// Visits returns how many times url has been requested through GetPage.
// Zero when counting is disabled.
func (f *Fetcher) Visits(ctx context.Context, url string) (uint64, error) {
	if f.counts == nil {
		return 0, nil
	}
	return f.counts.Value(ctx, url)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %q: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %q: read body: %w", url, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("fetch %q: body exceeds %d bytes", url, f.maxBody)
	}
	return body, nil
}

func (f *Fetcher) pageKey(url string) string {
	if f.ns == "" {
		return "page:" + url
	}
	return "page:" + f.ns + ":" + url
}
