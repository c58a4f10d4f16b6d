package history

import (
	"context"
	"sync"
	"time"
)

// LocalStore keeps history in-process.
// Optional per-op record cap and a cleanup loop to prune long-inactive ops.
type LocalStore struct {
	mu     sync.RWMutex
	ops    map[string][]Entry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	maxEntries int
	retention  time.Duration
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates an in-process history store.
// maxEntries caps records per op (0 = unbounded). When cleanupInterval and
// retention are both > 0, ops with no appends for retention are pruned.
func NewLocalStore(maxEntries int, cleanupInterval, retention time.Duration) *LocalStore {
	s := &LocalStore{
		ops:        make(map[string][]Entry),
		maxEntries: maxEntries,
		retention:  retention,
	}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *LocalStore) Append(_ context.Context, op string, e Entry) error {
	s.mu.Lock()
	rs := append(s.ops[op], e)
	if s.maxEntries > 0 && len(rs) > s.maxEntries {
		rs = rs[len(rs)-s.maxEntries:]
	}
	s.ops[op] = rs
	s.mu.Unlock()
	return nil
}

// Entries copies the slice under the read lock so callers can hold the
// result across later appends.
func (s *LocalStore) Entries(_ context.Context, op string) ([]Entry, error) {
	s.mu.RLock()
	rs := s.ops[op]
	out := make([]Entry, len(rs))
	copy(out, rs)
	s.mu.RUnlock()
	return out, nil
}

func (s *LocalStore) Len(_ context.Context, op string) (int64, error) {
	s.mu.RLock()
	n := len(s.ops[op])
	s.mu.RUnlock()
	return int64(n), nil
}

// Cleanup drops ops whose newest record is older than retention.
func (s *LocalStore) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for op, rs := range s.ops {
		if len(rs) == 0 || rs[len(rs)-1].At.Before(cutoff) {
			delete(s.ops, op)
		}
	}
	s.mu.Unlock()
}

func (s *LocalStore) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		if s.ticker != nil {
			s.ticker.Stop() // stop ticker before waiting
		}
		s.wg.Wait()
	}
	return nil
}
