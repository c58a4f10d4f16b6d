package counter

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	N         uint64
	UpdatedAt time.Time
}

// LocalStore keeps counters in-process (default).
// Optional cleanup loop to prune long-inactive entries.
type LocalStore struct {
	mu     sync.RWMutex
	counts map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	retention time.Duration
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(cleanupInterval, retention time.Duration) *LocalStore {
	s := &LocalStore{
		counts:    make(map[string]localEntry),
		retention: retention,
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

func (s *LocalStore) Incr(_ context.Context, k string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.counts[k]
	e.N++
	e.UpdatedAt = now
	s.counts[k] = e
	s.mu.Unlock()
	return e.N, nil
}

func (s *LocalStore) Value(_ context.Context, k string) (uint64, error) {
	s.mu.RLock()
	e, ok := s.counts[k]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	return e.N, nil
}

// ValueMany acquires the read lock once and reads all requested keys.
// this avoids per-key lock/unlock overhead.
func (s *LocalStore) ValueMany(_ context.Context, ks []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(ks))
	s.mu.RLock()
	for _, k := range ks {
		out[k] = s.counts[k].N // zero value (0) if missing
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *LocalStore) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for k, e := range s.counts {
		if !e.UpdatedAt.IsZero() && e.UpdatedAt.Before(cutoff) {
			delete(s.counts, k)
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
