// Package asynchook decorates keystash.Hooks with a bounded worker queue so
// slow observers never stall the store path. Events are dropped when the
// queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HistoryErrEvery: 10, // sample logs: ~every 10th history failure
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	st, _ := keystash.New[string](keystash.Options[string]{
//	    Provider: provider,
//	    Codec:    codec.String{},
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/keystash"
)

type Hooks struct {
	inner keystash.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ keystash.Hooks = (*Hooks)(nil)

func New(inner keystash.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) WriteRejected(k string) { h.try(func() { h.inner.WriteRejected(k) }) }
func (h *Hooks) KeyCollision(k string)  { h.try(func() { h.inner.KeyCollision(k) }) }
func (h *Hooks) HistoryAppendError(op string, err error) {
	h.try(func() { h.inner.HistoryAppendError(op, err) })
}
func (h *Hooks) LoadDecodeError(k string, err error) {
	h.try(func() { h.inner.LoadDecodeError(k, err) })
}
