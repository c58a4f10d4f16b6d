// Package sloghooks logs keystash hook events through log/slog, with
// optional sampling and key redaction. Wrap with hooks/async if the
// destination handler can block.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/keystash"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HistoryErrEvery uint64
	DecodeErrEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	historyErrCtr atomic.Uint64
	decodeErrCtr  atomic.Uint64
}

var _ keystash.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) WriteRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("keystash.write_rejected",
		"key", h.redact(key))
}

func (h *Hooks) HistoryAppendError(op string, err error) {
	if h.l == nil || !sample(h.opts.HistoryErrEvery, &h.historyErrCtr) {
		return
	}
	h.l.Warn("keystash.history_append_error",
		"op", op,
		"err", err)
}

func (h *Hooks) LoadDecodeError(key string, err error) {
	if h.l == nil || !sample(h.opts.DecodeErrEvery, &h.decodeErrCtr) {
		return
	}
	h.l.Warn("keystash.load_decode_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) KeyCollision(key string) {
	if h.l == nil {
		return
	}
	h.l.Error("keystash.key_collision",
		"key", h.redact(key))
}
