// Package secret holds the transient credential used for ticket acquisition.
//
// A Handle owns the only managed copy of the secret. It is consumed at most
// once, and its storage is zeroed when the request finishes no matter which
// path the request took. Callers are expected to defer Scrub immediately
// after constructing a Handle.
package secret

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Redacted is rendered anywhere the secret would otherwise appear.
const Redacted = "[REDACTED]"

// ErrConsumed is returned by Consume after the secret has already been
// handed out once.
var ErrConsumed = errors.New("secret already consumed")

// ErrScrubbed is returned by Consume after the secret storage has been
// cleared.
var ErrScrubbed = errors.New("secret already scrubbed")

// Handle wraps the raw secret value. Exactly one authoritative copy exists
// for the lifetime of a request.
type Handle struct {
	mu       sync.Mutex
	buf      []byte
	consumed bool
	scrubbed bool
}

// New copies value into a private buffer and returns a handle owning it.
func New(value string) *Handle {
	return &Handle{buf: []byte(value)}
}

// Consume returns a reader over the secret. It may be called at most once.
// The reader is only valid until Scrub is called; the consumer must drain
// it before the request's deferred scrub runs.
func (h *Handle) Consume() (io.Reader, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.scrubbed {
		return nil, ErrScrubbed
	}
	if h.consumed {
		return nil, ErrConsumed
	}
	h.consumed = true
	return bytes.NewReader(h.buf), nil
}

// Scrub overwrites the secret storage with zeros. It is idempotent and safe
// to call whether or not the secret was ever consumed.
func (h *Handle) Scrub() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.buf {
		h.buf[i] = 0
	}
	h.scrubbed = true
}

// Scrubbed reports whether the secret storage has been cleared.
func (h *Handle) Scrubbed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrubbed
}

// LogValue implements slog.LogValuer so that a handle passed to a logger
// can never leak the secret.
func (h *Handle) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}
