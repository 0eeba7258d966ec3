package secret

import (
	"errors"
	"io"
	"testing"
)

func TestConsumeReturnsSecret(t *testing.T) {
	h := New("hunter2")

	r, err := h.Consume()
	if err != nil {
		t.Fatalf("Consume() error: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading secret: %v", err)
	}
	if string(data) != "hunter2" {
		t.Errorf("expected secret %q, got %q", "hunter2", string(data))
	}
}

func TestConsumeOnlyOnce(t *testing.T) {
	h := New("hunter2")

	if _, err := h.Consume(); err != nil {
		t.Fatalf("first Consume() error: %v", err)
	}
	if _, err := h.Consume(); !errors.Is(err, ErrConsumed) {
		t.Errorf("expected ErrConsumed, got %v", err)
	}
}

func TestConsumeAfterScrub(t *testing.T) {
	h := New("hunter2")
	h.Scrub()

	if _, err := h.Consume(); !errors.Is(err, ErrScrubbed) {
		t.Errorf("expected ErrScrubbed, got %v", err)
	}
}

func TestScrubZeroesStorage(t *testing.T) {
	h := New("hunter2")
	h.Scrub()

	if !h.Scrubbed() {
		t.Error("expected Scrubbed() to be true")
	}
	for i, b := range h.buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %v", i, b)
		}
	}
}

func TestScrubIsIdempotent(t *testing.T) {
	h := New("hunter2")
	h.Scrub()
	h.Scrub()

	if !h.Scrubbed() {
		t.Error("expected Scrubbed() to be true after repeated scrubs")
	}
}

func TestScrubAfterConsume(t *testing.T) {
	h := New("hunter2")

	r, err := h.Consume()
	if err != nil {
		t.Fatalf("Consume() error: %v", err)
	}
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("reading secret: %v", err)
	}

	h.Scrub()
	if !h.Scrubbed() {
		t.Error("expected Scrubbed() to be true")
	}
}

func TestLogValueIsRedacted(t *testing.T) {
	h := New("hunter2")

	if got := h.LogValue().String(); got != Redacted {
		t.Errorf("expected log value %q, got %q", Redacted, got)
	}
}
