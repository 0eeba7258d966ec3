// Package fake provides a scripted in-memory Toolchain for tests.
package fake

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/KrbTicketProject/krbticket/pkg/krb5"
)

// Call records a single primitive invocation.
type Call struct {
	Op        string // "check", "listing", "destroy", "acquire"
	Principal string
	Flag      string
	Password  string // what arrived on the acquire primitive's stdin
}

// Toolchain is a scripted krb5.Toolchain that records every call.
type Toolchain struct {
	// Scripted responses.
	Valid       bool
	ValidErr    error
	ListingText string
	ListingErr  error
	DestroyErr  error
	AcquireErr  error

	mu    sync.Mutex
	calls []Call
}

var _ krb5.Toolchain = (*Toolchain)(nil)

func (t *Toolchain) CheckValid(ctx context.Context) (bool, error) {
	t.record(Call{Op: "check"})
	if t.ValidErr != nil {
		return false, t.ValidErr
	}
	return t.Valid, nil
}

func (t *Toolchain) Listing(ctx context.Context) (string, error) {
	t.record(Call{Op: "listing"})
	if t.ListingErr != nil {
		return "", t.ListingErr
	}
	return t.ListingText, nil
}

func (t *Toolchain) Destroy(ctx context.Context, principal string) error {
	t.record(Call{Op: "destroy", Principal: principal})
	return t.DestroyErr
}

func (t *Toolchain) Acquire(ctx context.Context, principal string, password io.Reader, flag string) error {
	data, err := io.ReadAll(password)
	if err != nil {
		return fmt.Errorf("reading password stream: %w", err)
	}
	t.record(Call{Op: "acquire", Principal: principal, Flag: flag, Password: string(data)})
	return t.AcquireErr
}

func (t *Toolchain) record(c Call) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, c)
}

// Calls returns every recorded invocation in order.
func (t *Toolchain) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// CallsTo returns the recorded invocations of a single primitive.
func (t *Toolchain) CallsTo(op string) []Call {
	var out []Call
	for _, c := range t.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the recorded calls, keeping the scripted responses.
func (t *Toolchain) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = nil
}
