// Package krb5 drives the system Kerberos toolchain (klist, kdestroy,
// kinit) as opaque external primitives. The rest of the program never
// inspects ccache contents directly; everything goes through a Toolchain.
package krb5

import (
	"context"
	"io"
)

// Toolchain abstracts the four ccache primitives the engine depends on.
type Toolchain interface {
	// CheckValid reports whether any valid ticket exists in the cache.
	// A false result is a normal outcome, not an error; a non-nil error
	// means the primitive could not be invoked at all.
	CheckValid(ctx context.Context) (bool, error)

	// Listing returns the raw cache listing text. No parsing is applied;
	// callers only perform substring checks against it.
	Listing(ctx context.Context) (string, error)

	// Destroy removes any ticket held for principal. It is best-effort:
	// the absence of a ticket to destroy is not an error. A non-nil error
	// means the primitive could not be invoked.
	Destroy(ctx context.Context, principal string) error

	// Acquire obtains a new ticket for principal. The password is fed to
	// the primitive through its stdin, never through the argument list.
	// flag is the forwardability flag ("", "-f" or "-F"). A run that
	// completes but reports failure returns an *AcquireError carrying the
	// primitive's diagnostic text; any other error means the primitive
	// could not be invoked.
	Acquire(ctx context.Context, principal string, password io.Reader, flag string) error
}

// AcquireError reports that the acquisition primitive ran and failed.
// Diagnostic is the primitive's own error text, surfaced verbatim.
type AcquireError struct {
	Diagnostic string
}

func (e *AcquireError) Error() string {
	return e.Diagnostic
}
