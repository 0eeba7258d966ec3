package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KrbTicketProject/krbticket/pkg/krb5"
)

// action is the engine's decision for a request.
type action int

const (
	// skipExisting leaves the cache untouched: a valid ticket for the
	// principal already exists.
	skipExisting action = iota
	// forceReplace destroys any existing ticket and acquires a new one.
	forceReplace
	// acquireNew obtains a ticket without destroying anything first.
	acquireNew
)

// Engine is the ticket-lifecycle decision state machine. It owns no state
// across invocations; every call re-inspects the cache from scratch.
type Engine struct {
	tools  krb5.Toolchain
	logger *slog.Logger
}

// NewEngine creates an engine over the given toolchain. If logger is nil,
// slog.Default() is used.
func NewEngine(tools krb5.Toolchain, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{tools: tools, logger: logger}
}

// Ensure makes sure a valid ticket exists for the request's principal,
// acquiring one only when needed. In dry-run mode it reports the action
// that would be taken without invoking the destroy or acquire primitives.
//
// The cache may be modified by unrelated processes between inspection and
// action; that window is accepted, not masked.
func (e *Engine) Ensure(ctx context.Context, req Request) (Outcome, error) {
	out := Outcome{
		Principal:      req.Principal,
		Force:          req.Force,
		Forwardability: req.Forwardability,
	}

	act, err := e.decide(ctx, req)
	if err != nil {
		return out, err
	}

	if act == skipExisting {
		e.logger.InfoContext(ctx, "valid ticket already held, nothing to do",
			slog.String("principal", req.Principal.String()),
		)
		return out, nil
	}

	if req.DryRun {
		e.logger.InfoContext(ctx, "dry run: ticket would be acquired",
			slog.String("principal", req.Principal.String()),
			slog.Bool("force", req.Force),
		)
		out.Changed = true
		return out, nil
	}

	if act == forceReplace {
		if err := e.tools.Destroy(ctx, req.Principal.String()); err != nil {
			return out, &InvocationError{Op: "destroy", Err: err}
		}
	}

	if err := e.acquire(ctx, req, &out); err != nil {
		return out, err
	}

	out.Changed = true
	e.logger.InfoContext(ctx, "ticket acquired",
		slog.String("principal", req.Principal.String()),
		slog.Bool("force", req.Force),
	)
	return out, nil
}

// decide evaluates the decision policy. With force set the cache is not
// even inspected; otherwise a fresh snapshot determines whether the
// principal is already covered.
func (e *Engine) decide(ctx context.Context, req Request) (action, error) {
	if req.Force {
		return forceReplace, nil
	}

	valid, err := e.tools.CheckValid(ctx)
	if err != nil {
		return 0, &InvocationError{Op: "cache-status", Err: err}
	}
	if !valid {
		return acquireNew, nil
	}

	listing, err := e.tools.Listing(ctx)
	if err != nil {
		return 0, &InvocationError{Op: "cache-listing", Err: err}
	}

	state := CacheState{HasValidTicket: true, Listing: listing}
	if state.Contains(req.Principal) {
		return skipExisting, nil
	}
	// A valid ticket exists, but not for this principal.
	return acquireNew, nil
}

// acquire consumes the secret exactly once and runs the acquisition
// primitive. The secret storage is scrubbed as soon as the primitive
// returns, whatever the result.
func (e *Engine) acquire(ctx context.Context, req Request, out *Outcome) error {
	password, err := req.Secret.Consume()
	if err != nil {
		return fmt.Errorf("consuming secret: %w", err)
	}

	err = e.tools.Acquire(ctx, req.Principal.String(), password, req.Forwardability.Flag())
	req.Secret.Scrub()

	if err != nil {
		var acqErr *krb5.AcquireError
		if errors.As(err, &acqErr) {
			out.Diagnostic = acqErr.Diagnostic
			return &AcquisitionError{Diagnostic: acqErr.Diagnostic}
		}
		return &InvocationError{Op: "acquire", Err: err}
	}
	return nil
}
