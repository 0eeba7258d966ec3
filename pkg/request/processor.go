// Package request translates raw inputs into validated domain values,
// runs the ticket engine, and formats the result.
package request

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/KrbTicketProject/krbticket/pkg/krb5"
	"github.com/KrbTicketProject/krbticket/pkg/secret"
	"github.com/KrbTicketProject/krbticket/pkg/ticket"
)

// Request carries the raw, unvalidated inputs of one invocation.
type Request struct {
	Username string
	Password string
	Realm    string
	Force    bool
	// Forwardable is tri-state: nil means the host default applies.
	Forwardable *bool
	DryRun      bool
}

// Result is the rendered outcome. The password field always carries the
// redaction marker, never the real value.
type Result struct {
	Changed     bool   `json:"changed"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Realm       string `json:"realm"`
	Principal   string `json:"principal"`
	Force       bool   `json:"force"`
	Forwardable string `json:"forwardable"`
	Failed      bool   `json:"failed,omitempty"`
	Msg         string `json:"msg,omitempty"`
}

// Processor validates requests and runs them through the engine.
type Processor struct {
	tools  krb5.Toolchain
	logger *slog.Logger
}

// NewProcessor creates a processor over the given toolchain. If logger is
// nil, slog.Default() is used.
func NewProcessor(tools krb5.Toolchain, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{tools: tools, logger: logger}
}

// Run processes a single request. The returned Result is always populated
// with the best-effort fields gathered so far; a non-nil error marks the
// request as failed. The secret is scrubbed before Run returns on every
// path, including validation rejection.
func (p *Processor) Run(ctx context.Context, req Request) (Result, error) {
	res := Result{
		Username:    req.Username,
		Password:    secret.Redacted,
		Realm:       req.Realm,
		Force:       req.Force,
		Forwardable: forwardability(req.Forwardable).Flag(),
	}

	handle := secret.New(req.Password)
	defer handle.Scrub()

	if err := validate(req); err != nil {
		res.Failed = true
		res.Msg = err.Error()
		return res, err
	}

	principal := ticket.NewPrincipal(req.Username, req.Realm)
	res.Principal = principal.String()

	logger := p.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("principal", principal.String()),
	)

	engine := ticket.NewEngine(p.tools, logger)
	out, err := engine.Ensure(ctx, ticket.Request{
		Principal:      principal,
		Secret:         handle,
		Force:          req.Force,
		Forwardability: forwardability(req.Forwardable),
		DryRun:         req.DryRun,
	})

	res.Changed = out.Changed
	if err != nil {
		res.Failed = true
		if out.Diagnostic != "" {
			res.Msg = out.Diagnostic
		} else {
			res.Msg = err.Error()
		}
		return res, err
	}
	return res, nil
}

// validate rejects malformed inputs before any external call is made.
func validate(req Request) error {
	if req.Username == "" {
		return &ticket.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.ContainsAny(req.Username, "@ \t\n") {
		return &ticket.ValidationError{Field: "username", Reason: "must not contain '@' or whitespace"}
	}
	if req.Realm == "" {
		return &ticket.ValidationError{Field: "realm", Reason: "must not be empty"}
	}
	if strings.ContainsAny(req.Realm, "@ \t\n") {
		return &ticket.ValidationError{Field: "realm", Reason: "must not contain '@' or whitespace"}
	}
	if req.Password == "" {
		return &ticket.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	return nil
}

func forwardability(pref *bool) ticket.Forwardability {
	switch {
	case pref == nil:
		return ticket.ForwardDefault
	case *pref:
		return ticket.Forwardable
	default:
		return ticket.NonForwardable
	}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var vErr *ticket.ValidationError
	return errors.As(err, &vErr)
}
