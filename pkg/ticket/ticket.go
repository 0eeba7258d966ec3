// Package ticket decides whether a Kerberos ticket needs to be obtained for
// a principal and drives the toolchain accordingly.
package ticket

import (
	"strings"

	"github.com/KrbTicketProject/krbticket/pkg/secret"
)

// Principal is the identity being authenticated, username@realm.
// Immutable once constructed; rendered verbatim both as the primitive
// argument and as the needle for cache-listing checks.
type Principal struct {
	username string
	realm    string
}

// NewPrincipal builds a principal from its parts. Validation of the parts
// happens before this point, in the request layer.
func NewPrincipal(username, realm string) Principal {
	return Principal{username: username, realm: realm}
}

func (p Principal) Username() string { return p.username }
func (p Principal) Realm() string    { return p.realm }

func (p Principal) String() string {
	return p.username + "@" + p.realm
}

// Forwardability expresses the forwardable-ticket preference.
type Forwardability int

const (
	// ForwardDefault leaves the decision to the host configuration.
	ForwardDefault Forwardability = iota
	// Forwardable requests a forwardable ticket.
	Forwardable
	// NonForwardable requests a non-forwardable ticket.
	NonForwardable
)

// Flag returns the kinit flag for the preference: "" for the host default,
// "-f" for forwardable, "-F" for non-forwardable.
func (f Forwardability) Flag() string {
	switch f {
	case Forwardable:
		return "-f"
	case NonForwardable:
		return "-F"
	default:
		return ""
	}
}

// CacheState is a point-in-time snapshot of the ticket cache. It is built
// fresh for every decision and discarded afterwards.
type CacheState struct {
	HasValidTicket bool
	Listing        string
}

// Contains reports whether the principal appears in the cache listing.
// This is a plain substring check: it does not parse ticket records, so a
// principal whose textual form is a substring of another entry will match.
func (s CacheState) Contains(p Principal) bool {
	return strings.Contains(s.Listing, p.String())
}

// Request is a single ticket-lifecycle request, already validated.
type Request struct {
	Principal      Principal
	Secret         *secret.Handle
	Force          bool
	Forwardability Forwardability
	// DryRun reports the action that would be taken without performing
	// any mutating call.
	DryRun bool
}

// Outcome is the result of one engine invocation. Changed is set only
// after a confirmed successful mutation, or in dry-run after confirming
// one would occur.
type Outcome struct {
	Changed        bool
	Principal      Principal
	Force          bool
	Forwardability Forwardability
	// Diagnostic carries the acquisition primitive's error text verbatim
	// when acquisition failed.
	Diagnostic string
}
