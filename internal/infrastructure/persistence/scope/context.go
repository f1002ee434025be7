// Package scope implements the scoped data-access engine: every read and
// write issued through a scope.Store is transparently restricted to the
// records the calling principal is authorized to see or create.
//
// A scope.Context describes who is calling and under which authorization
// mode. It is built once per request by the HTTP boundary middleware,
// installed on the request's context.Context, and consulted by the store on
// every operation. Business code never passes it explicitly.
//
// Usage:
//
//	ctx = scope.Install(ctx, sc)
//	store := scope.NewStore[benefits.BenefitRequest](db)
//	requests, err := store.FindAll(ctx, shared.DefaultFilter())
//	// WHERE unit_id = ? (or owner_id = ?) is added automatically
package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Mode is the authorization regime governing which records a caller may see
// or create. The set is closed; ScopeResolver switches over it exhaustively.
type Mode string

const (
	// ModeGlobal grants access to all records
	ModeGlobal Mode = "GLOBAL"
	// ModeUnit restricts access to records of the caller's district office
	ModeUnit Mode = "UNIT"
	// ModeOwn restricts access to records the caller created
	ModeOwn Mode = "OWN"
)

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	switch m {
	case ModeGlobal, ModeUnit, ModeOwn:
		return true
	}
	return false
}

// Engine errors
var (
	// ErrInvalidContext is returned by New when the construction invariants
	// do not hold. It surfaces to the caller as an authorization failure.
	ErrInvalidContext = errors.New("invalid scope context")
	// ErrMissingContext is returned by Require when no context is installed.
	// It indicates a programming error, not a data condition.
	ErrMissingContext = errors.New("no scope context installed")
	// ErrViolation is returned only by explicit assertion helpers; ordinary
	// reads and writes narrow silently instead.
	ErrViolation = errors.New("record outside caller scope")
)

// Context is the immutable description of one caller's authorization scope.
// It is created once per request at the boundary and never mutated.
type Context struct {
	Mode     Mode
	CallerID uuid.UUID
	UnitID   uuid.UUID
}

// New is the single validating constructor for a scope Context. A UNIT
// context without a unit, or any context without a caller, is never
// constructible; validation happens here and nowhere else.
func New(mode Mode, callerID, unitID uuid.UUID) (Context, error) {
	if !mode.Valid() {
		return Context{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidContext, mode)
	}
	if callerID == uuid.Nil {
		return Context{}, fmt.Errorf("%w: caller id is required", ErrInvalidContext)
	}
	if mode == ModeUnit && unitID == uuid.Nil {
		return Context{}, fmt.Errorf("%w: unit id is required under UNIT mode", ErrInvalidContext)
	}
	return Context{Mode: mode, CallerID: callerID, UnitID: unitID}, nil
}

// String renders the context for logs; IDs are included in full because they
// are opaque UUIDs, not personal data.
func (sc Context) String() string {
	if sc.Mode == ModeUnit {
		return fmt.Sprintf("scope(%s caller=%s unit=%s)", sc.Mode, sc.CallerID, sc.UnitID)
	}
	return fmt.Sprintf("scope(%s caller=%s)", sc.Mode, sc.CallerID)
}

type contextKey struct{}

type bypassReasonKey struct{}

// Install binds sc to the returned context for the remainder of the logical
// chain: every goroutine or call that derives from the returned context sees
// the binding. Installing again deeper in the chain replaces the binding for
// continuations derived from that point only; sibling chains keep theirs.
func Install(ctx context.Context, sc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// FromContext returns the installed scope context, if any. It never fails;
// infrastructure code without a request context simply sees ok == false.
func FromContext(ctx context.Context) (Context, bool) {
	sc, ok := ctx.Value(contextKey{}).(Context)
	return sc, ok
}

// Require returns the installed scope context or ErrMissingContext. Use it
// to distinguish intentionally unscoped utility code from a missing boundary
// installation.
func Require(ctx context.Context) (Context, error) {
	sc, ok := FromContext(ctx)
	if !ok {
		return Context{}, ErrMissingContext
	}
	return sc, nil
}

// RunWith executes fn with sc installed for the duration of fn and everything
// it transitively invokes. The caller's own binding is untouched: derivation
// means there is nothing to restore. Used by bulk jobs that impersonate a
// specific scope, and by tests.
func RunWith(ctx context.Context, sc Context, fn func(ctx context.Context) error) error {
	return fn(Install(ctx, sc))
}

// WithBypassReason annotates the context with a human-readable justification
// for a subsequent unscoped call. The reason is attached to the audit entry
// the escape hatch emits.
func WithBypassReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, bypassReasonKey{}, reason)
}

// BypassReason returns the annotated bypass reason, empty if none
func BypassReason(ctx context.Context) string {
	reason, _ := ctx.Value(bypassReasonKey{}).(string)
	return reason
}
