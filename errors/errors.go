// Package errors provides error handling for circulate.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints surfaced to the librarian-facing CLI
//
// Usage:
//
//	// Wrap with context
//	if err := store.SetAvailability(id, holder); err != nil {
//	    return errors.Wrap(err, "failed to update catalog")
//	}
//
//	// Check discriminated outcomes
//	if errors.Is(err, errors.ErrBookUnavailable) {
//	    // report to caller, do not crash
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the circulation core.
// Use these with errors.Is() for type-safe outcome checking.
// Wrap them with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidMemberID indicates a member ID that is not exactly four
	// lowercase ASCII letters
	ErrInvalidMemberID = New("invalid member ID")

	// ErrInvalidBookID indicates a book ID that is not a digit-only
	// string within the catalog range
	ErrInvalidBookID = New("invalid book ID")

	// ErrBookUnavailable indicates a checkout attempt on a book that is
	// already on loan
	ErrBookUnavailable = New("book is not available for loan")

	// ErrAlreadyAvailable indicates a return attempt on a book that is
	// not on loan; callers treat this as an idempotent no-op signal
	ErrAlreadyAvailable = New("book is already available")

	// ErrStoreUnavailable indicates the backing catalog or ledger file
	// could not be read
	ErrStoreUnavailable = New("store unavailable")

	// ErrPersistence indicates a rewrite of the catalog or ledger could
	// not complete; prior durable state is unchanged
	ErrPersistence = New("persistence failure")

	// ErrNoLoanHistory indicates a member with no ledger entries; the
	// recommendation engine falls back to popularity ranking instead of
	// surfacing this to the caller
	ErrNoLoanHistory = New("member has no loan history")
)

// IsValidation reports whether err is one of the input-validation
// outcomes that should be shown to the operator rather than logged as
// a system fault.
func IsValidation(err error) bool {
	return err != nil && IsAny(err, ErrInvalidMemberID, ErrInvalidBookID)
}

// IsStoreUnavailable checks if an error is or wraps ErrStoreUnavailable.
func IsStoreUnavailable(err error) bool {
	return err != nil && Is(err, ErrStoreUnavailable)
}

// IsPersistence checks if an error is or wraps ErrPersistence.
func IsPersistence(err error) bool {
	return err != nil && Is(err, ErrPersistence)
}
