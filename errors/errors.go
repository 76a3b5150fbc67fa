// Package errors provides error handling for dojodts.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := load(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'dojodts am show' to inspect the configuration")
//
//	// Check errors
//	if errors.Is(err, errors.ErrInputNotFound) {
//	    // handle missing details file
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Named error kinds. The synthesis core never returns these for malformed
// documentation; they belong to loading, configuration and verification.
var (
	// ErrInputNotFound indicates the details file does not exist
	ErrInputNotFound = New("input not found")

	// ErrInvalidInput indicates the details data does not match the entity model
	ErrInvalidInput = New("invalid input")

	// ErrInvalidAliasTable indicates the type-alias dictionary could not be loaded
	ErrInvalidAliasTable = New("invalid alias table")

	// ErrInvalidPatchTable indicates the patch table could not be loaded
	ErrInvalidPatchTable = New("invalid patch table")

	// ErrTooManyOverloads indicates a parameter list with more stray optionals than allowed
	ErrTooManyOverloads = New("too many overloads")

	// ErrCompileVerificationFailed indicates generated declarations did not pass a checker
	ErrCompileVerificationFailed = New("compile verification failed")

	// ErrServiceUnavailable indicates an external tool is not available
	ErrServiceUnavailable = New("service unavailable")
)

// IsInputNotFound checks if an error is or wraps ErrInputNotFound
func IsInputNotFound(err error) bool {
	return err != nil && Is(err, ErrInputNotFound)
}

// IsVerificationFailure checks if an error is or wraps ErrCompileVerificationFailed
func IsVerificationFailure(err error) bool {
	return err != nil && Is(err, ErrCompileVerificationFailed)
}

// MarkAs wraps err with a message and marks it as the given sentinel so that
// Is(err, kind) holds while the original cause stays inspectable.
func MarkAs(err error, kind error, msg string) error {
	return Mark(Wrap(err, msg), kind)
}

// Newk creates a new error of the given kind with a formatted message
func Newk(kind error, format string, args ...interface{}) error {
	return Mark(Newf(format, args...), kind)
}
