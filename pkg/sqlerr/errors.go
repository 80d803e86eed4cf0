// Package sqlerr defines the error taxonomy shared by the statement assembly packages.
//
// Every error carries a Kind, the operation that failed and, where it applies, the
// offending field or column:
//
//	err := sqlerr.Usage("EqualRequired", "user_id", "value can not be nil")
//	err.Error() // usage error in EqualRequired (user_id): value can not be nil
//
// Use the Is* helpers to branch on the kind. They look through github.com/pkg/errors
// wrapping, so callers may annotate errors freely.
package sqlerr

import (
	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind int

const (
	// KindUsage marks caller misuse: appending in the wrong order, binding twice,
	// passing nil to a required comparison.
	KindUsage Kind = iota + 1

	// KindConfiguration marks references to logical databases or tables that the
	// catalog does not know.
	KindConfiguration

	// KindInternal marks a broken engine invariant, such as an invalid expression
	// reaching the renderer.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindConfiguration:
		return "configuration error"
	case KindInternal:
		return "internal invariant error"
	default:
		return "error"
	}
}

// Error is the error type returned by the assembly packages.
type Error struct {
	Kind  Kind
	Op    string
	Field string
	Err   error
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *Error) Cause() error { return e.Err }

// Unwrap supports the standard errors package.
func (e *Error) Unwrap() error { return e.Err }

// Usage returns a KindUsage error.
func Usage(op, field, format string, args ...any) error {
	return newError(KindUsage, op, field, format, args...)
}

// Configuration returns a KindConfiguration error.
func Configuration(op, field, format string, args ...any) error {
	return newError(KindConfiguration, op, field, format, args...)
}

// Internal returns a KindInternal error.
func Internal(op, field, format string, args ...any) error {
	return newError(KindInternal, op, field, format, args...)
}

// WrapConfiguration wraps err as a KindConfiguration error unless it already
// carries a kind.
func WrapConfiguration(err error, op, field string) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != 0 {
		return err
	}
	return &Error{Kind: KindConfiguration, Op: op, Field: field, Err: err}
}

// WithOp returns err reported under op. Errors that are not an *Error are returned
// unchanged.
func WithOp(err error, op string) error {
	var e *Error
	if !errors.As(err, &e) || e.Op == op {
		return err
	}

	cp := *e
	cp.Op = op
	return &cp
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool { return KindOf(err) == KindUsage }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }

// IsInternal reports whether err is an internal invariant error.
func IsInternal(err error) bool { return KindOf(err) == KindInternal }

func newError(kind Kind, op, field, format string, args ...any) error {
	return &Error{
		Kind:  kind,
		Op:    op,
		Field: field,
		Err:   errors.Errorf(format, args...),
	}
}
