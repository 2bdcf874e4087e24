// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package goupilerr implements the typed error kinds surfaced by the
// transport engine to its batch callers.
package goupilerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind classifies why an operation failed.
type Kind int

// error kinds
const (
	InvalidArgumentKind Kind = iota
	DomainKind
	NumericalInstabilityKind
	MissingKind
	CancelledKind
	IoKind
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case InvalidArgumentKind:
		return "InvalidArgument"
	case DomainKind:
		return "Domain"
	case NumericalInstabilityKind:
		return "NumericalInstability"
	case MissingKind:
		return "Missing"
	case CancelledKind:
		return "Cancelled"
	case IoKind:
		return "Io"
	}
	return "Unknown"
}

// Error wraps a formatted message with a Kind so that callers can branch on
// failure category without parsing strings.
type Error struct {
	kind Kind
	err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.err)
}

// Unwrap gives access to the underlying formatted error
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's kind
func (e *Error) Kind() Kind {
	return e.kind
}

// New builds a typed error with a gosl/chk-formatted message, the same
// idiom as mdl/retention.New's `chk.Err(...)` calls.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, err: chk.Err(format, args...)}
}

// InvalidArgument reports shape mismatches, non-unit directions,
// out-of-range indices, or settings coercion violated by the caller.
func InvalidArgument(format string, args ...interface{}) error {
	return New(InvalidArgumentKind, format, args...)
}

// Domain reports an unknown enumerator string or unrecognised mode.
func Domain(format string, args ...interface{}) error {
	return New(DomainKind, format, args...)
}

// NumericalInstability reports a tracer unable to resolve a boundary
// crossing.
func NumericalInstability(format string, args ...interface{}) error {
	return New(NumericalInstabilityKind, format, args...)
}

// Missing reports no geometry set, or a registry missing material data.
func Missing(format string, args ...interface{}) error {
	return New(MissingKind, format, args...)
}

// Cancelled reports a host cancellation signal.
func Cancelled(format string, args ...interface{}) error {
	return New(CancelledKind, format, args...)
}

// Io reports an external geometry backend failure.
func Io(format string, args ...interface{}) error {
	return New(IoKind, format, args...)
}

// Is reports whether err (or something it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
