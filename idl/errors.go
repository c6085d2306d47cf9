// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is to test for a specific kind and
// errors.As to recover the richer *UnsupportedError / *HashCollisionError
// value where one was attached.
var (
	// ErrUnsupported is returned for a host construct outside the
	// currently supported subset: floats, chars, raw byte blobs, maps,
	// un-declared sequences, tuples, and unit/newtype variants outside
	// the Variant path.
	ErrUnsupported = errors.New("idl: unsupported construct")

	// ErrUnknownKnot is returned when a Knot has no registered
	// unfolding in the knot registry.
	ErrUnknownKnot = errors.New("idl: knot has no registered unfolding")

	// ErrUnknownType is returned when encode_ref encounters a
	// constructed type that was never assigned a table index; this
	// indicates an internal invariant violation in the builder.
	ErrUnknownType = errors.New("idl: type not present in type table")

	// ErrHashCollision is returned when two fields within the same
	// Record or Variant hash to the same 32-bit idl_hash value.
	ErrHashCollision = errors.New("idl: field name hash collision")

	// ErrIO wraps a failure from the underlying output sink.
	ErrIO = errors.New("idl: write to sink failed")
)

// UnsupportedError carries the Go type that triggered ErrUnsupported.
type UnsupportedError struct {
	Kind string // what was being attempted, e.g. "float64", "map"
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("idl: unsupported construct: %s", e.Kind)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

func unsupportedf(format string, args ...interface{}) error {
	return &UnsupportedError{Kind: fmt.Sprintf(format, args...)}
}

// HashCollisionError carries the two field names that collided and the
// shared hash value.
type HashCollisionError struct {
	First, Second string
	Hash          uint32
}

func (e *HashCollisionError) Error() string {
	return fmt.Sprintf("idl: fields %q and %q both hash to 0x%08x", e.First, e.Second, e.Hash)
}

func (e *HashCollisionError) Unwrap() error { return ErrHashCollision }

// KnotError carries the unresolved knot identifier.
type KnotError struct {
	ID KnotID
}

func (e *KnotError) Error() string {
	return fmt.Sprintf("idl: knot %q has no registered unfolding", string(e.ID))
}

func (e *KnotError) Unwrap() error { return ErrUnknownKnot }

// TypeError carries the type that failed to resolve to a table index.
type TypeError struct {
	Type Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("idl: type %s not present in type table", e.Type)
}

func (e *TypeError) Unwrap() error { return ErrUnknownType }

// ioError wraps an underlying sink error with ErrIO so callers can test
// with errors.Is(err, idl.ErrIO) while still seeing the original cause
// via errors.Unwrap.
type ioError struct {
	cause error
}

func (e *ioError) Error() string { return fmt.Sprintf("idl: write to sink failed: %v", e.cause) }
func (e *ioError) Unwrap() error { return e.cause }
func (e *ioError) Is(target error) bool { return target == ErrIO }

func wrapIO(cause error) error {
	if cause == nil {
		return nil
	}
	return &ioError{cause: cause}
}

// CustomError wraps an externally supplied failure from a schema
// provider (the Custom(msg) kind in the error taxonomy).
type CustomError struct {
	Message string
	Cause   error
}

func (e *CustomError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("idl: %s: %v", e.Message, e.Cause)
	}
	return "idl: " + e.Message
}

func (e *CustomError) Unwrap() error { return e.Cause }

// Custom builds a CustomError for use by schema providers that need to
// report a failure that doesn't fit the other error kinds.
func Custom(message string, cause error) error {
	return &CustomError{Message: message, Cause: cause}
}
