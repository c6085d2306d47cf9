// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

// Result is the two-armed tagged union Result<T,E>: Variant[{Ok: T},
// {Err: E}]. Go has no built-in sum type, so this is the generic stand-in:
// a struct with two optional arms realizing the same contract an
// interface or trait-object sum type would elsewhere.
type Result[T, E any] struct {
	ok  *T
	err *E
}

// Ok builds a Result holding a success value.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: &v}
}

// Err builds a Result holding a failure value.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: &e}
}

// IsOk reports whether r holds the Ok arm.
func (r Result[T, E]) IsOk() bool { return r.ok != nil }

// IDLType implements Describable. The field names are fixed ("Ok",
// "Err"); their hashes (17724 and 3456837 respectively) happen to
// already sort Ok before Err.
func (r Result[T, E]) IDLType() Type {
	return VariantOf(
		Field{Name: "Ok", Type: TypeOf[T]()},
		Field{Name: "Err", Type: TypeOf[E]()},
	)
}

// IDLVariant implements the value-path variantCarrier contract used by
// ValueSerializer.
func (r Result[T, E]) IDLVariant() VariantValue {
	if r.ok != nil {
		return VariantValue{Name: "Ok", Value: *r.ok}
	}
	return VariantValue{Name: "Err", Value: *r.err}
}
