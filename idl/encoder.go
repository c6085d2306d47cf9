// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"io"
	"reflect"
)

// magic is the four byte "DIDL" header every output begins with.
var magic = [4]byte{'D', 'I', 'D', 'L'}

// Marshal serializes v as a value of type t and returns the full
// DIDL-framed byte string: magic, type table, root type reference, and
// value payload.
func Marshal(v interface{}, t Type) ([]byte, error) {
	return MarshalIn(DefaultRegistry, v, t)
}

// MarshalIn is Marshal against an explicit Registry instead of
// DefaultRegistry.
func MarshalIn(registry *Registry, v interface{}, t Type) ([]byte, error) {
	builder := NewTypeTableBuilder(registry)
	if err := builder.Build(t); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 64)
	out = append(out, magic[:]...)
	out = appendUleb128(out, uint64(len(builder.Table())))
	for _, entry := range builder.Table() {
		out = append(out, entry...)
	}

	rootRef, err := builder.EncodeRef(t)
	if err != nil {
		return nil, err
	}
	out = append(out, rootRef...)

	vs := NewValueSerializer(registry)
	if err := vs.WriteValue(v, t); err != nil {
		return nil, err
	}
	out = append(out, vs.Bytes()...)
	return out, nil
}

// MarshalValue derives v's Type (via Describable, or reflectively) and
// marshals v against it. This is the common case for callers that don't
// need to share a Type across multiple values.
func MarshalValue(v interface{}) ([]byte, error) {
	t, err := typeOfValue(v)
	if err != nil {
		return nil, err
	}
	return Marshal(v, t)
}

func typeOfValue(v interface{}) (Type, error) {
	if d, ok := v.(Describable); ok {
		return d.IDLType(), nil
	}
	return deriveType(DefaultRegistry, reflect.TypeOf(v))
}

// Encoder writes DIDL-framed values to a sink, one Marshal call per
// Encode: construct around an io.Writer, call in, and errors surface
// through the return value rather than a panic.
type Encoder struct {
	w        io.Writer
	registry *Registry
}

// NewEncoder returns an Encoder writing to w using DefaultRegistry.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, registry: DefaultRegistry}
}

// WithRegistry sets the Registry this Encoder resolves Knot types
// through, returning e for chaining.
func (e *Encoder) WithRegistry(r *Registry) *Encoder {
	e.registry = r
	return e
}

// Encode serializes v as a value of type t and writes the DIDL-framed
// bytes to the Encoder's sink. Encode performs no retry and offers no
// partial-success contract: output written before an I/O error is
// garbage, and a caller must not consume partial writes on error.
func (e *Encoder) Encode(v interface{}, t Type) error {
	buf, err := MarshalIn(e.registry, v, t)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(buf); err != nil {
		return wrapIO(err)
	}
	return nil
}

// EncodeValue derives v's Type the way MarshalValue does, then Encodes.
func (e *Encoder) EncodeValue(v interface{}) error {
	t, err := typeOfValue(v)
	if err != nil {
		return err
	}
	return e.Encode(v, t)
}
