// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant of the Type sum a value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNat
	KindInt
	KindText
	KindOpt
	KindVec
	KindRecord
	KindVariant
	KindKnot
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNat:
		return "nat"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindOpt:
		return "opt"
	case KindVec:
		return "vec"
	case KindRecord:
		return "record"
	case KindVariant:
		return "variant"
	case KindKnot:
		return "knot"
	default:
		return "invalid"
	}
}

// KnotID is a stable identity for a recursive (mu-bound) type, keyed by
// the host type that introduced it. Two Knot values are equal iff their
// ids are equal.
type KnotID string

// Field is a named member of a Record or Variant. The 32-bit hash of
// Name determines wire order; it is not cached on the Field itself
// since Hash is cheap and Fields are typically built once per schema
// call and then read many times.
type Field struct {
	Name string
	Type Type
}

// Type is an immutable, structurally-comparable description of an IDL
// value's shape. The zero Type is Null. Use the constructor functions
// (OptOf, VecOf, RecordOf, VariantOf, KnotOf) rather than struct literals.
type Type struct {
	kind   Kind
	elem   *Type
	fields []Field
	knot   KnotID
}

// Primitive types.
var (
	Null = Type{kind: KindNull}
	Bool = Type{kind: KindBool}
	Nat  = Type{kind: KindNat}
	Int  = Type{kind: KindInt}
	Text = Type{kind: KindText}
)

// OptOf returns the Opt(T) type.
func OptOf(t Type) Type {
	et := t
	return Type{kind: KindOpt, elem: &et}
}

// VecOf returns the Vec(T) type.
func VecOf(t Type) Type {
	et := t
	return Type{kind: KindVec, elem: &et}
}

// RecordOf returns a Record with the given fields, in the order given.
// In-memory order is insertion order; the wire encoding sorts fields by
// idl_hash(name) separately (see TypeTableBuilder and ValueSerializer).
func RecordOf(fields ...Field) Type {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Type{kind: KindRecord, fields: cp}
}

// VariantOf returns a Variant with the given fields, in the order given.
func VariantOf(fields ...Field) Type {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Type{kind: KindVariant, fields: cp}
}

// KnotOf returns an opaque recursion handle for id. It must resolve
// through a Registry to its one-step unfolding before a TypeTableBuilder
// can use it.
func KnotOf(id KnotID) Type {
	return Type{kind: KindKnot, knot: id}
}

// Kind reports which variant of the Type sum t holds.
func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of an Opt or Vec. It panics if t is not
// one of those kinds; callers should check Kind first.
func (t Type) Elem() Type {
	if t.kind != KindOpt && t.kind != KindVec {
		panic("idl: Elem called on non-Opt/Vec Type")
	}
	return *t.elem
}

// Fields returns the field list of a Record or Variant, in declared
// (insertion) order. It panics if t is not one of those kinds.
func (t Type) Fields() []Field {
	if t.kind != KindRecord && t.kind != KindVariant {
		panic("idl: Fields called on non-Record/Variant Type")
	}
	return t.fields
}

// KnotID returns the recursion handle of a Knot type. It panics if t is
// not a Knot.
func (t Type) KnotID() KnotID {
	if t.kind != KindKnot {
		panic("idl: KnotID called on non-Knot Type")
	}
	return t.knot
}

// IsPrimitive reports whether t is one of Null, Bool, Nat, Int, Text —
// the constructs the TypeTableBuilder never assigns a table index to.
func (t Type) IsPrimitive() bool {
	switch t.kind {
	case KindNull, KindBool, KindNat, KindInt, KindText:
		return true
	default:
		return false
	}
}

// Equal reports whether t and o describe the same type: identical
// constructors and equal children in order. Knot(id) is equal only to
// another Knot with the same id; it is never unfolded by Equal (only
// TypeTableBuilder applies one-step unfolding, when it indexes types).
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindNull, KindBool, KindNat, KindInt, KindText:
		return true
	case KindOpt, KindVec:
		return t.elem.Equal(*o.elem)
	case KindRecord, KindVariant:
		if len(t.fields) != len(o.fields) {
			return false
		}
		for i := range t.fields {
			if t.fields[i].Name != o.fields[i].Name {
				return false
			}
			if !t.fields[i].Type.Equal(o.fields[i].Type) {
				return false
			}
		}
		return true
	case KindKnot:
		return t.knot == o.knot
	default:
		return false
	}
}

// key returns a canonical string encoding of t suitable for use as a map
// key with the same equality as Equal. It is the structural-hash
// surrogate: Go cannot use a struct containing a slice as a map key
// directly, so the TypeTableBuilder indexes types by this string.
func (t Type) key() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t Type) writeKey(b *strings.Builder) {
	switch t.kind {
	case KindNull:
		b.WriteString("N")
	case KindBool:
		b.WriteString("B")
	case KindNat:
		b.WriteString("U")
	case KindInt:
		b.WriteString("I")
	case KindText:
		b.WriteString("T")
	case KindOpt:
		b.WriteString("O(")
		t.elem.writeKey(b)
		b.WriteString(")")
	case KindVec:
		b.WriteString("V(")
		t.elem.writeKey(b)
		b.WriteString(")")
	case KindRecord:
		b.WriteString("R(")
		writeFieldsKey(b, t.fields)
		b.WriteString(")")
	case KindVariant:
		b.WriteString("S(")
		writeFieldsKey(b, t.fields)
		b.WriteString(")")
	case KindKnot:
		b.WriteString("K(")
		b.WriteString(string(t.knot))
		b.WriteString(")")
	}
}

func writeFieldsKey(b *strings.Builder, fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Quote(f.Name))
		b.WriteString(":")
		f.Type.writeKey(b)
	}
}

// String renders t in a small s-expression-like form for error messages
// and test failures; it is not part of the wire format.
func (t Type) String() string {
	switch t.kind {
	case KindNull, KindBool, KindNat, KindInt, KindText:
		return t.kind.String()
	case KindOpt:
		return "opt " + t.elem.String()
	case KindVec:
		return "vec " + t.elem.String()
	case KindRecord, KindVariant:
		names := make([]string, len(t.fields))
		for i, f := range t.fields {
			names[i] = f.Name + ": " + f.Type.String()
		}
		open, close := "{", "}"
		if t.kind == KindVariant {
			open, close = "variant {", "}"
		} else {
			open = "record {"
		}
		return open + strings.Join(names, "; ") + close
	case KindKnot:
		return "knot(" + string(t.knot) + ")"
	default:
		return "<invalid type>"
	}
}

// sortedFields returns a copy of fields ordered by ascending idl_hash of
// Name, detecting and reporting a hash collision as a *HashCollisionError.
func sortedFields(fields []Field) ([]Field, error) {
	type hf struct {
		hash  uint32
		field Field
	}
	hs := make([]hf, len(fields))
	for i, f := range fields {
		hs[i] = hf{hash: Hash(f.Name), field: f}
	}
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].hash < hs[j].hash })
	for i := 1; i < len(hs); i++ {
		if hs[i].hash == hs[i-1].hash {
			return nil, &HashCollisionError{
				First:  hs[i-1].field.Name,
				Second: hs[i].field.Name,
				Hash:   hs[i].hash,
			}
		}
	}
	out := make([]Field, len(hs))
	for i, h := range hs {
		out[i] = h.field
	}
	return out, nil
}
