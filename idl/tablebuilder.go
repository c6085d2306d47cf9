// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

// Primitive reference opcodes, emitted as SLEB128 wherever a type
// reference is needed (table entry bodies and the root reference).
const (
	opNull    = -1
	opBool    = -2
	opNat     = -3
	opInt     = -4
	opText    = -15
	opOpt     = -18
	opVec     = -19
	opRecord  = -20
	opVariant = -21
)

// TypeTableBuilder enumerates every non-primitive constructed type
// reachable from a root Type exactly once, assigns each a dense index,
// and produces a canonical byte encoding referring to other constructed
// types by index and to primitives by a fixed negative opcode.
//
// The zero value is not usable; construct with NewTypeTableBuilder.
type TypeTableBuilder struct {
	registry *Registry
	table    [][]byte
	index    map[string]int
}

// NewTypeTableBuilder returns a builder that resolves Knot references
// through registry. Passing nil uses DefaultRegistry.
func NewTypeTableBuilder(registry *Registry) *TypeTableBuilder {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &TypeTableBuilder{
		registry: registry,
		index:    make(map[string]int),
	}
}

// Table returns the accumulated type-table entries, in index order.
func (b *TypeTableBuilder) Table() [][]byte { return b.table }

// IndexOf returns the table index assigned to t, if any.
func (b *TypeTableBuilder) IndexOf(t Type) (int, bool) {
	i, ok := b.index[t.key()]
	return i, ok
}

// Build walks t, populating the table and index. It is safe to call
// Build more than once on the same builder (e.g. for a root type whose
// children were already reachable from a previous call); already-indexed
// types return immediately.
func (b *TypeTableBuilder) Build(t Type) error {
	if t.IsPrimitive() {
		return nil
	}
	if _, ok := b.index[t.key()]; ok {
		return nil
	}

	// One-step unroll: replace every top-level Knot child with its
	// registered unfolding, without recursing past constructed
	// children. If the unrolled form is already indexed, t is an alias
	// for it — this merges syntactically distinct but structurally
	// equivalent mu-encodings (spec step 3).
	u, err := b.unroll(t)
	if err != nil {
		return err
	}
	if u.IsPrimitive() {
		return nil // a Knot unfolding to a primitive needs no table entry
	}
	if u.key() != t.key() {
		if err := b.Build(u); err != nil {
			return err
		}
		if idx, ok := b.index[u.key()]; ok {
			b.index[t.key()] = idx
			return nil
		}
	}

	idx := len(b.table)
	b.index[t.key()] = idx
	b.table = append(b.table, nil) // placeholder reserving the index

	buf, err := b.encodeType(t)
	if err != nil {
		return err
	}
	b.table[idx] = buf
	return nil
}

// unroll replaces t's top-level Knot children (including t itself, if it
// is a Knot) with their registered unfolding. It does not recurse past
// constructed children.
func (b *TypeTableBuilder) unroll(t Type) (Type, error) {
	if t.Kind() == KindKnot {
		unfolded, ok := b.registry.Lookup(t.KnotID())
		if !ok {
			return Type{}, &KnotError{ID: t.KnotID()}
		}
		return unfolded, nil
	}
	switch t.Kind() {
	case KindOpt:
		e := t.Elem()
		if e.Kind() == KindKnot {
			ue, err := b.unroll(e)
			if err != nil {
				return Type{}, err
			}
			return OptOf(ue), nil
		}
	case KindVec:
		e := t.Elem()
		if e.Kind() == KindKnot {
			ue, err := b.unroll(e)
			if err != nil {
				return Type{}, err
			}
			return VecOf(ue), nil
		}
	case KindRecord, KindVariant:
		fields := t.Fields()
		changed := false
		out := make([]Field, len(fields))
		for i, f := range fields {
			out[i] = f
			if f.Type.Kind() == KindKnot {
				uf, err := b.unroll(f.Type)
				if err != nil {
					return Type{}, err
				}
				out[i] = Field{Name: f.Name, Type: uf}
				changed = true
			}
		}
		if changed {
			if t.Kind() == KindRecord {
				return RecordOf(out...), nil
			}
			return VariantOf(out...), nil
		}
	}
	return t, nil
}

// encodeType builds children first (so their indices exist), then
// produces the canonical byte buffer for t.
func (b *TypeTableBuilder) encodeType(t Type) ([]byte, error) {
	var buf []byte
	switch t.Kind() {
	case KindOpt:
		e := t.Elem()
		if err := b.Build(e); err != nil {
			return nil, err
		}
		buf = appendSleb128(buf, opOpt)
		ref, err := b.encodeRef(e)
		if err != nil {
			return nil, err
		}
		buf = append(buf, ref...)

	case KindVec:
		e := t.Elem()
		if err := b.Build(e); err != nil {
			return nil, err
		}
		buf = appendSleb128(buf, opVec)
		ref, err := b.encodeRef(e)
		if err != nil {
			return nil, err
		}
		buf = append(buf, ref...)

	case KindRecord, KindVariant:
		sorted, err := sortedFields(t.Fields())
		if err != nil {
			return nil, err
		}
		for _, f := range sorted {
			if err := b.Build(f.Type); err != nil {
				return nil, err
			}
		}
		op := int64(opRecord)
		if t.Kind() == KindVariant {
			op = opVariant
		}
		buf = appendSleb128(buf, op)
		buf = appendUleb128(buf, uint64(len(sorted)))
		for _, f := range sorted {
			buf = appendUleb128(buf, uint64(Hash(f.Name)))
			ref, err := b.encodeRef(f.Type)
			if err != nil {
				return nil, err
			}
			buf = append(buf, ref...)
		}

	default:
		return nil, unsupportedf("type %s cannot be indexed", t)
	}
	return buf, nil
}

// EncodeRef emits a reference to t: primitives get a fixed negative
// SLEB128 opcode, Knot resolves through the registry to the reference of
// its unfolding (the opcode of a primitive, otherwise its table index),
// and any other constructed type emits its own table index as a
// non-negative SLEB128 integer.
func (b *TypeTableBuilder) EncodeRef(t Type) ([]byte, error) {
	return b.encodeRef(t)
}

func (b *TypeTableBuilder) encodeRef(t Type) ([]byte, error) {
	switch t.Kind() {
	case KindNull:
		return appendSleb128(nil, opNull), nil
	case KindBool:
		return appendSleb128(nil, opBool), nil
	case KindNat:
		return appendSleb128(nil, opNat), nil
	case KindInt:
		return appendSleb128(nil, opInt), nil
	case KindText:
		return appendSleb128(nil, opText), nil
	case KindKnot:
		unfolded, ok := b.registry.Lookup(t.KnotID())
		if !ok {
			return nil, &KnotError{ID: t.KnotID()}
		}
		if unfolded.IsPrimitive() {
			return b.encodeRef(unfolded)
		}
		idx, ok := b.index[unfolded.key()]
		if !ok {
			return nil, &TypeError{Type: unfolded}
		}
		return appendSleb128(nil, int64(idx)), nil
	default:
		idx, ok := b.index[t.key()]
		if !ok {
			return nil, &TypeError{Type: t}
		}
		return appendSleb128(nil, int64(idx)), nil
	}
}
