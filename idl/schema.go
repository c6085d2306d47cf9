// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import "reflect"

// Describable lets a host type override the default reflective schema
// derivation by supplying its own Type directly: IDLType is the typed
// schema a host type provides, and for a recursive host type, its KnotID
// is whatever id it passes to DefineRecursive.
type Describable interface {
	IDLType() Type
}

// TypeOf returns the Type describing Go type T. If T implements
// Describable, its IDLType method is used directly; otherwise T is
// derived reflectively (see deriveType). TypeOf panics on an
// unsupported T, the same way a derive macro fails at compile time
// rather than at serialization time.
func TypeOf[T any]() Type {
	var zero T
	if d, ok := any(zero).(Describable); ok {
		return d.IDLType()
	}
	t, err := deriveType(DefaultRegistry, reflect.TypeOf(zero))
	if err != nil {
		panic(err)
	}
	return t
}

// Struct is a thin, explicit alternative to reflective derivation: it
// builds a Record type directly from a field list, for callers that
// would rather declare their wire shape by hand than rely on struct
// tags.
func Struct(fields ...Field) Type {
	return RecordOf(fields...)
}

// ReflectStruct derives the Type of v's concrete Go type the same way
// TypeOf does, but from a value instead of a type parameter; useful from
// non-generic call sites.
func ReflectStruct(v interface{}) (Type, error) {
	return deriveType(DefaultRegistry, reflect.TypeOf(v))
}

// KnotIDOf returns the stable recursion identity TypeOf/ReflectStruct
// use for a named Go type: its package path and type name. Anonymous
// types have no stable identity and must not recurse through
// KnotIDOf-keyed registration.
func KnotIDOf(rt reflect.Type) KnotID {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Name() == "" {
		return ""
	}
	return KnotID(rt.PkgPath() + "." + rt.Name())
}

// DefineRecursive registers build's result as the unfolding for id in
// DefaultRegistry (idempotently, collapsing concurrent first writers)
// and returns Knot(id). Use this from a Describable.IDLType
// implementation for a self-referential host type: compute the full
// structural Type inside build, using KnotOf(id) at the back-edges.
// build must not call DefineRecursive with the same id: Registry.Resolve
// does not let build resolve its own id.
func DefineRecursive(id KnotID, build func() Type) Type {
	return DefineRecursiveIn(DefaultRegistry, id, build)
}

// DefineRecursiveIn is DefineRecursive against an explicit registry
// instead of DefaultRegistry.
func DefineRecursiveIn(r *Registry, id KnotID, build func() Type) Type {
	r.Resolve(id, build)
	return KnotOf(id)
}

// derivation is the state threaded through deriveType's recursive walk:
// visiting detects a Go type currently being derived (a cycle), and used
// records which of those cycle points were actually referenced, so a
// struct that merely *could* recurse (but whose fields never close the
// loop) isn't needlessly registered as a knot.
type derivation struct {
	registry *Registry
	visiting map[reflect.Type]KnotID
	used     map[KnotID]bool
}

// deriveType computes the Type for a reflect.Type reflectively: Go bool
// maps to Bool; every signed integer kind to Int; every unsigned integer
// kind (and uintptr) to Nat; string to Text; pointers to Opt; slices and
// arrays to Vec; the zero-field struct to Null; any other struct to a
// Record whose fields come from exported fields, named by an `idl:"..."`
// tag or the Go field name. Self-referential struct types are supported
// via the registry: a struct encountered while it is already being
// derived yields a Knot back-reference instead of recursing forever.
func deriveType(registry *Registry, rt reflect.Type) (Type, error) {
	d := &derivation{registry: registry, visiting: map[reflect.Type]KnotID{}, used: map[KnotID]bool{}}
	return d.derive(rt)
}

func (d *derivation) derive(rt reflect.Type) (Type, error) {
	if id, ok := d.visiting[rt]; ok {
		d.used[id] = true
		return KnotOf(id), nil
	}

	switch rt.Kind() {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Nat, nil
	case reflect.String:
		return Text, nil
	case reflect.Ptr:
		e, err := d.derive(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		return OptOf(e), nil
	case reflect.Slice, reflect.Array:
		e, err := d.derive(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		return VecOf(e), nil
	case reflect.Struct:
		return d.deriveStruct(rt)
	default:
		return Type{}, unsupportedf("go kind %s", rt.Kind())
	}
}

func (d *derivation) deriveStruct(rt reflect.Type) (Type, error) {
	if rt.NumField() == 0 {
		return Null, nil
	}

	id := KnotIDOf(rt)
	if id != "" {
		d.visiting[rt] = id
		defer delete(d.visiting, rt)
	}

	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		ft, err := d.derive(f.Type)
		if err != nil {
			return Type{}, err
		}
		fields = append(fields, Field{Name: fieldName(f), Type: ft})
	}

	full := RecordOf(fields...)
	if id != "" && d.used[id] {
		d.registry.Register(id, full)
	}
	return full, nil
}
