// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import "reflect"

// VariantValue identifies which arm of a Variant a value occupies. A
// Go value being serialized against a Variant/Result Type must either
// be a VariantValue itself or implement variantCarrier.
type VariantValue struct {
	Name  string
	Value interface{}
}

type variantCarrier interface {
	IDLVariant() VariantValue
}

// ValueSerializer emits payload bytes for a value consistent with a
// declared Type. Construct with NewValueSerializer; the zero value is
// not usable because it has no registry to resolve Knot types through.
type ValueSerializer struct {
	registry *Registry
	buf      []byte
}

// NewValueSerializer returns a ValueSerializer that resolves Knot types
// through registry. Passing nil uses DefaultRegistry.
func NewValueSerializer(registry *Registry) *ValueSerializer {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &ValueSerializer{registry: registry}
}

// Bytes returns the accumulated payload.
func (s *ValueSerializer) Bytes() []byte { return s.buf }

// WriteValue serializes v according to t, appending to the internal
// buffer.
func (s *ValueSerializer) WriteValue(v interface{}, t Type) error {
	switch t.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return s.writeBool(v)
	case KindNat:
		return s.writeNat(v)
	case KindInt:
		return s.writeInt(v)
	case KindText:
		return s.writeText(v)
	case KindOpt:
		return s.writeOpt(v, t)
	case KindVec:
		return s.writeVec(v, t)
	case KindRecord:
		return s.writeRecord(v, t)
	case KindVariant:
		return s.writeVariant(v, t)
	case KindKnot:
		unfolded, ok := s.registry.Lookup(t.KnotID())
		if !ok {
			return &KnotError{ID: t.KnotID()}
		}
		return s.WriteValue(v, unfolded)
	default:
		return unsupportedf("type kind %d", t.Kind())
	}
}

func (s *ValueSerializer) writeBool(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return unsupportedf("bool value of type %T", v)
	}
	n := int64(0)
	if rv.Bool() {
		n = 1
	}
	s.buf = appendSleb128(s.buf, n)
	return nil
}

func (s *ValueSerializer) writeInt(v interface{}) error {
	n, ok := asInt64(v)
	if !ok {
		return unsupportedf("int value of type %T", v)
	}
	s.buf = appendSleb128(s.buf, n)
	return nil
}

func (s *ValueSerializer) writeNat(v interface{}) error {
	n, ok := asUint64(v)
	if !ok {
		return unsupportedf("nat value of type %T", v)
	}
	s.buf = appendUleb128(s.buf, n)
	return nil
}

func (s *ValueSerializer) writeText(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return unsupportedf("text value of type %T", v)
	}
	str := rv.String()
	s.buf = appendUleb128(s.buf, uint64(len(str)))
	s.buf = append(s.buf, str...)
	return nil
}

func (s *ValueSerializer) writeOpt(v interface{}, t Type) error {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		s.buf = append(s.buf, 0x00)
		return nil
	}
	if rv.Kind() != reflect.Ptr {
		return unsupportedf("opt value of type %T (want pointer)", v)
	}
	s.buf = append(s.buf, 0x01)
	return s.WriteValue(rv.Elem().Interface(), t.Elem())
}

func (s *ValueSerializer) writeVec(v interface{}, t Type) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return unsupportedf("vec value of type %T", v)
	}
	n := rv.Len()
	s.buf = appendUleb128(s.buf, uint64(n))
	elemType := t.Elem()
	for i := 0; i < n; i++ {
		if err := s.WriteValue(rv.Index(i).Interface(), elemType); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValueSerializer) writeRecord(v interface{}, t Type) error {
	gotNames, ok := structFieldNames(v)
	if !ok {
		return unsupportedf("record value of type %T", v)
	}
	declared := t.Fields()
	declaredSet := make(map[string]bool, len(declared))
	for _, f := range declared {
		declaredSet[f.Name] = true
	}
	for _, n := range gotNames {
		if !declaredSet[n] {
			return unsupportedf("field %q not present in declared record", n)
		}
	}

	sorted, err := sortedFields(declared)
	if err != nil {
		return err
	}

	buffers := make(map[string][]byte, len(declared))
	for _, f := range declared {
		val, ok := structField(v, f.Name)
		if !ok {
			return unsupportedf("missing required field %q", f.Name)
		}
		sub := NewValueSerializer(s.registry)
		if err := sub.WriteValue(val, f.Type); err != nil {
			return err
		}
		buffers[f.Name] = sub.buf
	}
	for _, f := range sorted {
		s.buf = append(s.buf, buffers[f.Name]...)
	}
	return nil
}

func (s *ValueSerializer) writeVariant(v interface{}, t Type) error {
	var vv VariantValue
	switch tv := v.(type) {
	case VariantValue:
		vv = tv
	default:
		vc, ok := v.(variantCarrier)
		if !ok {
			return unsupportedf("variant value of type %T", v)
		}
		vv = vc.IDLVariant()
	}

	declared := t.Fields()
	sorted, err := sortedFields(declared)
	if err != nil {
		return err
	}

	var chosen *Field
	rank := -1
	for i, f := range sorted {
		if f.Name == vv.Name {
			chosen = &sorted[i]
			rank = i
			break
		}
	}
	if chosen == nil {
		return unsupportedf("variant arm %q not present in declared type", vv.Name)
	}

	s.buf = appendUleb128(s.buf, uint64(rank))
	return s.WriteValue(vv.Value, chosen.Type)
}

func asInt64(v interface{}) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	}
	return 0, false
}

func asUint64(v interface{}) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	}
	return 0, false
}

// structFieldNames and structField back the Record value path for two
// representations: a map[string]interface{} built ad hoc, or a Go
// struct whose fields are matched by an `idl:"name"` tag, falling back
// to the Go field name.

func structFieldNames(v interface{}) ([]string, bool) {
	if m, ok := v.(map[string]interface{}); ok {
		names := make([]string, 0, len(m))
		for k := range m {
			names = append(names, k)
		}
		return names, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	names := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		names = append(names, fieldName(f))
	}
	return names, true
}

func structField(v interface{}, name string) (interface{}, bool) {
	if m, ok := v.(map[string]interface{}); ok {
		val, ok := m[name]
		return val, ok
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if fieldName(f) == name {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("idl"); tag != "" {
		return tag
	}
	return f.Name
}
