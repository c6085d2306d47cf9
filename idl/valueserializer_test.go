// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteValueText(t *testing.T) {
	s := NewValueSerializer(nil)
	require.NoError(t, s.WriteValue("hi", Text))
	require.Equal(t, []byte{0x02, 'h', 'i'}, s.Bytes())
}

func TestWriteValueVec(t *testing.T) {
	s := NewValueSerializer(nil)
	require.NoError(t, s.WriteValue([]int64{1, 2, 3}, VecOf(Int)))
	require.Equal(t, []byte{0x03, 0x01, 0x02, 0x03}, s.Bytes())
}

func TestWriteValueRecordMissingFieldErrors(t *testing.T) {
	ty := RecordOf(Field{Name: "foo", Type: Int}, Field{Name: "bar", Type: Bool})
	s := NewValueSerializer(nil)
	err := s.WriteValue(map[string]interface{}{"foo": int64(1)}, ty)
	require.Error(t, err)
}

func TestWriteValueVariantUnknownArmErrors(t *testing.T) {
	ty := VariantOf(Field{Name: "Ok", Type: Int}, Field{Name: "Err", Type: Text})
	s := NewValueSerializer(nil)
	err := s.WriteValue(VariantValue{Name: "Nope", Value: 1}, ty)
	require.Error(t, err)
}

func TestWriteValueKnotResolvesThroughRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(KnotID("n"), Int)

	s := NewValueSerializer(r)
	require.NoError(t, s.WriteValue(int64(9), KnotOf(KnotID("n"))))
	require.Equal(t, []byte{0x09}, s.Bytes())
}

func TestWriteValueKnotUnregisteredErrors(t *testing.T) {
	s := NewValueSerializer(NewRegistry())
	err := s.WriteValue(int64(1), KnotOf(KnotID("missing")))
	require.Error(t, err)
}
