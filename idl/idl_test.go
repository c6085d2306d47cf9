// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func magicBytes(rest ...byte) []byte {
	return append([]byte{'D', 'I', 'D', 'L'}, rest...)
}

func TestMarshalBool(t *testing.T) {
	got, err := Marshal(true, Bool)
	require.NoError(t, err)
	require.Equal(t, magicBytes(0x00, 0x7E, 0x01), got)

	got, err = Marshal(false, Bool)
	require.NoError(t, err)
	require.Equal(t, magicBytes(0x00, 0x7E, 0x00), got)
}

func TestMarshalInt(t *testing.T) {
	cases := []struct {
		name string
		v    int64
		want []byte
	}{
		{"42", 42, magicBytes(0x00, 0x7C, 0x2A)},
		{"1234567890", 1234567890, magicBytes(0x00, 0x7C, 0xD2, 0x85, 0xD8, 0xCC, 0x04)},
		{"-1234567890", -1234567890, magicBytes(0x00, 0x7C, 0xAE, 0xFA, 0xA7, 0xB3, 0x7B)},
	}
	for _, c := range cases {
		got, err := Marshal(c.v, Int)
		require.NoError(t, err, c.name)
		require.Equal(t, c.want, got, c.name)
	}
}

func TestMarshalOptInt(t *testing.T) {
	var v int64 = 42
	got, err := Marshal(&v, OptOf(Int))
	require.NoError(t, err)
	want := magicBytes(0x01, 0x6E, 0x7C, 0x00, 0x01, 0x2A)
	require.Equal(t, want, got)
}

func TestMarshalOptIntNone(t *testing.T) {
	var v *int64
	got, err := Marshal(v, OptOf(Int))
	require.NoError(t, err)
	want := magicBytes(0x01, 0x6E, 0x7C, 0x00, 0x00)
	require.Equal(t, want, got)
}

func TestMarshalNestedOptInt(t *testing.T) {
	// Some(Some(42)) as Opt<Opt<Int>>. The outer Opt reserves its table
	// index before recursing into its child, so it lands at index 0 and
	// the inner Opt(Int) at index 1.
	var inner int64 = 42
	outer := &inner
	v := &outer

	got, err := Marshal(v, OptOf(OptOf(Int)))
	require.NoError(t, err)
	want := magicBytes(0x02, 0x6E, 0x01, 0x6E, 0x7C, 0x00, 0x01, 0x01, 0x2A)
	require.Equal(t, want, got)
}

type fooBar struct {
	Foo int64 `idl:"foo"`
	Bar bool  `idl:"bar"`
}

func TestMarshalRecord(t *testing.T) {
	ty := RecordOf(Field{Name: "foo", Type: Int}, Field{Name: "bar", Type: Bool})
	v := fooBar{Foo: 42, Bar: true}

	got, err := Marshal(v, ty)
	require.NoError(t, err)

	want := magicBytes(
		0x01,
		0x6C, 0x02,
		0xD3, 0xE3, 0xAA, 0x02, 0x7E,
		0x86, 0x8E, 0xB7, 0x02, 0x7C,
		0x00,
		0x01, 0x2A,
	)
	require.Equal(t, want, got)
}

func TestMarshalRecordRejectsUnknownField(t *testing.T) {
	ty := RecordOf(Field{Name: "foo", Type: Int})
	_, err := Marshal(map[string]interface{}{"foo": int64(1), "extra": int64(2)}, ty)
	require.Error(t, err)
}

func TestEncoderWritesSameBytesAsMarshal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(true, Bool))

	want, err := Marshal(true, Bool)
	require.NoError(t, err)
	require.Equal(t, want, buf.Bytes())
}

func TestMarshalVariantResult(t *testing.T) {
	r := Ok[int64, string](7)
	got, err := Marshal(r, r.IDLType())
	require.NoError(t, err)

	// Ok (hash 17724, Int) sorts before Err (hash 3456837, Text), so Ok is
	// rank 0.
	want := magicBytes(
		0x01,
		0x6B, 0x02,
		0xBC, 0x8A, 0x01, // uleb128(17724)
		0x7C, // Int
		0xC5, 0xFE, 0xD2, 0x01, // uleb128(3456837)
		0x71, // Text
		0x00, // root ref: index 0
		0x00, 0x07, // rank 0 (Ok), value 7
	)
	require.Equal(t, want, got)
}
