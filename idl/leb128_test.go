// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendUleb128(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{42, []byte{0x2A}},
		{5097222, []byte{0x86, 0x8E, 0xB7, 0x02}},
		{4895187, []byte{0xD3, 0xE3, 0xAA, 0x02}},
	}
	for _, c := range cases {
		got := appendUleb128(nil, c.v)
		assert.Equal(t, c.want, got, "appendUleb128(%d)", c.v)
	}
}

func TestAppendSleb128(t *testing.T) {
	cases := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{42, []byte{0x2A}},
		{-2, []byte{0x7E}},
		{-4, []byte{0x7C}},
		{-18, []byte{0x6E}},
		{-19, []byte{0x6D}},
		{-20, []byte{0x6C}},
		{-21, []byte{0x6B}},
		{1234567890, []byte{0xD2, 0x85, 0xD8, 0xCC, 0x04}},
		{-1234567890, []byte{0xAE, 0xFA, 0xA7, 0xB3, 0x7B}},
	}
	for _, c := range cases {
		got := appendSleb128(nil, c.v)
		assert.Equal(t, c.want, got, "appendSleb128(%d)", c.v)
	}
}
