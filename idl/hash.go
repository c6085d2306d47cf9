// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

// Hash computes the 32-bit field-name hash used to order Record and
// Variant fields on the wire: s' = s*223 + c, wrapping, over the
// Unicode scalar values of name. Ranging over a Go string already
// yields runes, which are Unicode scalar values, so no extra decoding
// is needed.
func Hash(name string) uint32 {
	var h uint32
	for _, c := range name {
		h = h*223 + uint32(c)
	}
	return h
}
