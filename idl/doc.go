// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idl implements a binary serializer for a typed interchange
// format used by a smart-contract platform (the "Candid" IDL).
//
// Given a Go value and a description of its IDL type, Marshal produces a
// self-describing byte string: a fixed magic header, a type table, and a
// value payload. A receiver can reconstruct the value using only the
// emitted bytes plus a compatible schema; this package only writes that
// byte string, it does not read it back.
//
// The format, byte for byte:
//
//	"DIDL"                  four byte magic
//	leb128(len(table))      type-table entry count
//	table[0] .. table[n-1]  each entry a canonical byte encoding,
//	                        referring to other table entries by
//	                        index and to primitives by a small
//	                        negative opcode
//	encode_ref(root_type)   reference to the root type
//	value payload           the serialized value itself
//
// Integers are encoded with LEB128 (unsigned) and SLEB128 (signed).
// Record and variant fields are reordered on the wire by the 32-bit
// idl_hash of their field name; options use a present/absent byte.
//
// Deserialization, wire framing beyond the magic bytes, and the
// surrounding CLI/developer tooling are out of scope for this package.
package idl
