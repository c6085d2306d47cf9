// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeOfPrimitives(t *testing.T) {
	require.Equal(t, Bool, TypeOf[bool]())
	require.Equal(t, Int, TypeOf[int64]())
	require.Equal(t, Nat, TypeOf[uint32]())
	require.Equal(t, Text, TypeOf[string]())
}

type point struct {
	X int64 `idl:"x"`
	Y int64 `idl:"y"`
}

func TestTypeOfStruct(t *testing.T) {
	got := TypeOf[point]()
	require.Equal(t, KindRecord, got.Kind())
	require.Len(t, got.Fields(), 2)
	require.Equal(t, "x", got.Fields()[0].Name)
	require.Equal(t, "y", got.Fields()[1].Name)
}

func TestTypeOfEmptyStructIsNull(t *testing.T) {
	type empty struct{}
	require.Equal(t, Null, TypeOf[empty]())
}

func TestTypeOfPointerIsOpt(t *testing.T) {
	got := TypeOf[*int64]()
	require.Equal(t, KindOpt, got.Kind())
	require.Equal(t, Int, got.Elem())
}

func TestTypeOfSliceIsVec(t *testing.T) {
	got := TypeOf[[]string]()
	require.Equal(t, KindVec, got.Kind())
	require.Equal(t, Text, got.Elem())
}

type listNode struct {
	Head int64     `idl:"head"`
	Tail *listNode `idl:"tail"`
}

func TestDeriveRecursiveStructRegistersKnot(t *testing.T) {
	r := NewRegistry()
	got, err := deriveType(r, reflect.TypeOf(listNode{}))
	require.NoError(t, err)
	require.Equal(t, KindRecord, got.Kind())

	tailField := got.Fields()[1]
	require.Equal(t, KindOpt, tailField.Type.Kind())
	require.Equal(t, KindKnot, tailField.Type.Elem().Kind())

	id := tailField.Type.Elem().KnotID()
	unfolded, ok := r.Lookup(id)
	require.True(t, ok)
	require.Equal(t, KindRecord, unfolded.Kind())
}

func TestDeriveNonRecursiveStructDoesNotRegisterKnot(t *testing.T) {
	r := NewRegistry()
	_, err := deriveType(r, reflect.TypeOf(point{}))
	require.NoError(t, err)
	require.Len(t, r.entries, 0)
}
